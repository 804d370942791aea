// Package server exposes the movie catalog REST API.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"moviebase/internal/app"
	"moviebase/internal/util"
	"moviebase/pkg/domain"
)

type Config struct {
	App *app.App
	Env string
}

type Server struct {
	app *app.App
	env string
	mux *http.ServeMux
}

func New(cfg Config) *Server {
	s := &Server{
		app: cfg.App,
		env: cfg.Env,
		mux: http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// users
	s.mux.HandleFunc("POST /users/login", s.handleUserLogin)
	s.mux.HandleFunc("POST /users/add-user", s.handleAddUser)
	s.mux.Handle("GET /users/all-users", s.withRoles(s.handleAllUsers, domain.RoleAdmin))
	s.mux.Handle("GET /users/all-users-with-pagination", s.withRoles(s.handleUsersPage, domain.RoleAdmin))
	s.mux.Handle("GET /users/single-user/{id}", s.withRoles(s.handleSingleUser, domain.RoleAdmin, domain.RoleUser))
	s.mux.Handle("PUT /users/update-user/{id}", s.withRoles(s.handleUpdateUser, domain.RoleAdmin, domain.RoleUser))
	s.mux.Handle("DELETE /users/delete-user/{id}", s.withRoles(s.handleDeleteUser, domain.RoleAdmin))
	s.mux.Handle("POST /users/toggle-movie-from-favorite", s.withRoles(s.handleToggleFavorite, domain.RoleUser))
	s.mux.Handle("GET /users/all-favorited-movie", s.withRoles(s.handleFavoriteMovies, domain.RoleUser))

	// admin users
	s.mux.HandleFunc("POST /admin-users/login", s.handleAdminLogin)
	s.mux.Handle("POST /admin-users/add-admin-user", s.withRoles(s.handleAddAdmin, domain.RoleAdmin))
	s.mux.Handle("GET /admin-users/all-admin-users", s.withRoles(s.handleAllAdmins, domain.RoleAdmin))
	s.mux.Handle("GET /admin-users/all-admin-users-with-pagination", s.withRoles(s.handleAdminsPage, domain.RoleAdmin))
	s.mux.Handle("GET /admin-users/single-admin-user/{id}", s.withRoles(s.handleSingleAdmin, domain.RoleAdmin))
	s.mux.Handle("PUT /admin-users/update-admin-user/{id}", s.withRoles(s.handleUpdateAdmin, domain.RoleAdmin))
	s.mux.Handle("DELETE /admin-users/delete-admin-user/{id}", s.withRoles(s.handleDeleteAdmin, domain.RoleAdmin))

	// movies
	s.mux.HandleFunc("GET /movies/all-movies", s.handleAllMovies)
	s.mux.HandleFunc("GET /movies/all-movies-with-pagination", s.handleMoviesPage)
	s.mux.HandleFunc("GET /movies/single-movie/{id}", s.handleSingleMovie)
	s.mux.Handle("POST /movies/add-movie", s.withRoles(s.handleAddMovie, domain.RoleAdmin))
	s.mux.Handle("PUT /movies/update-movie/{id}", s.withRoles(s.handleUpdateMovie, domain.RoleAdmin))
	s.mux.Handle("DELETE /movies/delete-movie/{id}", s.withRoles(s.handleDeleteMovie, domain.RoleAdmin))
	s.mux.Handle("POST /movies/add-movies-from-file", s.withRoles(s.handleImportMovies, domain.RoleAdmin))

	s.mux.HandleFunc("/", s.handleNotFound)
}

// Router wraps the mux in the shared middleware chain.
func (s *Server) Router() http.Handler {
	var h http.Handler = withRecover(s.mux)
	h = util.WithRequestLog(h)
	h = util.WithRequestID(h)
	h = util.WithSecurityHeaders(h)
	h = util.WithCORS(h)
	return h
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, "Route Not Found", nil)
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &app.ValidationError{Problems: []string{"invalid request body"}}
	}
	return nil
}

// pageParams reads ?page= and ?limit= with the defaults used everywhere.
func pageParams(r *http.Request) (int, int) {
	page := 1
	limit := 10
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return page, limit
}
