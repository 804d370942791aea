package server

import (
	"net/http"

	"moviebase/internal/app"
	"moviebase/pkg/domain"
)

func (s *Server) handleUserLogin(w http.ResponseWriter, r *http.Request) {
	s.handleLogin(w, r, domain.RoleUser)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, role domain.Role) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	_, signed, err := s.app.Login(r.Context(), role, req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Logged In Successfully", loginData{Token: signed})
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	acct, err := s.app.AddAccount(r.Context(), domain.RoleUser, req.toInput())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "User Added Successfully", acct)
}

func (s *Server) handleAllUsers(w http.ResponseWriter, r *http.Request, _ domain.Account) {
	users, err := s.app.Accounts(r.Context(), domain.RoleUser)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Users Fetched Successfully", users)
}

func (s *Server) handleUsersPage(w http.ResponseWriter, r *http.Request, _ domain.Account) {
	page, limit := pageParams(r)
	users, total, err := s.app.AccountsPage(r.Context(), domain.RoleUser, page, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Users Fetched Successfully", newPageData(page, limit, total, users))
}

func (s *Server) handleSingleUser(w http.ResponseWriter, r *http.Request, acct domain.Account) {
	id := r.PathValue("id")
	if acct.Role == domain.RoleUser && acct.ID != id {
		s.writeError(w, forbidden("You Don't Have Permission To Access Other Users' Data"))
		return
	}
	user, err := s.app.Account(r.Context(), domain.RoleUser, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "User Fetched Successfully", user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request, acct domain.Account) {
	id := r.PathValue("id")
	if acct.Role == domain.RoleUser && acct.ID != id {
		s.writeError(w, forbidden("You Don't Have Permission To Update Other Users' Data"))
		return
	}
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	user, err := s.app.UpdateAccount(r.Context(), domain.RoleUser, id, req.toInput())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "User Updated Successfully", user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, acct domain.Account) {
	if err := s.app.DeleteAccount(r.Context(), domain.RoleUser, acct.ID, r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "User Deleted Successfully", nil)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request, acct domain.Account) {
	var req toggleFavoriteRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	added, err := s.app.ToggleFavorite(r.Context(), acct.ID, req.MovieID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	message := "Movie Removed From Favorites Successfully"
	if added {
		message = "Movie Added To Favorites Successfully"
	}
	writeJSON(w, http.StatusOK, message, nil)
}

func (s *Server) handleFavoriteMovies(w http.ResponseWriter, r *http.Request, acct domain.Account) {
	page, limit := pageParams(r)
	movies, total, err := s.app.FavoriteMoviesPage(r.Context(), acct.ID, page, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Favorited Movies Fetched Successfully", newPageData(page, limit, total, movies))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	Token string `json:"token"`
}

type accountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r accountRequest) toInput() app.AccountInput {
	return app.AccountInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

type toggleFavoriteRequest struct {
	MovieID string `json:"favoriteMovieId"`
}
