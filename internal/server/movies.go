package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"moviebase/internal/app"
	"moviebase/pkg/domain"
)

func movieFilterFromQuery(r *http.Request) app.MovieFilter {
	q := r.URL.Query()
	return app.MovieFilter{
		Title:    q.Get("title"),
		Director: q.Get("director"),
		Year:     q.Get("year"),
		Country:  q.Get("country"),
		Length:   q.Get("length"),
		Genre:    q.Get("genre"),
		Colour:   q.Get("colour"),
	}
}

func (s *Server) handleAllMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.app.Movies(r.Context(), movieFilterFromQuery(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Movies Fetched Successfully", movies)
}

func (s *Server) handleMoviesPage(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	movies, total, err := s.app.MoviesPage(r.Context(), movieFilterFromQuery(r), page, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Movies Fetched Successfully", newPageData(page, limit, total, movies))
}

func (s *Server) handleSingleMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := s.app.MovieByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Movie Fetched Successfully", movie)
}

func (s *Server) handleAddMovie(w http.ResponseWriter, r *http.Request, _ domain.Account) {
	var req movieRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	movie, err := s.app.AddMovie(r.Context(), req.toInput())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Movie Added Successfully", movie)
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request, _ domain.Account) {
	var req movieRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	movie, err := s.app.UpdateMovie(r.Context(), r.PathValue("id"), req.toInput())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Movie Updated Successfully", movie)
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request, _ domain.Account) {
	if err := s.app.DeleteMovie(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Movie Deleted Successfully", nil)
}

const maxImportSize = 32 << 20

func (s *Server) handleImportMovies(w http.ResponseWriter, r *http.Request, _ domain.Account) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		s.writeError(w, app.ErrFileRequired)
		return
	}
	file, header, err := r.FormFile("movies_file")
	if err != nil {
		s.writeError(w, app.ErrFileRequired)
		return
	}
	defer file.Close()

	extraKeys, err := extraFieldKeys(r.Form["newAddedFieldsKeys"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.app.ImportMoviesFromFile(r.Context(), header.Filename, file, extraKeys)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Movies Imported Successfully", result)
}

// extraFieldKeys flattens the newAddedFieldsKeys form values. The field may
// repeat, hold comma-joined names, or hold a JSON array.
func extraFieldKeys(values []string) ([]string, error) {
	var keys []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.HasPrefix(v, "[") {
			var parsed []string
			if err := json.Unmarshal([]byte(v), &parsed); err != nil {
				return nil, &app.ValidationError{Problems: []string{"newAddedFieldsKeys must be field names or a JSON array of strings"}}
			}
			keys = append(keys, parsed...)
			continue
		}
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	}
	return keys, nil
}

type movieRequest struct {
	Title          string            `json:"title"`
	Director       string            `json:"director"`
	Year           string            `json:"year"`
	Country        string            `json:"country"`
	Length         int               `json:"length"`
	Genre          string            `json:"genre"`
	Colour         string            `json:"colour"`
	AdditionalInfo []domain.InfoPair `json:"additional_info"`
}

func (r movieRequest) toInput() app.MovieInput {
	return app.MovieInput{
		Title:          r.Title,
		Director:       r.Director,
		Year:           r.Year,
		Country:        r.Country,
		Length:         r.Length,
		Genre:          r.Genre,
		Colour:         r.Colour,
		AdditionalInfo: r.AdditionalInfo,
	}
}
