package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviebase/internal/app"
	"moviebase/pkg/store"
	"moviebase/pkg/token"
)

type envelope struct {
	Message string          `json:"message"`
	Status  bool            `json:"status"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	ts  *httptest.Server
	app *app.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	a, err := app.New(app.Config{
		Store:  store.NewMemoryStore(),
		Tokens: token.NewIssuer("test-secret"),
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv := New(Config{App: a, Env: "development"})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return &testServer{ts: ts, app: a}
}

func (s *testServer) do(t *testing.T, method, path, tok string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.ts.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := s.ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func (s *testServer) seedAdmin(t *testing.T) string {
	t.Helper()
	if _, err := s.app.EnsureAdmin(context.Background(), "Admin", "admin@example.com", "bootstrap"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	status, env := s.do(t, http.MethodPost, "/admin-users/login", "", map[string]string{
		"email": "admin@example.com", "password": "bootstrap",
	})
	if status != http.StatusCreated {
		t.Fatalf("admin login status %d: %s", status, env.Message)
	}
	return tokenFrom(t, env)
}

func (s *testServer) registerUser(t *testing.T, email string) string {
	t.Helper()
	status, env := s.do(t, http.MethodPost, "/users/add-user", "", map[string]string{
		"name": "User", "email": email, "password": "secret1",
	})
	if status != http.StatusCreated {
		t.Fatalf("add user status %d: %s", status, env.Message)
	}
	status, env = s.do(t, http.MethodPost, "/users/login", "", map[string]string{
		"email": email, "password": "secret1",
	})
	if status != http.StatusCreated {
		t.Fatalf("user login status %d: %s", status, env.Message)
	}
	return tokenFrom(t, env)
}

func tokenFrom(t *testing.T, env envelope) string {
	t.Helper()
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("login data = %s (%v)", env.Data, err)
	}
	return data.Token
}

func (s *testServer) addMovie(t *testing.T, adminToken, title string) string {
	t.Helper()
	status, env := s.do(t, http.MethodPost, "/movies/add-movie", adminToken, map[string]any{
		"title": title, "year": "1999",
	})
	if status != http.StatusCreated {
		t.Fatalf("add movie status %d: %s", status, env.Message)
	}
	var movie struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &movie); err != nil || movie.ID == "" {
		t.Fatalf("movie data = %s (%v)", env.Data, err)
	}
	return movie.ID
}

func TestLoginRotationRevokesOldToken(t *testing.T) {
	s := newTestServer(t)
	tok1 := s.registerUser(t, "u@example.com")

	status, env := s.do(t, http.MethodPost, "/users/login", "", map[string]string{
		"email": "u@example.com", "password": "secret1",
	})
	if status != http.StatusCreated {
		t.Fatalf("second login status %d", status)
	}
	tok2 := tokenFrom(t, env)

	status, env = s.do(t, http.MethodGet, "/users/all-favorited-movie", tok1, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("old token status %d: %s", status, env.Message)
	}
	if env.Message != "This Token Is Expired" {
		t.Fatalf("old token message %q", env.Message)
	}

	if status, env = s.do(t, http.MethodGet, "/users/all-favorited-movie", tok2, nil); status != http.StatusOK {
		t.Fatalf("new token status %d: %s", status, env.Message)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	s := newTestServer(t)
	s.registerUser(t, "u@example.com")

	status, env := s.do(t, http.MethodPost, "/users/add-user", "", map[string]string{
		"name": "User", "email": "u@example.com", "password": "secret1",
	})
	if status != http.StatusBadRequest || env.Message != "Email Already Exists" {
		t.Fatalf("duplicate email: %d %q", status, env.Message)
	}
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	s.registerUser(t, "u@example.com")

	status, env := s.do(t, http.MethodPost, "/users/login", "", map[string]string{
		"email": "nobody@example.com", "password": "secret1",
	})
	if status != http.StatusNotFound || env.Message != "Email doesn't Exist" {
		t.Fatalf("unknown email: %d %q", status, env.Message)
	}
	status, env = s.do(t, http.MethodPost, "/users/login", "", map[string]string{
		"email": "u@example.com", "password": "nope",
	})
	if status != http.StatusNotFound || env.Message != "Wrong Credentials" {
		t.Fatalf("wrong password: %d %q", status, env.Message)
	}
}

func TestRoleGates(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.seedAdmin(t)
	userToken := s.registerUser(t, "u@example.com")

	// anonymous and user tokens cannot touch admin-only movie writes
	for _, tok := range []string{"", userToken} {
		status, env := s.do(t, http.MethodPost, "/movies/add-movie", tok, map[string]string{"title": "X"})
		if status != http.StatusUnauthorized || env.Message != "Unauthorized" {
			t.Fatalf("token %q: %d %q", tok, status, env.Message)
		}
	}
	// admin tokens cannot use user-only favorites routes
	status, env := s.do(t, http.MethodGet, "/users/all-favorited-movie", adminToken, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("admin on user route: %d %q", status, env.Message)
	}
	// user listing is admin-only
	status, _ = s.do(t, http.MethodGet, "/users/all-users", userToken, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("user on admin route: %d", status)
	}
	if status, _ = s.do(t, http.MethodGet, "/users/all-users", adminToken, nil); status != http.StatusOK {
		t.Fatalf("admin on admin route: %d", status)
	}
}

func TestUserOwnershipChecks(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.seedAdmin(t)
	aliceToken := s.registerUser(t, "alice@example.com")
	s.registerUser(t, "bob@example.com")

	status, env := s.do(t, http.MethodGet, "/users/all-users", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("all users: %d", status)
	}
	var users []struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(env.Data, &users); err != nil || len(users) != 2 {
		t.Fatalf("users data = %s (%v)", env.Data, err)
	}
	var aliceID, bobID string
	for _, u := range users {
		switch u.Email {
		case "alice@example.com":
			aliceID = u.ID
		case "bob@example.com":
			bobID = u.ID
		}
	}

	// alice reads herself but not bob
	if status, _ = s.do(t, http.MethodGet, "/users/single-user/"+aliceID, aliceToken, nil); status != http.StatusOK {
		t.Fatalf("self read: %d", status)
	}
	if status, _ = s.do(t, http.MethodGet, "/users/single-user/"+bobID, aliceToken, nil); status != http.StatusForbidden {
		t.Fatalf("cross read: %d", status)
	}
	// admin reads anyone
	if status, _ = s.do(t, http.MethodGet, "/users/single-user/"+bobID, adminToken, nil); status != http.StatusOK {
		t.Fatalf("admin read: %d", status)
	}
	// alice cannot update bob
	status, _ = s.do(t, http.MethodPut, "/users/update-user/"+bobID, aliceToken, map[string]string{
		"name": "Hacked", "email": "bob@example.com",
	})
	if status != http.StatusForbidden {
		t.Fatalf("cross update: %d", status)
	}
}

func TestAdminSelfDeleteRejected(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.seedAdmin(t)

	status, env := s.do(t, http.MethodGet, "/admin-users/all-admin-users", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("all admins: %d", status)
	}
	var admins []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &admins); err != nil || len(admins) != 1 {
		t.Fatalf("admins data = %s (%v)", env.Data, err)
	}

	status, env = s.do(t, http.MethodDelete, "/admin-users/delete-admin-user/"+admins[0].ID, adminToken, nil)
	if status != http.StatusBadRequest || env.Message != "Admin User Can't Delete Itself" {
		t.Fatalf("self delete: %d %q", status, env.Message)
	}
}

func TestToggleFavoriteFlow(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.seedAdmin(t)
	userToken := s.registerUser(t, "u@example.com")
	movieID := s.addMovie(t, adminToken, "Stalker")

	status, env := s.do(t, http.MethodPost, "/users/toggle-movie-from-favorite", userToken, map[string]string{"favoriteMovieId": movieID})
	if status != http.StatusOK || env.Message != "Movie Added To Favorites Successfully" {
		t.Fatalf("first toggle: %d %q", status, env.Message)
	}

	status, env = s.do(t, http.MethodGet, "/users/all-favorited-movie", userToken, nil)
	if status != http.StatusOK {
		t.Fatalf("favorites: %d", status)
	}
	var page struct {
		CurrentPage int `json:"currentPage"`
		Pages       int `json:"pages"`
		Count       int `json:"count"`
		Data        []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("favorites data = %s (%v)", env.Data, err)
	}
	if page.Count != 1 || len(page.Data) != 1 || page.Data[0].ID != movieID {
		t.Fatalf("favorites page = %+v", page)
	}

	status, env = s.do(t, http.MethodPost, "/users/toggle-movie-from-favorite", userToken, map[string]string{"favoriteMovieId": movieID})
	if status != http.StatusOK || env.Message != "Movie Removed From Favorites Successfully" {
		t.Fatalf("second toggle: %d %q", status, env.Message)
	}

	status, env = s.do(t, http.MethodPost, "/users/toggle-movie-from-favorite", userToken, map[string]string{"favoriteMovieId": "bad-id"})
	if status != http.StatusBadRequest {
		t.Fatalf("bad movie id: %d %q", status, env.Message)
	}
}

func TestFavoriteMoviesPaginated(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.seedAdmin(t)
	userToken := s.registerUser(t, "u@example.com")
	for _, title := range []string{"Alien", "Stalker", "Solaris"} {
		id := s.addMovie(t, adminToken, title)
		status, env := s.do(t, http.MethodPost, "/users/toggle-movie-from-favorite", userToken, map[string]string{"favoriteMovieId": id})
		if status != http.StatusOK {
			t.Fatalf("toggle %s: %d %q", title, status, env.Message)
		}
	}

	status, env := s.do(t, http.MethodGet, "/users/all-favorited-movie?page=2&limit=2", userToken, nil)
	if status != http.StatusOK {
		t.Fatalf("favorites: %d %q", status, env.Message)
	}
	var page struct {
		CurrentPage int `json:"currentPage"`
		Pages       int `json:"pages"`
		Count       int `json:"count"`
		Data        []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("favorites data = %s (%v)", env.Data, err)
	}
	if page.CurrentPage != 2 || page.Pages != 2 || page.Count != 3 {
		t.Fatalf("favorites page = %+v", page)
	}
	if len(page.Data) != 1 || page.Data[0].Title != "Solaris" {
		t.Fatalf("favorites rows = %+v", page.Data)
	}
}

func TestMovieEndpoints(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.seedAdmin(t)
	movieID := s.addMovie(t, adminToken, "Alien")
	s.addMovie(t, adminToken, "Blade Runner")

	// anonymous reads
	status, env := s.do(t, http.MethodGet, "/movies/all-movies", "", nil)
	if status != http.StatusOK {
		t.Fatalf("all movies: %d", status)
	}
	var movies []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(env.Data, &movies); err != nil || len(movies) != 2 {
		t.Fatalf("movies data = %s (%v)", env.Data, err)
	}

	// a partial, differently-cased title still matches
	status, env = s.do(t, http.MethodGet, "/movies/all-movies?title=lie", "", nil)
	if status != http.StatusOK {
		t.Fatalf("filtered movies: %d", status)
	}
	if err := json.Unmarshal(env.Data, &movies); err != nil || len(movies) != 1 || movies[0].Title != "Alien" {
		t.Fatalf("filtered data = %s (%v)", env.Data, err)
	}

	status, env = s.do(t, http.MethodGet, "/movies/all-movies-with-pagination?page=1&limit=1", "", nil)
	if status != http.StatusOK {
		t.Fatalf("paginated movies: %d", status)
	}
	var page struct {
		CurrentPage int `json:"currentPage"`
		Pages       int `json:"pages"`
		Count       int `json:"count"`
		Data        []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("page data = %s (%v)", env.Data, err)
	}
	if page.CurrentPage != 1 || page.Pages != 2 || page.Count != 2 {
		t.Fatalf("page = %+v", page)
	}

	// pagination honors the same filters, including in the count
	status, env = s.do(t, http.MethodGet, "/movies/all-movies-with-pagination?title=runner&page=1&limit=10", "", nil)
	if status != http.StatusOK {
		t.Fatalf("filtered pagination: %d", status)
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("page data = %s (%v)", env.Data, err)
	}
	if page.Count != 1 || page.Pages != 1 || len(page.Data) != 1 || page.Data[0].Title != "Blade Runner" {
		t.Fatalf("filtered page = %+v", page)
	}

	if status, _ = s.do(t, http.MethodGet, "/movies/single-movie/"+movieID, "", nil); status != http.StatusOK {
		t.Fatalf("single movie: %d", status)
	}
	if status, _ = s.do(t, http.MethodGet, "/movies/single-movie/junk", "", nil); status != http.StatusBadRequest {
		t.Fatalf("bad movie id: %d", status)
	}
	status, env = s.do(t, http.MethodGet, "/movies/single-movie/d9b2d63d-a233-4123-847a-717d33639046", "", nil)
	if status != http.StatusNotFound || env.Message != "Movie Id is wrong" {
		t.Fatalf("missing movie: %d %q", status, env.Message)
	}

	// update and delete
	status, _ = s.do(t, http.MethodPut, "/movies/update-movie/"+movieID, adminToken, map[string]any{
		"title": "Alien", "year": "1979",
	})
	if status != http.StatusOK {
		t.Fatalf("update movie: %d", status)
	}
	if status, _ = s.do(t, http.MethodDelete, "/movies/delete-movie/"+movieID, adminToken, nil); status != http.StatusOK {
		t.Fatalf("delete movie: %d", status)
	}
}

func TestImportMoviesFromCSV(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.seedAdmin(t)

	upload := func(csvBody string) (int, envelope) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("movies_file", "movies.csv")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(csvBody)); err != nil {
			t.Fatalf("write csv: %v", err)
		}
		if err := mw.WriteField("newAddedFieldsKeys", `["studio"]`); err != nil {
			t.Fatalf("write field: %v", err)
		}
		if err := mw.Close(); err != nil {
			t.Fatalf("close writer: %v", err)
		}
		req, err := http.NewRequest(http.MethodPost, s.ts.URL+"/movies/add-movies-from-file", &buf)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, err := s.ts.Client().Do(req)
		if err != nil {
			t.Fatalf("upload: %v", err)
		}
		defer resp.Body.Close()
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return resp.StatusCode, env
	}

	status, env := upload("title,director,year,studio\nAlien,Ridley Scott,1979,Fox\nStalker,Tarkovsky,1979,Mosfilm\n")
	if status != http.StatusCreated {
		t.Fatalf("import: %d %q", status, env.Message)
	}
	var result struct {
		Added   int `json:"added"`
		Updated int `json:"updated"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("result = %s (%v)", env.Data, err)
	}
	if result.Added != 2 || result.Updated != 0 {
		t.Fatalf("first import = %+v", result)
	}

	// reimporting with one changed row updates only that row
	status, env = upload("title,director,year,studio\nAlien,Ridley Scott,1979,Fox\nStalker,Andrei Tarkovsky,1979,Mosfilm\n")
	if status != http.StatusCreated {
		t.Fatalf("reimport: %d %q", status, env.Message)
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("result = %s (%v)", env.Data, err)
	}
	if result.Added != 0 || result.Updated != 1 {
		t.Fatalf("second import = %+v", result)
	}

	// the imported extra column lands in additional info
	status, env = s.do(t, http.MethodGet, "/movies/all-movies?title=Alien", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list: %d", status)
	}
	var movies []struct {
		AdditionalInfo []struct {
			Type  string `json:"info_type"`
			Value string `json:"info_value"`
		} `json:"additional_info"`
	}
	if err := json.Unmarshal(env.Data, &movies); err != nil || len(movies) != 1 {
		t.Fatalf("movies = %s (%v)", env.Data, err)
	}
	if len(movies[0].AdditionalInfo) != 1 || movies[0].AdditionalInfo[0].Type != "studio" || movies[0].AdditionalInfo[0].Value != "Fox" {
		t.Fatalf("additional info = %+v", movies[0].AdditionalInfo)
	}
}

func TestExtraFieldKeysForms(t *testing.T) {
	cases := []struct {
		name   string
		values []string
		want   []string
		err    bool
	}{
		{name: "json array", values: []string{`["studio","budget"]`}, want: []string{"studio", "budget"}},
		{name: "comma joined", values: []string{"studio, budget"}, want: []string{"studio", "budget"}},
		{name: "repeated field", values: []string{"studio", "budget"}, want: []string{"studio", "budget"}},
		{name: "mixed", values: []string{`["studio"]`, "budget,runtime"}, want: []string{"studio", "budget", "runtime"}},
		{name: "empty", values: nil, want: nil},
		{name: "bad json", values: []string{`["studio"`}, err: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extraFieldKeys(tc.values)
			if tc.err {
				if err == nil {
					t.Fatalf("keys = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("extra keys: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("keys = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("keys = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestImportExtraKeysAsPlainFormField(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.seedAdmin(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("movies_file", "movies.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("title,studio,budget\nAlien,Fox,11M\n")); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	// clients may send plain comma-joined names instead of a JSON array
	if err := mw.WriteField("newAddedFieldsKeys", "studio,budget"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, s.ts.URL+"/movies/add-movies-from-file", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := s.ts.Client().Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("import: %d %q", resp.StatusCode, env.Message)
	}

	status, env := s.do(t, http.MethodGet, "/movies/all-movies?title=Alien", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list: %d", status)
	}
	var movies []struct {
		AdditionalInfo []struct {
			Type  string `json:"info_type"`
			Value string `json:"info_value"`
		} `json:"additional_info"`
	}
	if err := json.Unmarshal(env.Data, &movies); err != nil || len(movies) != 1 {
		t.Fatalf("movies = %s (%v)", env.Data, err)
	}
	info := movies[0].AdditionalInfo
	if len(info) != 2 || info[0].Type != "studio" || info[0].Value != "Fox" || info[1].Type != "budget" || info[1].Value != "11M" {
		t.Fatalf("additional info = %+v", info)
	}
}

func TestImportRequiresFile(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.seedAdmin(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, s.ts.URL+"/movies/add-movies-from-file", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := s.ts.Client().Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest || env.Message != "File is required." {
		t.Fatalf("missing file: %d %q", resp.StatusCode, env.Message)
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	status, env := s.do(t, http.MethodGet, "/nope", "", nil)
	if status != http.StatusNotFound || env.Message != "Route Not Found" {
		t.Fatalf("unknown route: %d %q", status, env.Message)
	}
}

func TestEnvelopeShape(t *testing.T) {
	s := newTestServer(t)
	status, env := s.do(t, http.MethodGet, "/movies/all-movies", "", nil)
	if status != http.StatusOK {
		t.Fatalf("status %d", status)
	}
	if env.Message != "Movies Fetched Successfully" || !env.Status {
		t.Fatalf("envelope = %+v", env)
	}
	if fmt.Sprintf("%s", env.Data) == "" {
		t.Fatal("data should be present")
	}

	// the status field is a success flag, false on every error path
	status, env = s.do(t, http.MethodGet, "/nope", "", nil)
	if status != http.StatusNotFound || env.Status {
		t.Fatalf("error envelope = %d %+v", status, env)
	}
}
