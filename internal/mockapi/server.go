// Package mockapi serves a local stand-in for the reqres demo API. It backs
// the REST client tests and the mockapi binary used to run the console
// without network access.
package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/userconsole/internal/common"
	"github.com/dmitrijs2005/userconsole/internal/models"
	"github.com/gorilla/mux"
)

// Server holds the demo dataset and fault-injection knobs. Mutations through
// PUT/PATCH/DELETE are echoed but never change the dataset, like the real
// demo API.
type Server struct {
	mu        sync.Mutex
	users     []models.User
	perPage   int
	apiKey    string
	failPages map[int]int
	calls     map[int]int
	now       func() time.Time
}

// Option configures a Server.
type Option func(s *Server)

// WithUsers replaces the seeded dataset.
func WithUsers(users []models.User) Option {
	return func(s *Server) { s.users = append([]models.User(nil), users...) }
}

// WithAPIKey makes every request require the x-api-key header.
func WithAPIKey(key string) Option {
	return func(s *Server) { s.apiKey = key }
}

// WithPerPage overrides the page size (default 6).
func WithPerPage(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.perPage = n
		}
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		users:     SeedUsers(),
		perPage:   models.PageSize,
		failPages: map[int]int{},
		calls:     map[int]int{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FailPage makes the listing of page answer 500 once per call to FailPage.
func (s *Server) FailPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPages[page]++
}

// ListCalls reports how many times page was requested.
func (s *Server) ListCalls(page int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[page]
}

// TotalListCalls reports the number of listing requests for any page.
func (s *Server) TotalListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// Handler returns the router with every route mounted under /api.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.requireAPIKey)

	api.HandleFunc("/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/users", s.listUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", s.getUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", s.updateUser).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/users/{id:[0-9]+}", s.deleteUser).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{})
	})
	return r
}

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.Header.Get(common.APIKeyHeaderName) != s.apiKey {
			writeError(w, http.StatusUnauthorized, "Missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing email or username")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Missing email or username")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing password")
		return
	}

	s.mu.Lock()
	_, found := s.findByEmail(req.Email)
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusBadRequest, "user not found")
		return
	}
	if req.Password != DemoPassword {
		writeError(w, http.StatusBadRequest, "invalid password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": "QpwL5tke4Pnpja7X4"})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			p = 1
		}
		page = p
	}

	s.mu.Lock()
	s.calls[page]++
	if s.failPages[page] > 0 {
		s.failPages[page]--
		s.mu.Unlock()
		writeError(w, http.StatusInternalServerError, "injected failure")
		return
	}

	total := len(s.users)
	totalPages := (total + s.perPage - 1) / s.perPage
	data := []models.User{}
	if page <= totalPages {
		start := (page - 1) * s.perPage
		end := min(start+s.perPage, total)
		data = append(data, s.users[start:end]...)
	}
	perPage := s.perPage
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.UserList{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		Data:       data,
	})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	s.mu.Lock()
	u, ok := s.findByID(id)
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]models.User{"data": u})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	u, ok := s.findByID(id)
	s.mu.Unlock()
	if !ok {
		u = models.User{ID: id}
	}
	u = patch.Apply(u)

	writeJSON(w, http.StatusOK, map[string]any{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"avatar":     u.Avatar,
		"updatedAt":  s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) deleteUser(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) findByID(id int) (models.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Server) findByEmail(email string) (models.User, bool) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, map[string]string{"error": reason})
}
