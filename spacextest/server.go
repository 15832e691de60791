package spacextest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"

	"github.com/brunojasgv/spacex"
)

// Server is an httptest server answering the two API paths with the recorded payloads.
type Server struct {
	*httptest.Server

	failFirst  int
	failStatus int

	mu    sync.Mutex
	hits  map[string]int
	total atomic.Int64
}

// NewServer starts a server. Close it with Close.
func NewServer() *Server {
	return NewFlakyServer(0, http.StatusOK)
}

// NewFlakyServer starts a server whose first failFirst requests of each path answer with status.
func NewFlakyServer(failFirst, status int) *Server {
	s := &Server{
		failFirst:  failFirst,
		failStatus: status,
		hits:       make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.total.Add(1)
	s.mu.Lock()
	s.hits[r.URL.Path]++
	hit := s.hits[r.URL.Path]
	s.mu.Unlock()

	if hit <= s.failFirst {
		http.Error(w, "try again later", s.failStatus)
		return
	}

	var body []byte
	switch r.URL.Path {
	case spacex.LaunchesEndpoint.Path():
		body = launchesJSON
	case spacex.InfoEndpoint.Path():
		body = companyJSON
	default:
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// Total returns how many requests reached the server.
func (s *Server) Total() int {
	return int(s.total.Load())
}
