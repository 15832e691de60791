// Package spacextest provides Session substitutes and recorded API payloads for tests.
package spacextest

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/brunojasgv/spacex"
)

//go:embed testdata/launches.json
var launchesJSON []byte

//go:embed testdata/company.json
var companyJSON []byte

// LaunchCount is the number of records in LaunchesJSON.
const LaunchCount = 205

// LaunchesJSON returns a copy of the recorded /v4/launches payload.
func LaunchesJSON() []byte {
	return append([]byte(nil), launchesJSON...)
}

// CompanyJSON returns a copy of the recorded /v4/company payload.
func CompanyJSON() []byte {
	return append([]byte(nil), companyJSON...)
}

// MockSession decodes fixed data into every target instead of touching the network.
// Responses keyed by URL path take precedence over Data.
type MockSession struct {
	Data      []byte
	Responses map[string][]byte
	Err       error // Returned as is, before any decoding, when set.

	mu       sync.Mutex
	requests []*http.Request
	retries  []int
}

// NewMockSession serves the recorded payloads for both endpoints.
func NewMockSession() *MockSession {
	return &MockSession{
		Responses: map[string][]byte{
			spacex.LaunchesEndpoint.Path(): LaunchesJSON(),
			spacex.InfoEndpoint.Path():     CompanyJSON(),
		},
	}
}

func (m *MockSession) Execute(ctx context.Context, req *http.Request, target any, retries int) error {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.retries = append(m.retries, retries)
	m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", spacex.ErrTransport, err)
	}
	data := m.Data
	if body, ok := m.Responses[req.URL.Path]; ok {
		data = body
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %w", spacex.ErrDecode, err)
	}
	return nil
}

// Requests returns every request seen so far.
func (m *MockSession) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request(nil), m.requests...)
}

// Retries returns the retries argument of every call so far.
func (m *MockSession) Retries() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.retries...)
}

var _ spacex.Session = (*MockSession)(nil)
