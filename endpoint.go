package spacex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultBaseURL is the origin of the public SpaceX API.
const DefaultBaseURL = "https://api.spacexdata.com"

// Endpoint describes a resource as a base origin and an absolute path.
type Endpoint interface {
	Base() string
	Path() string
}

// SpaceXEndpoint enumerates the resources the client knows about.
type SpaceXEndpoint int

const (
	LaunchesEndpoint SpaceXEndpoint = iota
	InfoEndpoint
)

func (e SpaceXEndpoint) Base() string {
	return DefaultBaseURL
}

func (e SpaceXEndpoint) Path() string {
	switch e {
	case LaunchesEndpoint:
		return "/v4/launches"
	case InfoEndpoint:
		return "/v4/company"
	default:
		return ""
	}
}

// String returns the resource name used in logs, metrics and the fetch history.
func (e SpaceXEndpoint) String() string {
	switch e {
	case LaunchesEndpoint:
		return ResourceLaunches
	case InfoEndpoint:
		return ResourceCompany
	default:
		return fmt.Sprintf("endpoint(%d)", int(e))
	}
}

type rebasedEndpoint struct {
	Endpoint
	base string
}

func (r rebasedEndpoint) Base() string {
	return r.base
}

// Rebase returns an endpoint with the same path served from base.
// An empty base leaves the endpoint untouched.
func Rebase(endpoint Endpoint, base string) Endpoint {
	if base == "" {
		return endpoint
	}
	return rebasedEndpoint{Endpoint: endpoint, base: base}
}

// EndpointURL resolves the endpoint into an absolute URL. The path of the base is replaced by the endpoint path.
func EndpointURL(endpoint Endpoint) (*url.URL, error) {
	u, err := url.Parse(endpoint.Base())
	if err != nil {
		return nil, fmt.Errorf("parsing base url %q : %w", endpoint.Base(), err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must include a scheme and a host", endpoint.Base())
	}
	u.Path = endpoint.Path()
	u.RawPath = ""
	return u, nil
}

// NewRequest builds the GET request for the endpoint. It performs no I/O.
func NewRequest(ctx context.Context, endpoint Endpoint) (*http.Request, error) {
	u, err := EndpointURL(endpoint)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s : %w", u, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
