package spacex

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/brunojasgv/spacex/domain"
)

// Service provides the two remote resources.
type Service interface {
	FetchLaunches(ctx context.Context) ([]domain.Launch, error)
	FetchInfo(ctx context.Context) (domain.Company, error)
}

// SpaceXService maps Service calls onto a Session.
type SpaceXService struct {
	session Session
	baseURL string
	retries int
}

// ServiceOption configures a SpaceXService.
type ServiceOption func(*SpaceXService) error

// NewService returns a service that executes its requests through session with no retries.
func NewService(session Session, options ...ServiceOption) (*SpaceXService, error) {
	if session == nil {
		return nil, errors.New("session is required")
	}
	s := &SpaceXService{session: session}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, fmt.Errorf("applying option on service : %w", err)
		}
	}
	return s, nil
}

// WithBaseURL serves every endpoint from base instead of DefaultBaseURL.
func WithBaseURL(base string) ServiceOption {
	return func(s *SpaceXService) error {
		if base == "" {
			s.baseURL = ""
			return nil
		}
		u, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("parsing base url : %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base url %q must include a scheme and a host", base)
		}
		s.baseURL = base
		return nil
	}
}

// WithServiceRetries sets how many times a failed request is re-issued.
func WithServiceRetries(retries int) ServiceOption {
	return func(s *SpaceXService) error {
		if retries < 0 {
			return fmt.Errorf("retries must not be negative, got %d", retries)
		}
		s.retries = retries
		return nil
	}
}

// FetchLaunches retrieves every launch. Errors from the session are returned unchanged.
func (s *SpaceXService) FetchLaunches(ctx context.Context) ([]domain.Launch, error) {
	req, err := NewRequest(ctx, Rebase(LaunchesEndpoint, s.baseURL))
	if err != nil {
		return nil, err
	}
	var launches []domain.Launch
	if err := s.session.Execute(ctx, req, &launches, s.retries); err != nil {
		return nil, err
	}
	return launches, nil
}

// FetchInfo retrieves the company record. Errors from the session are returned unchanged.
func (s *SpaceXService) FetchInfo(ctx context.Context) (domain.Company, error) {
	req, err := NewRequest(ctx, Rebase(InfoEndpoint, s.baseURL))
	if err != nil {
		return domain.Company{}, err
	}
	var company domain.Company
	if err := s.session.Execute(ctx, req, &company, s.retries); err != nil {
		return domain.Company{}, err
	}
	return company, nil
}
