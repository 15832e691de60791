package spacex

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/brunojasgv/spacex/domain"
)

// FilterMode selects how the launch list is projected.
type FilterMode string

const (
	FilterSuccessful FilterMode = "successful"
	FilterFailed     FilterMode = "failed"
	FilterAscending  FilterMode = "ascending"
	FilterDescending FilterMode = "descending"
)

// DefaultFilter is the mode a new view-model starts with.
const DefaultFilter = FilterAscending

// FilterModes lists every mode in display order.
var FilterModes = []FilterMode{FilterSuccessful, FilterFailed, FilterAscending, FilterDescending}

// ParseFilterMode parses a mode name, case-insensitively. The empty string yields DefaultFilter.
func ParseFilterMode(s string) (FilterMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultFilter, nil
	}
	mode := FilterMode(s)
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
	return mode, nil
}

func (m FilterMode) Valid() bool {
	return slices.Contains(FilterModes, m)
}

// Filter returns a new slice holding the projection of launches for mode; launches is never modified.
// Successful and Failed keep the input order and exclude launches with an unknown outcome.
// Ascending and Descending are stable sorts by date where a missing date counts as now.
// An invalid mode behaves like DefaultFilter.
func Filter(launches []domain.Launch, mode FilterMode, now time.Time) []domain.Launch {
	switch mode {
	case FilterSuccessful:
		return keep(launches, domain.Launch.Succeeded)
	case FilterFailed:
		return keep(launches, domain.Launch.Failed)
	case FilterDescending:
		sorted := slices.Clone(launches)
		slices.SortStableFunc(sorted, func(a, b domain.Launch) int {
			return compareDates(b, a, now)
		})
		return nonNil(sorted)
	default:
		sorted := slices.Clone(launches)
		slices.SortStableFunc(sorted, func(a, b domain.Launch) int {
			return compareDates(a, b, now)
		})
		return nonNil(sorted)
	}
}

func compareDates(a, b domain.Launch, now time.Time) int {
	return a.DateOr(now).Compare(b.DateOr(now))
}

func keep(launches []domain.Launch, predicate func(domain.Launch) bool) []domain.Launch {
	kept := make([]domain.Launch, 0, len(launches))
	for _, launch := range launches {
		if predicate(launch) {
			kept = append(kept, launch)
		}
	}
	return kept
}

func nonNil(launches []domain.Launch) []domain.Launch {
	if launches == nil {
		return []domain.Launch{}
	}
	return launches
}
