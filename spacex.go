// Package spacex is a read-only client of the public SpaceX API.
//
// A Session executes requests and decodes JSON responses, a Service maps the
// launches and company resources onto a Session, and a ViewModel exposes the
// results as observable FetchState values together with a client side filter
// over the launch list. Fetch attempts can be recorded into a sqlite history
// (see the db package) and reported to a metrics.Sink.
package spacex

// Resource names shared by logs, metrics and the fetch history.
const (
	ResourceLaunches = "launches"
	ResourceCompany  = "company"
)
