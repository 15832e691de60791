// Package domain defines the data structures of the spacex client.
// It contains the decoded API models, LaunchRecord and CompanyInfo, as well as the
// fetch history and log records together with the repository interfaces that
// define the contracts for their persistence.
//
// The package has no dependency on the HTTP layer or the database, so the
// session, the view-model and the db package can all share these types.
package domain
