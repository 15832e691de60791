// Package core provides small shared utilities for the spacex client.
// This file contains option functions for customizing persisted log entries.
package core

import (
	"github.com/brunojasgv/spacex/domain"
	"github.com/google/uuid"
)

// LogOption customizes a domain.Log before it is persisted.
type LogOption func(log *domain.Log) error

// LogWithContext is an option to add a context map to a log entry.
func LogWithContext(context map[string]any) LogOption {
	return func(log *domain.Log) error {
		log.Context = context
		return nil
	}
}

// LogWithFetchID is an option to associate a log entry with a session execution ID.
func LogWithFetchID(id uuid.UUID) LogOption {
	return func(log *domain.Log) error {
		if id == uuid.Nil {
			return nil
		}
		log.FetchID = &id
		return nil
	}
}
