// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "govos/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a ScenarioID where a SessionID is expected.
type (
	SessionID  uuid.UUID
	ScenarioID uuid.UUID
	LogID      uuid.UUID
)

// NewSessionID returns a random session identifier.
func NewSessionID() SessionID { return SessionID(uuid.New()) }

// NewScenarioID returns a random scenario identifier.
func NewScenarioID() ScenarioID { return ScenarioID(uuid.New()) }

// NewLogID returns a random game-log entry identifier.
func NewLogID() LogID { return LogID(uuid.New()) }

// Parse functions - use at trust boundaries (handlers, CLI input).

func ParseSessionID(s string) (SessionID, error) {
	id, err := parseUUID(s, "session ID")
	return SessionID(id), err
}

func ParseScenarioID(s string) (ScenarioID, error) {
	id, err := parseUUID(s, "scenario ID")
	return ScenarioID(id), err
}

// String methods - for logging and JSON.

func (id SessionID) String() string  { return uuid.UUID(id).String() }
func (id ScenarioID) String() string { return uuid.UUID(id).String() }
func (id LogID) String() string      { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id SessionID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ScenarioID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs appear as plain strings in JSON and YAML.
func (id SessionID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id ScenarioID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id LogID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return id, nil
}
