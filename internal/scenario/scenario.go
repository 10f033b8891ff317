// Package scenario produces citizen requests and in-character replies. The
// Director combines local randomness with a language Model and degrades to a
// fallback scenario or a neutral reply when the model cannot be reached.
package scenario

import (
	"context"
	"time"

	"govos/internal/document"
	"govos/pkg/domain"
)

// Kind distinguishes the scripted tutorial from generated scenarios.
type Kind string

const (
	KindTutorial Kind = "tutorial"
	KindNormal   Kind = "normal"
	KindEvent    Kind = "event"
)

// Status tracks whether the scenario has been resolved.
type Status string

const (
	StatusActive Status = "active"
	StatusSolved Status = "solved"
	StatusFailed Status = "failed"
)

// Scenario is one citizen or boss request.
type Scenario struct {
	ID             domain.ScenarioID       `json:"id" yaml:"id"`
	Kind           Kind                    `json:"kind" yaml:"kind"`
	CitizenName    string                  `json:"citizen_name" yaml:"citizen_name"`
	Profile        document.CitizenProfile `json:"profile" yaml:"profile"`
	InitialMessage string                  `json:"initial_message" yaml:"initial_message"`
	Status         Status                  `json:"status" yaml:"status"`
	Fallback       bool                    `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	CreatedAt      time.Time               `json:"created_at" yaml:"created_at"`
}

// IsExcel reports whether the scenario is a spreadsheet mission.
func (s Scenario) IsExcel() bool {
	return s.Profile.MissionType == document.MissionExcel
}

// Reply is a character's answer to the player. MoodChange is subtracted
// from the player's stress.
type Reply struct {
	Text       string `json:"text"`
	MoodChange int    `json:"moodChange"`
}

// NeutralReply is returned when no reply could be produced.
var NeutralReply = Reply{Text: "...", MoodChange: 0}

// Generator produces the scenario for a day. Model failures yield a fallback
// scenario, not an error.
type Generator interface {
	Generate(ctx context.Context, day int) (Scenario, error)
}

// Replier answers a player's chat line. Model failures yield NeutralReply.
type Replier interface {
	Reply(ctx context.Context, sc Scenario, playerMessage string) (Reply, error)
}
