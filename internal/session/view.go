package session

import (
	"govos/internal/desktop"
	"govos/internal/document"
	"govos/internal/issuance"
	"govos/internal/scenario"
	"govos/pkg/domain"
)

// ScenarioView is what the player can see of the active request. The
// citizen's profile stays hidden; the player learns it through the chat.
type ScenarioView struct {
	ID          domain.ScenarioID        `json:"id"`
	Kind        scenario.Kind            `json:"kind"`
	CitizenName string                   `json:"citizen_name"`
	Mission     document.MissionType     `json:"mission_type"`
	Status      scenario.Status          `json:"status"`
	Fallback    bool                     `json:"fallback,omitempty"`
	Transcript  []document.ChatMessage   `json:"transcript"`
	Records     []document.HistoryRecord `json:"history_records,omitempty"`
}

// Snapshot is a session rendered for a client.
type Snapshot struct {
	ID            domain.SessionID          `json:"id"`
	Stats         Stats                     `json:"stats"`
	Desktop       desktop.Snapshot          `json:"desktop"`
	Scenario      *ScenarioView             `json:"scenario,omitempty"`
	Loading       bool                      `json:"loading_scenario"`
	Typing        bool                      `json:"typing"`
	Notifications []string                  `json:"notifications"`
	Mailbox       []Email                   `json:"mailbox"`
	Unread        int                       `json:"unread"`
	Log           []LogEntry                `json:"log"`
	Form          issuance.Form             `json:"form"`
	Excel         [][]string                `json:"excel"`
	Processing    bool                      `json:"processing_issue"`
	Printed       *issuance.DocumentPreview `json:"printed,omitempty"`
}

// Snapshot renders the session. The printed document goes through the
// clerk's preview so masked national ids stay masked.
func (s *State) Snapshot(clerk Clerk) Snapshot {
	snap := Snapshot{
		ID:            s.ID,
		Stats:         s.stats,
		Desktop:       s.desk.Snapshot(),
		Loading:       s.AwaitingScenario(),
		Typing:        s.Typing(),
		Notifications: s.Notifications(),
		Mailbox:       s.Mailbox(),
		Log:           s.Log(),
		Form:          s.form,
		Excel:         s.grid.Rows(),
		Processing:    s.Processing(),
	}
	for _, m := range s.mailbox {
		if !m.Read {
			snap.Unread++
		}
	}
	if s.current != nil {
		sc := s.current
		snap.Scenario = &ScenarioView{
			ID:          sc.ID,
			Kind:        sc.Kind,
			CitizenName: sc.CitizenName,
			Mission:     sc.Profile.MissionType,
			Status:      sc.Status,
			Fallback:    sc.Fallback,
			Transcript:  append([]document.ChatMessage(nil), sc.Profile.Dialogue...),
			Records:     append([]document.HistoryRecord(nil), sc.Profile.HistoryRecords...),
		}
	}
	if s.printed != nil {
		p := clerk.Preview(*s.printed)
		snap.Printed = &p
	}
	return snap
}
