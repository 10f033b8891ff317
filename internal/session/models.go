package session

import (
	"time"

	"govos/internal/desktop"
	"govos/pkg/domain"
)

// Meter bounds and the starting stats of a fresh session.
const (
	MinStat = 0
	MaxStat = 100
)

// InitialStats is the player's state on day one.
var InitialStats = Stats{Stress: 10, Reputation: 50, Performance: 50, Day: 1}

// Stats are the player's meters. Stress, Reputation and Performance stay
// within [MinStat, MaxStat]; Day only grows.
type Stats struct {
	Stress      int `json:"stress"`
	Reputation  int `json:"reputation"`
	Performance int `json:"performance"`
	Day         int `json:"day"`
}

// Adjust applies the deltas and clamps every meter.
func (s Stats) Adjust(stress, reputation, performance int) Stats {
	s.Stress = clamp(s.Stress + stress)
	s.Reputation = clamp(s.Reputation + reputation)
	s.Performance = clamp(s.Performance + performance)
	return s
}

func clamp(v int) int {
	return min(max(v, MinStat), MaxStat)
}

// LogType classifies a game log line.
type LogType string

const (
	LogScenario LogType = "scenario"
	LogAction   LogType = "action"
	LogOutcome  LogType = "outcome"
	LogSystem   LogType = "system"
)

// MaxLogEntries bounds the game log; the oldest lines are dropped first.
const MaxLogEntries = 200

// LogEntry is one line of the game log.
type LogEntry struct {
	ID      domain.LogID `json:"id"`
	Day     int          `json:"day"`
	Message string       `json:"message"`
	Type    LogType      `json:"type"`
	At      time.Time    `json:"at"`
}

// Email is a message in the mail client.
type Email struct {
	ID    int    `json:"id"`
	From  string `json:"sender"`
	Time  string `json:"time"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Read  bool   `json:"read"`
	Spam  bool   `json:"is_spam"`
}

// Scheduled session events. They share the desktop's schedule type.
const (
	EventIssueProcessed desktop.EventKind = "issue_processed"
	EventTutorialReply  desktop.EventKind = "tutorial_reply"
	EventNextScenario   desktop.EventKind = "next_scenario"
)

// Delays between a command and its scheduled effect.
const (
	IssueProcessingDelay = 2 * time.Second
	NextScenarioDelay    = 500 * time.Millisecond
)

// Outcome meter deltas.
const (
	AcceptReputation  = 10
	AcceptPerformance = 10
	RejectStress      = 10
	RejectReputation  = -5
	ExcelPerformance  = 15
	ExcelReputation   = 5
	ExcelStress       = 10
	SkipStress        = 5
)

// Lines and notifications shown to the player.
const (
	LineAccepted      = "감사합니다. 수고 많으시네요."
	LineExcelAccepted = "음, 확인했네. 수고했어. 다음 업무 준비하게."
	LineExcelRejected = "자네, 눈이 어떻게 된 건가? 데이터가 틀렸잖아. 메일 다시 확인해봐!"

	NoticeTutorial   = "[튜토리얼] 김팀장님의 메시지가 도착했습니다."
	NoticeSkipped    = "실무에 투입되었습니다. 건투를 빕니다."
	NoticeSelfIssued = "[시스템] 본인 증명서 발급이 완료되었습니다."

	MsgNotIssueMission = "지금은 문서 발급 업무가 아닙니다."
	MsgNothingToReport = "지금은 보고할 내용이 없거나 일반 민원 업무 중입니다."
	MsgRequestSolved   = "이미 처리가 끝난 민원입니다."
)
