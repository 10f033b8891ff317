// Package session owns one player's game: meters, desktop, active request,
// portal form, spreadsheet, mailbox and game log. State is mutated only
// through its commands; model calls are handed back to the caller as Work
// and their results applied with CompleteGeneration and CompleteReply.
package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"govos/internal/desktop"
	"govos/internal/document"
	"govos/internal/issuance"
	"govos/internal/scenario"
	"govos/pkg/domain"
	dErrors "govos/pkg/domain-errors"
)

// Clerk issues, reviews and renders documents.
type Clerk interface {
	Issue(form issuance.Form, profile *document.CitizenProfile, now time.Time) document.PrintedDoc
	Review(ctx context.Context, doc document.PrintedDoc, profile document.CitizenProfile) issuance.Verdict
	Preview(doc document.PrintedDoc) issuance.DocumentPreview
}

// WorkKind names the model call a command asks for.
type WorkKind string

const (
	WorkGenerate WorkKind = "generate"
	WorkReply    WorkKind = "reply"
)

// Work is a model call to run outside the session lock. Its result is only
// applied while Seq is still the one the session waits for.
type Work struct {
	Kind     WorkKind
	Seq      uint64
	Day      int
	Scenario scenario.Scenario
	Message  string
}

// State is one player's game.
type State struct {
	ID        domain.SessionID
	CreatedAt time.Time
	UpdatedAt time.Time

	stats   Stats
	desk    *desktop.Desktop
	current *scenario.Scenario

	form       issuance.Form
	processing *document.PrintedDoc
	printed    *document.PrintedDoc
	grid       Grid

	mailbox       []Email
	nextMailID    int
	notifications []string
	log           []LogEntry

	timers          desktop.Schedule
	tutorialMessage string

	seq              uint64
	awaitingScenario uint64
	awaitingReply    uint64
}

// New returns a session that has not started yet.
func New(id domain.SessionID, now time.Time) *State {
	s := &State{ID: id, CreatedAt: now, UpdatedAt: now}
	s.reset()
	return s
}

func (s *State) reset() {
	s.stats = InitialStats
	s.desk = desktop.New()
	s.current = nil
	s.form = issuance.NewForm()
	s.processing = nil
	s.printed = nil
	s.grid = Grid{}
	s.mailbox = seedMailbox()
	s.nextMailID = len(s.mailbox) + 1
	s.notifications = nil
	s.log = nil
	s.timers = desktop.Schedule{}
	s.tutorialMessage = ""
	s.awaitingScenario = 0
	s.awaitingReply = 0
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	c := *s
	c.desk = s.desk.Clone()
	if s.current != nil {
		sc := cloneScenario(*s.current)
		c.current = &sc
	}
	c.form.SelectedRecords = slices.Clone(s.form.SelectedRecords)
	if s.processing != nil {
		d := *s.processing
		c.processing = &d
	}
	if s.printed != nil {
		d := *s.printed
		c.printed = &d
	}
	c.mailbox = slices.Clone(s.mailbox)
	c.notifications = slices.Clone(s.notifications)
	c.log = slices.Clone(s.log)
	c.timers = s.timers.Clone()
	return &c
}

func cloneScenario(sc scenario.Scenario) scenario.Scenario {
	sc.Profile.Dialogue = slices.Clone(sc.Profile.Dialogue)
	return sc
}

// Stats returns the current meters.
func (s *State) Stats() Stats { return s.stats }

// Scenario returns the active request, if any.
func (s *State) Scenario() (scenario.Scenario, bool) {
	if s.current == nil {
		return scenario.Scenario{}, false
	}
	return cloneScenario(*s.current), true
}

// Form returns the portal form.
func (s *State) Form() issuance.Form { return s.form }

// Printed returns the document waiting for confirmation, if any.
func (s *State) Printed() (document.PrintedDoc, bool) {
	if s.printed == nil {
		return document.PrintedDoc{}, false
	}
	return *s.printed, true
}

// Mailbox returns the inbox, newest first.
func (s *State) Mailbox() []Email { return slices.Clone(s.mailbox) }

// Notifications returns the current notification list.
func (s *State) Notifications() []string { return slices.Clone(s.notifications) }

// Log returns the game log, oldest first.
func (s *State) Log() []LogEntry { return slices.Clone(s.log) }

// Desktop exposes the window manager for read access.
func (s *State) Desktop() desktop.Snapshot { return s.desk.Snapshot() }

// AwaitingScenario reports whether a generation is outstanding.
func (s *State) AwaitingScenario() bool { return s.awaitingScenario != 0 }

// Typing reports whether the other side of the chat is composing a reply.
func (s *State) Typing() bool {
	return s.awaitingReply != 0 || s.timers.Pending(EventTutorialReply)
}

// Processing reports whether a document is being issued.
func (s *State) Processing() bool { return s.processing != nil }

// NextTimer returns when the earliest scheduled event is due.
func (s *State) NextTimer() (time.Time, bool) {
	at, ok := s.timers.NextAt()
	if dt, dok := s.desk.NextTimer(); dok && (!ok || dt.Before(at)) {
		return dt, true
	}
	return at, ok
}

// Start begins the workday. Without skipTutorial the scripted tutorial is
// installed and the messenger opened; otherwise the first generated
// scenario is requested.
func (s *State) Start(skipTutorial bool, now time.Time) *Work {
	s.reset()
	s.record(LogSystem, "근무를 시작합니다.", now)

	if !skipTutorial {
		s.InstallScenario(scenario.Tutorial(now), now)
		s.notifications = []string{NoticeTutorial}
		_ = s.desk.Open(desktop.Messenger, now)
		return nil
	}

	s.notifications = []string{NoticeSkipped}
	return s.requestScenario()
}

// InstallScenario makes sc the active request and resets the portal form
// and spreadsheet for it.
func (s *State) InstallScenario(sc scenario.Scenario, now time.Time) {
	sc = cloneScenario(sc)
	sc.Status = scenario.StatusActive
	sc.Profile.Dialogue = []document.ChatMessage{{
		Sender:    document.SenderCitizen,
		Text:      sc.InitialMessage,
		Timestamp: now,
	}}
	s.current = &sc
	s.awaitingScenario = 0
	s.awaitingReply = 0
	s.tutorialMessage = ""
	s.timers.Cancel(EventTutorialReply)
	s.timers.Cancel(EventIssueProcessed)

	if sc.IsExcel() {
		s.mailbox = append([]Email{taskMail(s.nextMailID, sc, now)}, s.mailbox...)
		s.nextMailID++
		s.notifications = []string{"📧 새 메일이 도착했습니다: " + sc.CitizenName}
		s.record(LogScenario, fmt.Sprintf("%s님의 업무 메일이 도착했습니다.", sc.CitizenName), now)
	} else {
		s.notifications = []string{fmt.Sprintf("[새 업무] %s님이 대화 요청.", sc.CitizenName)}
		s.record(LogScenario, fmt.Sprintf("%s님: %s", sc.CitizenName, sc.InitialMessage), now)
	}

	s.form = issuance.NewForm().Select(document.ResidentDeungbon)
	s.processing = nil
	s.printed = nil
	s.grid = Grid{}
}

// CompleteGeneration installs a generated scenario. It reports false and
// changes nothing when seq is not the generation the session waits for.
func (s *State) CompleteGeneration(seq uint64, sc scenario.Scenario, now time.Time) bool {
	if seq == 0 || seq != s.awaitingScenario {
		return false
	}
	if sc.Fallback {
		s.record(LogSystem, "민원 생성에 실패하여 대체 민원을 불러왔습니다.", now)
	}
	s.InstallScenario(sc, now)
	return true
}

// Chat sends a line to the active citizen.
func (s *State) Chat(text string, now time.Time) (*Work, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "message is required")
	}
	if s.current == nil {
		return nil, dErrors.New(dErrors.CodeInvalidState, "no active conversation")
	}
	if s.Typing() {
		return nil, dErrors.New(dErrors.CodeConflict, "a reply is still being written")
	}

	s.say(document.SenderPlayer, text, now)
	s.record(LogAction, "나: "+text, now)

	if s.current.Kind == scenario.KindTutorial {
		s.tutorialMessage = text
		s.timers.Add(EventTutorialReply, now, scenario.TutorialReplyDelay)
		return nil, nil
	}

	s.seq++
	s.awaitingReply = s.seq
	return &Work{Kind: WorkReply, Seq: s.seq, Scenario: cloneScenario(*s.current), Message: text}, nil
}

// CompleteReply appends a citizen's reply. MoodChange is subtracted from
// stress. Replies to a superseded line or scenario are dropped.
func (s *State) CompleteReply(seq uint64, r scenario.Reply, now time.Time) bool {
	if seq == 0 || seq != s.awaitingReply || s.current == nil {
		return false
	}
	s.awaitingReply = 0
	s.say(document.SenderCitizen, r.Text, now)
	s.stats = s.stats.Adjust(-r.MoodChange, 0, 0)
	return true
}

// SelectDocument picks the document type in the portal and resets the form.
func (s *State) SelectDocument(t document.DocType, now time.Time) {
	s.form = s.form.Select(t)
	s.record(LogAction, fmt.Sprintf("서류 선택: %s", document.LabelOf(t)), now)
}

// UpdateForm applies a patch to the portal form. Selected record indexes
// must exist on the active request.
func (s *State) UpdateForm(p issuance.FormPatch) error {
	if p.SelectedRecords != nil {
		available := 0
		if s.current != nil {
			available = len(s.current.Profile.HistoryRecords)
		}
		if err := issuance.CheckRecordIndexes(p.SelectedRecords, available); err != nil {
			return err
		}
	}
	s.form = p.Apply(s.form)
	return nil
}

// RequestIssue starts issuing the form. The document appears after
// IssueProcessingDelay. Only the player's own documents may be issued
// outside an issuance request.
func (s *State) RequestIssue(clerk Clerk, now time.Time) error {
	if s.processing != nil {
		return dErrors.New(dErrors.CodeConflict, "a document is already being issued")
	}
	if !s.form.IsSelfIssue() {
		if s.current == nil || s.current.Profile.MissionType != document.MissionIssue {
			return dErrors.New(dErrors.CodeConflict, MsgNotIssueMission)
		}
		if s.solved() {
			return dErrors.New(dErrors.CodeInvalidState, MsgRequestSolved)
		}
	}

	var profile *document.CitizenProfile
	if s.current != nil {
		p := s.current.Profile
		profile = &p
	}
	doc := clerk.Issue(s.form, profile, now)
	s.processing = &doc
	s.timers.Add(EventIssueProcessed, now, IssueProcessingDelay)
	s.record(LogAction, fmt.Sprintf("%s 발급 요청", doc.Label), now)
	return nil
}

// ShredDocument discards the printed document.
func (s *State) ShredDocument(now time.Time) error {
	if s.printed == nil {
		return dErrors.New(dErrors.CodeInvalidState, "no printed document")
	}
	s.record(LogAction, fmt.Sprintf("%s 파기", s.printed.Label), now)
	s.printed = nil
	return nil
}

// ConfirmPrint hands the printed document to the citizen and applies the
// outcome. An accepted document resolves the request and schedules the
// next one; a rejected one keeps the request open.
func (s *State) ConfirmPrint(ctx context.Context, clerk Clerk, now time.Time) (issuance.Verdict, error) {
	if s.printed == nil {
		return issuance.Verdict{}, dErrors.New(dErrors.CodeInvalidState, "no printed document")
	}
	doc := *s.printed
	if !document.IsPlayer(doc.Name, doc.RRNFront) {
		if s.current == nil {
			return issuance.Verdict{}, dErrors.New(dErrors.CodeInvalidState, "no active request")
		}
		if s.solved() {
			return issuance.Verdict{}, dErrors.New(dErrors.CodeInvalidState, MsgRequestSolved)
		}
	}

	var profile document.CitizenProfile
	if s.current != nil {
		profile = s.current.Profile
	}
	v := clerk.Review(ctx, doc, profile)
	s.printed = nil

	if v.SelfIssued {
		s.notifications = []string{NoticeSelfIssued}
		s.form = s.form.Select(s.form.DocType)
		s.record(LogOutcome, fmt.Sprintf("본인 %s 발급 완료", doc.Label), now)
		return v, nil
	}

	if v.Accepted {
		s.say(document.SenderCitizen, LineAccepted, now)
		s.resolve(AcceptReputation, AcceptPerformance, now)
		s.record(LogOutcome, fmt.Sprintf("%s 발급 완료", doc.Label), now)
		return v, nil
	}

	s.say(document.SenderCitizen, v.Citizen(), now)
	s.stats = s.stats.Adjust(RejectStress, RejectReputation, 0)
	_ = s.desk.Open(desktop.Messenger, now)
	s.record(LogOutcome, "반려: "+v.Reason, now)
	return v, nil
}

// UpdateExcel writes cells. Either every cell is written or none is.
func (s *State) UpdateExcel(cells []Cell) error {
	g := s.grid
	for _, c := range cells {
		if err := g.Set(c); err != nil {
			return err
		}
	}
	s.grid = g
	return nil
}

// ReportExcel submits the spreadsheet for the active mission. It reports
// whether every expected pair was found.
func (s *State) ReportExcel(now time.Time) (bool, error) {
	if s.current == nil || !s.current.IsExcel() {
		return false, dErrors.New(dErrors.CodeConflict, MsgNothingToReport)
	}
	if s.solved() {
		return false, dErrors.New(dErrors.CodeInvalidState, MsgRequestSolved)
	}

	expected := s.current.Profile.ExcelRows
	if s.grid.Matched(expected) >= len(expected) {
		s.say(document.SenderCitizen, LineExcelAccepted, now)
		s.resolve(ExcelReputation, ExcelPerformance, now)
		s.record(LogOutcome, "자료 정리 보고 완료", now)
		return true, nil
	}

	s.say(document.SenderCitizen, LineExcelRejected, now)
	s.stats = s.stats.Adjust(ExcelStress, 0, 0)
	_ = s.desk.Open(desktop.Messenger, now)
	s.record(LogOutcome, "자료 정리 반려", now)
	return false, nil
}

// solved reports whether the active request was already accepted and is
// waiting out NextScenarioDelay.
func (s *State) solved() bool {
	return s.current != nil && s.current.Status == scenario.StatusSolved
}

// resolve closes the active request as solved and schedules the next one.
func (s *State) resolve(reputation, performance int, now time.Time) {
	s.current.Status = scenario.StatusSolved
	s.stats = s.stats.Adjust(0, reputation, performance)
	s.stats.Day++
	_ = s.desk.Open(desktop.Messenger, now)
	s.timers.Cancel(EventNextScenario)
	s.timers.Add(EventNextScenario, now, NextScenarioDelay)
}

// Skip abandons the active request and asks for the next one at once.
func (s *State) Skip(now time.Time) *Work {
	s.current = nil
	s.awaitingReply = 0
	s.tutorialMessage = ""
	s.timers.Cancel(EventNextScenario)
	s.timers.Cancel(EventTutorialReply)
	s.stats = s.stats.Adjust(SkipStress, 0, 0)
	s.record(LogAction, "민원을 넘겼습니다.", now)
	return s.requestScenario()
}

func (s *State) requestScenario() *Work {
	s.seq++
	s.awaitingScenario = s.seq
	return &Work{Kind: WorkGenerate, Seq: s.seq, Day: s.stats.Day}
}

// Window commands.

func (s *State) OpenWindow(id desktop.AppID, now time.Time) error {
	if err := s.desk.Open(id, now); err != nil {
		return err
	}
	s.recordWindow(id, "실행", now)
	return nil
}

func (s *State) CloseWindow(id desktop.AppID, now time.Time) error {
	if err := s.desk.Close(id); err != nil {
		return err
	}
	s.recordWindow(id, "종료", now)
	return nil
}

func (s *State) MinimizeWindow(id desktop.AppID, now time.Time) error {
	if err := s.desk.Minimize(id); err != nil {
		return err
	}
	s.recordWindow(id, "최소화", now)
	return nil
}

func (s *State) FocusWindow(id desktop.AppID) error { return s.desk.Focus(id) }

func (s *State) ActivateWindow(id desktop.AppID, now time.Time) error {
	return s.desk.Activate(id, now)
}

func (s *State) ToggleStartMenu() { s.desk.ToggleStartMenu() }

func (s *State) BeginDrag(id desktop.AppID, p desktop.Point) error { return s.desk.BeginDrag(id, p) }

func (s *State) DragTo(p desktop.Point) { s.desk.DragTo(p) }

func (s *State) EndDrag() { s.desk.EndDrag() }

func (s *State) recordWindow(id desktop.AppID, verb string, now time.Time) {
	w, _ := s.desk.Window(id)
	s.record(LogAction, fmt.Sprintf("%s %s", w.Title, verb), now)
}

// Mail commands.

// ReadMail marks a mail as read.
func (s *State) ReadMail(id int) error {
	i := s.mailIndex(id)
	if i < 0 {
		return dErrors.Newf(dErrors.CodeNotFound, "mail %d not found", id)
	}
	s.mailbox[i].Read = true
	return nil
}

// ReplyMail records a reply in the game log.
func (s *State) ReplyMail(id int, body string, now time.Time) error {
	i := s.mailIndex(id)
	if i < 0 {
		return dErrors.Newf(dErrors.CodeNotFound, "mail %d not found", id)
	}
	if strings.TrimSpace(body) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "reply body is required")
	}
	s.mailbox[i].Read = true
	s.record(LogAction, fmt.Sprintf("메일 회신: %s (%s)", s.mailbox[i].Title, s.mailbox[i].From), now)
	return nil
}

// DeleteMail removes a mail from the inbox.
func (s *State) DeleteMail(id int) error {
	i := s.mailIndex(id)
	if i < 0 {
		return dErrors.Newf(dErrors.CodeNotFound, "mail %d not found", id)
	}
	s.mailbox = slices.Delete(s.mailbox, i, i+1)
	return nil
}

func (s *State) mailIndex(id int) int {
	return slices.IndexFunc(s.mailbox, func(m Email) bool { return m.ID == id })
}

// Advance fires every event due at now and returns the generation the
// next-scenario event asks for, if it fired.
func (s *State) Advance(now time.Time) *Work {
	s.desk.Advance(now)

	var work *Work
	for _, ev := range s.timers.Due(now) {
		switch ev.Kind {
		case EventIssueProcessed:
			if s.processing == nil {
				continue
			}
			s.printed = s.processing
			s.processing = nil
			s.record(LogSystem, fmt.Sprintf("%s 출력 완료", s.printed.Label), ev.At)
		case EventTutorialReply:
			if s.current == nil || s.current.Kind != scenario.KindTutorial {
				continue
			}
			s.say(document.SenderCitizen, scenario.TutorialReply(s.tutorialMessage).Text, ev.At)
			s.tutorialMessage = ""
		case EventNextScenario:
			s.current = nil
			s.awaitingReply = 0
			work = s.requestScenario()
		}
	}
	return work
}

func (s *State) say(from document.Sender, text string, now time.Time) {
	s.current.Profile.Dialogue = append(s.current.Profile.Dialogue, document.ChatMessage{
		Sender:    from,
		Text:      text,
		Timestamp: now,
	})
}

func (s *State) record(t LogType, msg string, now time.Time) {
	s.log = append(s.log, LogEntry{
		ID:      domain.NewLogID(),
		Day:     s.stats.Day,
		Message: msg,
		Type:    t,
		At:      now,
	})
	if n := len(s.log) - MaxLogEntries; n > 0 {
		s.log = slices.Delete(s.log, 0, n)
	}
}
