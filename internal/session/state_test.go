package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"govos/internal/desktop"
	"govos/internal/document"
	"govos/internal/issuance"
	"govos/internal/scenario"
	"govos/pkg/domain"
	dErrors "govos/pkg/domain-errors"
)

type StateSuite struct {
	suite.Suite
	clerk *issuance.Service
	state *State
	now   time.Time
}

func TestStateSuite(t *testing.T) {
	suite.Run(t, new(StateSuite))
}

func (s *StateSuite) SetupTest() {
	s.clerk = issuance.New()
	s.now = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	s.state = New(domain.NewSessionID(), s.now)
}

func (s *StateSuite) after(d time.Duration) time.Time {
	s.now = s.now.Add(d)
	return s.now
}

func (s *StateSuite) issueRequest() scenario.Scenario {
	return scenario.Scenario{
		ID:          domain.NewScenarioID(),
		Kind:        scenario.KindNormal,
		CitizenName: "이민수",
		Profile: document.CitizenProfile{
			Name:          "이민수",
			MissionType:   document.MissionIssue,
			RequestType:   document.ResidentDeungbon,
			RRNFront:      "880212",
			RRNBack:       "1234567",
			Address:       "서울특별시 마포구 월드컵로 1",
			PhoneNumber:   "010-2222-3333",
			Copies:        1,
			PurposeDetail: "은행 제출",
			HistoryRecords: []document.HistoryRecord{
				{Date: "2023-01-01", Category: "전입", Detail: "마포구"},
			},
		},
		InitialMessage: "등본 한 통 떼러 왔어요.",
	}
}

func (s *StateSuite) excelRequest() scenario.Scenario {
	return scenario.Scenario{
		ID:          domain.NewScenarioID(),
		Kind:        scenario.KindEvent,
		CitizenName: "박과장",
		Profile: document.CitizenProfile{
			Name:        "박과장",
			MissionType: document.MissionExcel,
			ExcelTask:   "부서별 연락처 정리",
			ExcelRows: []document.ExcelRow{
				{ColA: "총무과", ColB: "02-100-2000"},
				{ColA: "민원실", ColB: "02-100-3000"},
			},
		},
		InitialMessage: "메일로 보낸 자료 정리 부탁해요.",
	}
}

// fillTutorialForm types the tutorial boss's request into the portal.
func (s *StateSuite) fillTutorialForm() {
	p := scenario.Tutorial(s.now).Profile
	s.state.SelectDocument(document.ResidentChobon, s.now)
	opts := document.DefaultOptions()
	opts.IncludePastAddress = true
	s.Require().NoError(s.state.UpdateForm(issuance.FormPatch{
		Name: &p.Name, RRNFront: &p.RRNFront, RRNBack: &p.RRNBack,
		Address: &p.Address, AddressDetail: &p.AddressDetail, PhoneNumber: &p.PhoneNumber,
		Purpose: &p.Purpose, PurposeDetail: &p.PurposeDetail, Copies: &p.Copies,
		Options: &opts,
	}))
}

func (s *StateSuite) printForm() {
	s.Require().NoError(s.state.RequestIssue(s.clerk, s.now))
	s.Nil(s.state.Advance(s.after(IssueProcessingDelay)))
	_, ok := s.state.Printed()
	s.Require().True(ok)
}

func (s *StateSuite) messengerOpen() bool {
	w, _ := s.stateWindow(desktop.Messenger)
	return w.Visible()
}

func (s *StateSuite) stateWindow(id desktop.AppID) (desktop.Window, bool) {
	for _, w := range s.state.Desktop().Windows {
		if w.ID == id {
			return w, true
		}
	}
	return desktop.Window{}, false
}

func (s *StateSuite) TestNewSessionDefaults() {
	s.Equal(InitialStats, s.state.Stats())
	_, ok := s.state.Scenario()
	s.False(ok)
	s.Len(s.state.Mailbox(), 3)

	snap := s.state.Snapshot(s.clerk)
	s.Equal(1, snap.Unread)
	s.Len(snap.Excel, GridRows)
	s.Nil(snap.Printed)
}

func (s *StateSuite) TestStartTutorial() {
	work := s.state.Start(false, s.now)

	s.Nil(work)
	sc, ok := s.state.Scenario()
	s.Require().True(ok)
	s.Equal(scenario.KindTutorial, sc.Kind)
	s.Equal(scenario.StatusActive, sc.Status)
	s.Require().Len(sc.Profile.Dialogue, 1)
	s.Equal(document.SenderCitizen, sc.Profile.Dialogue[0].Sender)
	s.Equal([]string{NoticeTutorial}, s.state.Notifications())
	s.True(s.messengerOpen())
	s.Equal(document.ResidentDeungbon, s.state.Form().DocType)
}

func (s *StateSuite) TestStartSkippingTutorial() {
	work := s.state.Start(true, s.now)

	s.Require().NotNil(work)
	s.Equal(WorkGenerate, work.Kind)
	s.Equal(1, work.Day)
	s.True(s.state.AwaitingScenario())
	s.Equal([]string{NoticeSkipped}, s.state.Notifications())

	s.True(s.state.CompleteGeneration(work.Seq, s.issueRequest(), s.now))
	s.False(s.state.AwaitingScenario())
	sc, ok := s.state.Scenario()
	s.Require().True(ok)
	s.Equal("이민수", sc.CitizenName)
	s.Equal([]string{"[새 업무] 이민수님이 대화 요청."}, s.state.Notifications())
}

func (s *StateSuite) TestCompleteGenerationDropsStaleResult() {
	first := s.state.Start(true, s.now)
	second := s.state.Skip(s.now)

	s.False(s.state.CompleteGeneration(first.Seq, s.issueRequest(), s.now))
	s.True(s.state.AwaitingScenario())
	s.False(s.state.CompleteGeneration(0, s.issueRequest(), s.now))
	s.True(s.state.CompleteGeneration(second.Seq, s.excelRequest(), s.now))
	s.False(s.state.CompleteGeneration(second.Seq, s.issueRequest(), s.now))

	sc, _ := s.state.Scenario()
	s.Equal("박과장", sc.CitizenName)
}

func (s *StateSuite) TestFallbackGenerationIsLogged() {
	work := s.state.Start(true, s.now)
	sc := s.issueRequest()
	sc.Fallback = true

	s.True(s.state.CompleteGeneration(work.Seq, sc, s.now))

	found := false
	for _, e := range s.state.Log() {
		if e.Type == LogSystem && e.Message == "민원 생성에 실패하여 대체 민원을 불러왔습니다." {
			found = true
		}
	}
	s.True(found)
}

func (s *StateSuite) TestInstallExcelDeliversTaskMail() {
	s.state.Start(true, s.now)
	s.state.InstallScenario(s.excelRequest(), s.now)

	mail := s.state.Mailbox()
	s.Require().Len(mail, 4)
	s.Equal(4, mail[0].ID)
	s.Equal("[업무] 부서별 연락처 정리", mail[0].Title)
	s.Contains(mail[0].Body, "- 총무과 : 02-100-2000")
	s.False(mail[0].Read)
	s.Equal([]string{"📧 새 메일이 도착했습니다: 박과장"}, s.state.Notifications())
}

func (s *StateSuite) TestTutorialChatReplyArrivesAfterDelay() {
	s.state.Start(false, s.now)

	work, err := s.state.Chat("주소가 어떻게 되나요?", s.now)
	s.Require().NoError(err)
	s.Nil(work)
	s.True(s.state.Typing())

	_, err = s.state.Chat("또 질문", s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	s.state.Advance(s.after(scenario.TutorialReplyDelay - time.Millisecond))
	sc, _ := s.state.Scenario()
	s.Len(sc.Profile.Dialogue, 2)

	s.state.Advance(s.after(time.Millisecond))
	sc, _ = s.state.Scenario()
	s.Require().Len(sc.Profile.Dialogue, 3)
	s.Equal(scenario.TutorialReply("주소").Text, sc.Profile.Dialogue[2].Text)
	s.False(s.state.Typing())
}

func (s *StateSuite) TestChatRequiresConversation() {
	_, err := s.state.Chat("안녕하세요", s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))

	s.state.Start(false, s.now)
	_, err = s.state.Chat("   ", s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *StateSuite) TestGeneratedChatReply() {
	work := s.state.Start(true, s.now)
	s.state.CompleteGeneration(work.Seq, s.issueRequest(), s.now)

	reply, err := s.state.Chat("신분증 보여주세요", s.now)
	s.Require().NoError(err)
	s.Require().NotNil(reply)
	s.Equal(WorkReply, reply.Kind)
	s.Equal("신분증 보여주세요", reply.Message)
	s.Equal("이민수", reply.Scenario.CitizenName)
	s.True(s.state.Typing())

	s.True(s.state.CompleteReply(reply.Seq, scenario.Reply{Text: "여기요.", MoodChange: 5}, s.now))
	s.False(s.state.Typing())
	s.Equal(5, s.state.Stats().Stress)
	sc, _ := s.state.Scenario()
	s.Equal("여기요.", sc.Profile.Dialogue[len(sc.Profile.Dialogue)-1].Text)
}

func (s *StateSuite) TestReplyForSkippedScenarioIsDropped() {
	work := s.state.Start(true, s.now)
	s.state.CompleteGeneration(work.Seq, s.issueRequest(), s.now)
	reply, err := s.state.Chat("잠시만요", s.now)
	s.Require().NoError(err)

	next := s.state.Skip(s.now)
	s.state.CompleteGeneration(next.Seq, s.excelRequest(), s.now)

	s.False(s.state.CompleteReply(reply.Seq, scenario.Reply{Text: "늦은 답변"}, s.now))
	sc, _ := s.state.Scenario()
	for _, m := range sc.Profile.Dialogue {
		s.NotEqual("늦은 답변", m.Text)
	}
}

func (s *StateSuite) TestTutorialAcceptedResolvesAndSchedulesNext() {
	s.state.Start(false, s.now)
	s.fillTutorialForm()
	s.printForm()

	v, err := s.state.ConfirmPrint(context.Background(), s.clerk, s.now)
	s.Require().NoError(err)
	s.True(v.Accepted)

	stats := s.state.Stats()
	s.Equal(InitialStats.Reputation+AcceptReputation, stats.Reputation)
	s.Equal(InitialStats.Performance+AcceptPerformance, stats.Performance)
	s.Equal(2, stats.Day)
	sc, ok := s.state.Scenario()
	s.Require().True(ok)
	s.Equal(scenario.StatusSolved, sc.Status)
	s.Equal(LineAccepted, sc.Profile.Dialogue[len(sc.Profile.Dialogue)-1].Text)
	_, printed := s.state.Printed()
	s.False(printed)

	s.Nil(s.state.Advance(s.after(NextScenarioDelay - time.Millisecond)))
	work := s.state.Advance(s.after(time.Millisecond))
	s.Require().NotNil(work)
	s.Equal(WorkGenerate, work.Kind)
	s.Equal(2, work.Day)
	_, ok = s.state.Scenario()
	s.False(ok)
	s.True(s.state.AwaitingScenario())
}

func (s *StateSuite) TestSolvedRequestPaysOnce() {
	s.state.Start(false, s.now)
	s.fillTutorialForm()
	s.printForm()
	s.Require().NoError(s.state.RequestIssue(s.clerk, s.now))

	s.Nil(s.state.Advance(s.after(1900 * time.Millisecond)))
	v, err := s.state.ConfirmPrint(context.Background(), s.clerk, s.now)
	s.Require().NoError(err)
	s.Require().True(v.Accepted)
	paid := s.state.Stats()

	s.Nil(s.state.Advance(s.after(100 * time.Millisecond)))
	_, ok := s.state.Printed()
	s.Require().True(ok)

	_, err = s.state.ConfirmPrint(context.Background(), s.clerk, s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	err = s.state.RequestIssue(s.clerk, s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	s.Equal(paid, s.state.Stats())
	s.Equal(2, paid.Day)
}

func (s *StateSuite) TestSelfIssueWhileRequestSolved() {
	s.state.Start(false, s.now)
	s.fillTutorialForm()
	s.printForm()
	_, err := s.state.ConfirmPrint(context.Background(), s.clerk, s.now)
	s.Require().NoError(err)

	name, front := document.Player.Name, document.Player.RRNFront
	s.Require().NoError(s.state.UpdateForm(issuance.FormPatch{Name: &name, RRNFront: &front}))
	s.Require().NoError(s.state.RequestIssue(s.clerk, s.now))
	s.state.Advance(s.after(IssueProcessingDelay))

	v, err := s.state.ConfirmPrint(context.Background(), s.clerk, s.now)
	s.Require().NoError(err)
	s.True(v.SelfIssued)
}

func (s *StateSuite) TestRejectedDocumentKeepsRequestOpen() {
	s.state.Start(false, s.now)
	s.state.SelectDocument(document.SealCert, s.now)
	s.printForm()

	v, err := s.state.ConfirmPrint(context.Background(), s.clerk, s.now)
	s.Require().NoError(err)
	s.False(v.Accepted)

	stats := s.state.Stats()
	s.Equal(InitialStats.Stress+RejectStress, stats.Stress)
	s.Equal(InitialStats.Reputation+RejectReputation, stats.Reputation)
	s.Equal(1, stats.Day)
	sc, _ := s.state.Scenario()
	s.Equal(scenario.StatusActive, sc.Status)
	s.Equal(v.Citizen(), sc.Profile.Dialogue[len(sc.Profile.Dialogue)-1].Text)
	s.True(s.messengerOpen())
}

func (s *StateSuite) TestMetersStayInRange() {
	s.state.Start(false, s.now)
	for i := 0; i < 15; i++ {
		s.state.SelectDocument(document.SealCert, s.now)
		s.printForm()
		_, err := s.state.ConfirmPrint(context.Background(), s.clerk, s.now)
		s.Require().NoError(err)
	}

	stats := s.state.Stats()
	s.Equal(MaxStat, stats.Stress)
	s.Equal(MinStat, stats.Reputation)
}

func (s *StateSuite) TestIssueProcessing() {
	s.state.Start(false, s.now)
	s.state.SelectDocument(document.ResidentChobon, s.now)

	s.Require().NoError(s.state.RequestIssue(s.clerk, s.now))
	s.True(s.state.Processing())
	err := s.state.RequestIssue(s.clerk, s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	at, ok := s.state.NextTimer()
	s.Require().True(ok)
	s.Equal(s.now.Add(IssueProcessingDelay), at)

	s.state.Advance(s.after(IssueProcessingDelay))
	s.False(s.state.Processing())
	doc, ok := s.state.Printed()
	s.Require().True(ok)
	s.Equal(document.ResidentChobon, doc.DocType)
	s.NotNil(s.state.Snapshot(s.clerk).Printed)
}

func (s *StateSuite) TestIssueOutsideIssuanceRequest() {
	work := s.state.Start(true, s.now)
	s.state.SelectDocument(document.ResidentDeungbon, s.now)

	err := s.state.RequestIssue(s.clerk, s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	s.state.CompleteGeneration(work.Seq, s.excelRequest(), s.now)
	err = s.state.RequestIssue(s.clerk, s.now)
	s.Require().Error(err)
	s.Contains(err.Error(), MsgNotIssueMission)
}

func (s *StateSuite) TestSelfIssueWithoutRequest() {
	s.state.Start(true, s.now)
	s.state.SelectDocument(document.HealthInsurance, s.now)
	name, front := document.Player.Name, document.Player.RRNFront
	s.Require().NoError(s.state.UpdateForm(issuance.FormPatch{Name: &name, RRNFront: &front}))
	before := s.state.Stats()

	s.printForm()
	v, err := s.state.ConfirmPrint(context.Background(), s.clerk, s.now)

	s.Require().NoError(err)
	s.True(v.SelfIssued)
	s.Equal(before, s.state.Stats())
	s.Equal([]string{NoticeSelfIssued}, s.state.Notifications())
	s.Equal(document.HealthInsurance, s.state.Form().DocType)
	s.Empty(s.state.Form().Name)
}

func (s *StateSuite) TestConfirmPrintWithoutDocument() {
	s.state.Start(false, s.now)

	_, err := s.state.ConfirmPrint(context.Background(), s.clerk, s.now)

	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func (s *StateSuite) TestShredDocument() {
	s.state.Start(false, s.now)
	s.True(dErrors.HasCode(s.state.ShredDocument(s.now), dErrors.CodeInvalidState))

	s.state.SelectDocument(document.ResidentChobon, s.now)
	s.printForm()
	before := s.state.Stats()

	s.Require().NoError(s.state.ShredDocument(s.now))
	_, ok := s.state.Printed()
	s.False(ok)
	s.Equal(before, s.state.Stats())
}

func (s *StateSuite) TestUpdateFormChecksRecordIndexes() {
	work := s.state.Start(true, s.now)
	s.state.CompleteGeneration(work.Seq, s.issueRequest(), s.now)

	s.Require().NoError(s.state.UpdateForm(issuance.FormPatch{SelectedRecords: []int{0}}))
	s.Equal([]int{0}, s.state.Form().SelectedRecords)

	err := s.state.UpdateForm(issuance.FormPatch{SelectedRecords: []int{3}})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal([]int{0}, s.state.Form().SelectedRecords)
}

func (s *StateSuite) TestExcelReportAccepted() {
	work := s.state.Start(true, s.now)
	s.state.CompleteGeneration(work.Seq, s.excelRequest(), s.now)

	s.Require().NoError(s.state.UpdateExcel([]Cell{
		{Row: 0, Col: 0, Value: "민원실"}, {Row: 0, Col: 1, Value: "02-100-3000"},
		{Row: 3, Col: 0, Value: "총무과"}, {Row: 3, Col: 1, Value: "02-100-2000"},
	}))
	ok, err := s.state.ReportExcel(s.now)

	s.Require().NoError(err)
	s.True(ok)
	stats := s.state.Stats()
	s.Equal(InitialStats.Reputation+ExcelReputation, stats.Reputation)
	s.Equal(InitialStats.Performance+ExcelPerformance, stats.Performance)
	s.Equal(2, stats.Day)
	sc, _ := s.state.Scenario()
	s.Equal(scenario.StatusSolved, sc.Status)
}

func (s *StateSuite) TestExcelReportedTwice() {
	work := s.state.Start(true, s.now)
	s.state.CompleteGeneration(work.Seq, s.excelRequest(), s.now)
	s.Require().NoError(s.state.UpdateExcel([]Cell{
		{Row: 0, Col: 0, Value: "총무과"}, {Row: 0, Col: 1, Value: "02-100-2000"},
		{Row: 1, Col: 0, Value: "민원실"}, {Row: 1, Col: 1, Value: "02-100-3000"},
	}))
	ok, err := s.state.ReportExcel(s.now)
	s.Require().NoError(err)
	s.Require().True(ok)
	paid := s.state.Stats()

	_, err = s.state.ReportExcel(s.after(100 * time.Millisecond))

	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	s.Equal(paid, s.state.Stats())
}

func (s *StateSuite) TestExcelReportMissingRows() {
	work := s.state.Start(true, s.now)
	s.state.CompleteGeneration(work.Seq, s.excelRequest(), s.now)
	s.Require().NoError(s.state.UpdateExcel([]Cell{{Row: 0, Col: 0, Value: "총무과"}, {Row: 0, Col: 1, Value: "02-100-2000"}}))

	ok, err := s.state.ReportExcel(s.now)

	s.Require().NoError(err)
	s.False(ok)
	s.Equal(InitialStats.Stress+ExcelStress, s.state.Stats().Stress)
	s.Equal(1, s.state.Stats().Day)
	sc, _ := s.state.Scenario()
	s.Equal(LineExcelRejected, sc.Profile.Dialogue[len(sc.Profile.Dialogue)-1].Text)
}

func (s *StateSuite) TestExcelReportOutsideMission() {
	s.state.Start(false, s.now)

	_, err := s.state.ReportExcel(s.now)

	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *StateSuite) TestUpdateExcelIsAtomic() {
	err := s.state.UpdateExcel([]Cell{{Row: 0, Col: 0, Value: "a"}, {Row: GridRows, Col: 0, Value: "b"}})

	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Empty(s.state.Snapshot(s.clerk).Excel[0][0])
}

func (s *StateSuite) TestSkipAddsStressAndRequestsNext() {
	s.state.Start(false, s.now)

	work := s.state.Skip(s.now)

	s.Require().NotNil(work)
	s.Equal(InitialStats.Stress+SkipStress, s.state.Stats().Stress)
	_, ok := s.state.Scenario()
	s.False(ok)
	s.True(s.state.AwaitingScenario())
}

func (s *StateSuite) TestMail() {
	s.Run("read", func() {
		s.Require().NoError(s.state.ReadMail(1))
		s.Equal(0, s.state.Snapshot(s.clerk).Unread)
	})

	s.Run("reply is logged", func() {
		s.Require().NoError(s.state.ReplyMail(2, "확인했습니다.", s.now))
		log := s.state.Log()
		s.Equal("메일 회신: 이번 달 실적 저조자 명단 (참고) (김팀장)", log[len(log)-1].Message)
	})

	s.Run("empty reply", func() {
		s.True(dErrors.HasCode(s.state.ReplyMail(2, " ", s.now), dErrors.CodeInvalidInput))
	})

	s.Run("delete", func() {
		s.Require().NoError(s.state.DeleteMail(3))
		s.Len(s.state.Mailbox(), 2)
	})

	s.Run("missing", func() {
		s.True(dErrors.HasCode(s.state.ReadMail(3), dErrors.CodeNotFound))
		s.True(dErrors.HasCode(s.state.DeleteMail(42), dErrors.CodeNotFound))
	})
}

func (s *StateSuite) TestWindowCommandsAreLogged() {
	s.Require().NoError(s.state.OpenWindow(desktop.Excel, s.now))
	s.Require().NoError(s.state.MinimizeWindow(desktop.Excel, s.now))
	s.Require().NoError(s.state.CloseWindow(desktop.Excel, s.now))
	s.Require().NoError(s.state.FocusWindow(desktop.Mail))

	var messages []string
	for _, e := range s.state.Log() {
		messages = append(messages, e.Message)
	}
	s.Equal([]string{"한셀 2024 실행", "한셀 2024 최소화", "한셀 2024 종료"}, messages)
	s.Error(s.state.OpenWindow(desktop.AppID("solitaire"), s.now))
}

func (s *StateSuite) TestLogIsCapped() {
	s.Require().NoError(s.state.OpenWindow(desktop.Excel, s.now))
	for i := 0; i < MaxLogEntries; i++ {
		s.Require().NoError(s.state.ReplyMail(1, "확인했습니다.", s.now))
	}

	log := s.state.Log()
	s.Len(log, MaxLogEntries)
	for _, e := range log {
		s.NotEqual("한셀 2024 실행", e.Message)
	}
}

func (s *StateSuite) TestCloneIsIndependent() {
	s.state.Start(false, s.now)
	before := s.state.Snapshot(s.clerk)
	c := s.state.Clone()

	_, err := c.Chat("포함해야 하나요?", s.now)
	s.Require().NoError(err)
	s.Require().NoError(c.DeleteMail(1))
	s.Require().NoError(c.OpenWindow(desktop.Excel, s.now))

	sc, _ := s.state.Scenario()
	s.Len(sc.Profile.Dialogue, 1)
	s.Len(s.state.Mailbox(), 3)
	s.False(s.state.Typing())
	w, _ := s.stateWindow(desktop.Excel)
	s.False(w.Open)
	if diff := cmp.Diff(before, s.state.Snapshot(s.clerk)); diff != "" {
		s.Failf("original changed through clone", "(-before +after):\n%s", diff)
	}
}
