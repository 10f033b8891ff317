// Package offline is a scenario model that needs no network. It writes
// citizens and replies from fixed phrase pools, so the game is playable
// without an API key.
package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"govos/internal/document"
	"govos/internal/scenario"
)

var (
	surnames = []string{"김", "이", "박", "최", "정", "강", "조", "윤"}
	given    = []string{"민준", "서연", "도윤", "하은", "지호", "수빈", "현우", "지민"}
	bosses   = []string{"김과장", "이팀장", "박주임", "최부장"}
	purposes = []string{"회사제출용", "금융기관제출용", "관공서제출용", "학교제출용"}
	details  = []string{"전세 대출 신청", "연말정산용", "비자 발급", "입사 서류 제출", "보험금 청구"}
	streets  = []string{"세종대로", "테헤란로", "올림픽로", "양화로", "한강대로"}

	excelTasks = []struct {
		title string
		rows  [][2]string
	}{
		{"직원 연락망 정리", [][2]string{{"김민수", "010-2211-3344"}, {"이지은", "010-5566-7788"}, {"박서준", "010-9900-1122"}}},
		{"2024년 1분기 예산안", [][2]string{{"사무용품", "120만원"}, {"출장비", "350만원"}, {"교육훈련비", "80만원"}, {"행사비", "200만원"}}},
		{"민원 처리 현황", [][2]string{{"1월", "412건"}, {"2월", "388건"}, {"3월", "455건"}}},
	}
)

// Model fabricates responses from the request's structured fields.
type Model struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New(seed uint64) *Model {
	return &Model{rng: rand.New(rand.NewPCG(seed, ^seed))}
}

func (m *Model) ID() string { return "offline" }

func (m *Model) Complete(ctx context.Context, req scenario.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", scenario.ClassifyContext(ctx, m.ID(), err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var v any
	switch req.Kind {
	case scenario.RequestScenario:
		if req.Draft == nil {
			return "", scenario.NewModelError(scenario.ErrorBadData, m.ID(), "scenario request without draft", nil)
		}
		v = m.scenario(*req.Draft)
	case scenario.RequestReply:
		if req.Scenario == nil {
			return "", scenario.NewModelError(scenario.ErrorBadData, m.ID(), "reply request without scenario", nil)
		}
		v = m.reply(*req.Scenario, req.PlayerMessage)
	default:
		return "", scenario.NewModelError(scenario.ErrorBadData, m.ID(), fmt.Sprintf("unknown request kind %q", req.Kind), nil)
	}

	out, err := json.Marshal(v)
	if err != nil {
		return "", scenario.NewModelError(scenario.ErrorInternal, m.ID(), "encode response", err)
	}
	return string(out), nil
}

func (m *Model) pick(xs []string) string { return xs[m.rng.IntN(len(xs))] }

func (m *Model) scenario(d scenario.Draft) map[string]any {
	if d.Mission == document.MissionExcel {
		boss := m.pick(bosses)
		task := excelTasks[m.rng.IntN(len(excelTasks))]
		data := make([]map[string]string, len(task.rows))
		for i, r := range task.rows {
			data[i] = map[string]string{"colA": r[0], "colB": r[1]}
		}
		return map[string]any{
			"citizenName":    boss,
			"initialMessage": fmt.Sprintf("%s 자료 좀 한셀에 정리해주게. 자료는 메일로 보냈으니 확인해.", task.title),
			"profile": map[string]any{
				"name":                 boss,
				"missionType":          "excel",
				"excelTaskDescription": task.title,
				"excelData":            data,
			},
		}
	}

	name := m.pick(surnames) + m.pick(given)
	purpose := m.pick(purposes)
	detail := m.pick(details)
	address := fmt.Sprintf("서울특별시 %s %d", m.pick(streets), m.rng.IntN(300)+1)

	var msg strings.Builder
	fmt.Fprintf(&msg, "안녕하세요. %s %d통 부탁드립니다. ", d.Label, d.Copies)
	fmt.Fprintf(&msg, "%s 하려고요. 주소는 %s %s이에요. ", detail, address, d.AddressDetail)
	if d.Variant == document.VariantDetailed {
		msg.WriteString("상세로 떼 주시고, ")
	} else {
		msg.WriteString("일반으로 떼 주시고, ")
	}
	if d.Disclosure == document.DisclosureUnmasked {
		msg.WriteString("주민번호는 다 나오게 해주세요. ")
	} else {
		msg.WriteString("주민번호 뒷자리는 가려주세요. ")
	}
	fmt.Fprintf(&msg, "받는 건 %s로 할게요.", d.Delivery.Display())
	if d.HasPeriod {
		fmt.Fprintf(&msg, " 기간은 %s부터 지금까지요.", d.PeriodStart)
	}
	if d.IsList && len(d.History) > 0 {
		fmt.Fprintf(&msg, " %s %s 기록이 꼭 있어야 해요.", d.History[0].Date, d.History[0].Category)
	}

	return map[string]any{
		"citizenName":    name,
		"initialMessage": msg.String(),
		"profile": map[string]any{
			"name":               name,
			"missionType":        "issue",
			"requestType":        string(d.DocType),
			"address":            address,
			"targetName":         name,
			"relationship":       document.RelationSelf,
			"detailOption":       document.DetailDefault,
			"purpose":            purpose,
			"purposeDetail":      detail,
			"deliveryMethod":     string(d.Delivery),
			"certificateVariant": string(d.Variant),
			"rrinDisclosure":     string(d.Disclosure),
		},
	}
}

func (m *Model) reply(sc scenario.Scenario, msg string) scenario.Reply {
	p := sc.Profile
	if sc.IsExcel() {
		return scenario.Reply{Text: "메일 확인해보게. 거기 다 있네."}
	}
	switch {
	case containsAny(msg, "용도", "어디에", "왜"):
		return scenario.Reply{Text: p.PurposeDetail + " 때문이에요."}
	case containsAny(msg, "상세주소", "동", "호수", "주소"):
		return scenario.Reply{Text: strings.TrimSpace(p.Address + " " + p.AddressDetail) + "입니다."}
	case containsAny(msg, "수령", "받", "방법"):
		return scenario.Reply{Text: p.Delivery.Display() + "로 부탁드려요."}
	case containsAny(msg, "기간"):
		if p.PeriodStart == "" {
			return scenario.Reply{Text: "기간은 따로 없어요.", MoodChange: -2}
		}
		return scenario.Reply{Text: p.PeriodStart + "부터 " + p.PeriodEnd + "까지요."}
	case containsAny(msg, "부수", "몇 통", "몇통"):
		return scenario.Reply{Text: fmt.Sprintf("%d통이요.", p.Copies)}
	case containsAny(msg, "연락처", "전화"):
		return scenario.Reply{Text: p.PhoneNumber + "이에요."}
	case containsAny(msg, "감사", "죄송", "잠시만"):
		return scenario.Reply{Text: "네, 기다릴게요.", MoodChange: 3}
	default:
		return scenario.Reply{Text: "빨리 좀 부탁드립니다. 바빠서요.", MoodChange: -m.rng.IntN(3)}
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var _ scenario.Model = (*Model)(nil)
