package session

import (
	"fmt"
	"strings"
	"time"

	"govos/internal/scenario"
)

func seedMailbox() []Email {
	return []Email{
		{
			ID:    1,
			From:  "인사과",
			Time:  "09:00",
			Title: "전 직원 필독: 점심시간 준수 안내",
			Body: "안녕하십니까, 인사과입니다.\n\n최근 점심시간(12:00~13:00)을 준수하지 않고 13:05분에 복귀하는 사례가 빈번하게 적발되고 있습니다.\n\n" +
				"시민들의 불편이 접수되고 있으니, 전 직원은 12:55분까지 자리에 착석하여 업무 준비를 마쳐주시기 바랍니다.\n\n불시 점검 예정입니다.",
		},
		{
			ID:    2,
			From:  "김팀장",
			Time:  "어제",
			Title: "이번 달 실적 저조자 명단 (참고)",
			Body: "수고가 많습니다.\n\n첨부파일 확인하시고 본인이 해당된다 싶으면 이번 주말에 나와서라도 처리하세요.\n\n" +
				"특히 신규 직원들은 민원 처리 속도가 너무 느립니다. 분발하세요.\n\n- 김팀장 드림",
			Read: true,
		},
		{
			ID:    3,
			From:  "스팸차단",
			Time:  "어제",
			Title: "[광고] 김미영 팀장입니다.",
			Body:  "고객님! 최저 금리 2.5%로 대출 가능하십니다.\n\n기존 대출 상환 조건 없이 5000만원까지 즉시 송금.\n\n지금 바로 전화주세요.",
			Read:  true,
			Spam:  true,
		},
	}
}

// taskMail is the mail that carries a spreadsheet mission's data.
func taskMail(id int, sc scenario.Scenario, now time.Time) Email {
	title := sc.Profile.ExcelTask
	if strings.TrimSpace(title) == "" {
		title = "자료 정리 건"
	}

	rows := make([]string, 0, len(sc.Profile.ExcelRows))
	for _, r := range sc.Profile.ExcelRows {
		rows = append(rows, fmt.Sprintf("- %s : %s", r.ColA, r.ColB))
	}
	data := strings.Join(rows, "\n")
	if data == "" {
		data = "데이터 없음"
	}

	return Email{
		ID:    id,
		From:  sc.CitizenName,
		Time:  now.Format("15:04"),
		Title: "[업무] " + title,
		Body: fmt.Sprintf("수고가 많아요.\n\n%s\n\n[정리할 데이터]\n%s\n\n오타 없이 한셀에 입력해서 보고하세요.\nA열, B열에 맞춰서 입력하면 됩니다.",
			sc.InitialMessage, data),
	}
}
