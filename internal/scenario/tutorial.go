package scenario

import (
	"strings"
	"time"

	"govos/internal/document"
	"govos/pkg/domain"
)

// TutorialReplyDelay is how long the tutorial boss takes to answer.
const TutorialReplyDelay = time.Second

const tutorialOpening = `신규! 업무 테스트다. 내 "주민등록초본"을 떼주게. "과거주소변동" 사항을 꼭 "포함"하고, 용도는 "경력증명용"이라고 적어. 상세 내용은 "인사과 제출"로 하고. 연락처는 "010-1234-5678" 입력해. "1통"만 뽑아와.`

// Tutorial returns the scripted first scenario.
func Tutorial(now time.Time) Scenario {
	return Scenario{
		ID:          domain.NewScenarioID(),
		Kind:        KindTutorial,
		CitizenName: "김팀장",
		Profile: document.CitizenProfile{
			Name:          "김팀장",
			MissionType:   document.MissionIssue,
			RequestType:   document.ResidentChobon,
			RRNFront:      "800101",
			RRNBack:       "1234567",
			Address:       "서울특별시 종로구 세종대로 209",
			AddressDetail: "2층 인사과",
			AddressOld:    "서울특별시 종로구 세종로 77-6",
			BaseAddress:   "서울특별시 종로구 세종대로 209",
			PhoneNumber:   "010-1234-5678",
			Copies:        1,
			TargetName:    "김팀장",
			Relationship:  document.RelationSelf,
			DetailOption:  document.DetailIncluded,
			Purpose:       "회사제출용",
			PurposeDetail: "인사과 제출",
		},
		InitialMessage: tutorialOpening,
		Status:         StatusActive,
		CreatedAt:      now,
	}
}

// TutorialReply is the scripted boss answer to a tutorial chat line.
func TutorialReply(playerMessage string) Reply {
	switch {
	case strings.Contains(playerMessage, "주소"):
		return Reply{Text: "주소는 '세종대로 209'야. 구 주소는 '세종로 77-6'이고."}
	case strings.Contains(playerMessage, "포함"), strings.Contains(playerMessage, "과거"):
		return Reply{Text: "그래, 과거 주소 변동 이력을 꼭 '포함' 시켜주게."}
	default:
		return Reply{Text: "자네 뭐하나? '새올행정'을 켜서 초본을 발급하게."}
	}
}
