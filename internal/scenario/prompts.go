package scenario

import (
	"encoding/json"
	"fmt"
	"strings"

	"govos/internal/document"
)

// SystemInstruction frames every scenario request.
const SystemInstruction = `You are the game master of a Korean civil-servant simulator.
The player talks to characters through a messenger called 바로톡.
You play either a citizen at the counter or the player's strict boss.
All dialogue MUST be written in Korean (한국어).

Scenario kinds:
1. Document issuance: the citizen wants a certificate and must state the details the form needs,
   such as the specific purpose, the address detail, and for list documents (immigration, local tax,
   vaccination) exactly which records to select.
2. Spreadsheet work: the boss hands over a short list of data pairs to type into the spreadsheet.`

func scenarioPrompt(d Draft) string {
	var b strings.Builder
	if d.Mission == document.MissionExcel {
		fmt.Fprintf(&b, "Day %d. Generate a realistic Korean office task.\n", d.Day)
		b.WriteString("missionType: 'excel'.\n")
		b.WriteString("citizenName: a Korean boss title name such as 김과장, 이팀장 or 박주임.\n")
		b.WriteString("initialMessage: the boss orders the player to type data and MUST say the data was sent by mail (자료는 메일로 보냈으니 확인해).\n")
		b.WriteString("excelTaskDescription: a short task title (e.g. 2024년 1분기 예산안, 직원 연락망 정리).\n")
		b.WriteString("excelData: 3 to 5 pairs of short Korean values (item and cost, name and phone).\n")
		b.WriteString("Output JSON.")
		return b.String()
	}

	fmt.Fprintf(&b, "Day %d. Generate a realistic Korean civil service request.\n", d.Day)
	fmt.Fprintf(&b, "The citizen MUST want [%s] (code %s).\n", d.Label, d.DocType)
	b.WriteString("Persona:\n")
	b.WriteString("- name (Korean), missionType 'issue', requestType '" + string(d.DocType) + "'\n")
	b.WriteString("- targetName, relationship (본인/배우자/자녀/부모), detailOption (포함/미포함/기본), purpose\n")
	fmt.Fprintf(&b, "- copies: %d\n", d.Copies)
	fmt.Fprintf(&b, "- baseAddress: %q\n", d.BaseAddress)
	fmt.Fprintf(&b, "- addressDetail: %q\n", d.AddressDetail)
	fmt.Fprintf(&b, "- certificateVariant: '%s'\n", d.Variant)
	fmt.Fprintf(&b, "- rrinDisclosure: '%s'\n", d.Disclosure)
	fmt.Fprintf(&b, "- deliveryMethod: '%s'\n", d.Delivery)
	b.WriteString("- purposeDetail: a specific reason (e.g. 전세 대출 신청, 연말정산용, 비자 발급)\n")
	if d.HasPeriod {
		fmt.Fprintf(&b, "- periodStart: %q, periodEnd: %q\n", d.PeriodStart, d.PeriodEnd)
	}
	b.WriteString("initialMessage: a natural Korean request that explicitly mentions\n")
	b.WriteString("  the general/detailed preference and whether the id number may be shown,\n")
	b.WriteString("  the purpose detail,\n")
	fmt.Fprintf(&b, "  the address detail (%s),\n", d.AddressDetail)
	fmt.Fprintf(&b, "  how the document should be delivered (%s)", d.Delivery.Display())
	if d.HasPeriod {
		fmt.Fprintf(&b, ",\n  the period from %s until now", d.PeriodStart[:4])
	}
	if d.IsList {
		b.WriteString(",\n  which specific records to select (e.g. 2023년 재산세, 3차 접종)")
	}
	b.WriteString(".\nEverything MUST be in Korean. Output JSON.")
	return b.String()
}

func replyPrompt(sc Scenario, playerMessage string) string {
	var b strings.Builder
	p := sc.Profile
	if sc.IsExcel() {
		fmt.Fprintf(&b, "Roleplay as the boss %s.\n", sc.CitizenName)
		b.WriteString("Task: spreadsheet data entry.\n")
		fmt.Fprintf(&b, "The player said %q.\n", playerMessage)
		b.WriteString("Answer in Korean. If the player asks for the data, tell them to check the mail you sent (메일 확인해보게).\n")
	} else {
		info, _ := json.Marshal(publicProfile(p))
		fmt.Fprintf(&b, "Roleplay as the citizen %s.\n", sc.CitizenName)
		fmt.Fprintf(&b, "Wants: %s\n", document.LabelOf(p.RequestType))
		fmt.Fprintf(&b, "Profile: %s\n", info)
		fmt.Fprintf(&b, "Copies %d, phone %s, address detail %s, purpose detail %s, delivery %s\n",
			p.Copies, p.PhoneNumber, p.AddressDetail, p.PurposeDetail, p.Delivery.Display())
		if p.PeriodStart != "" {
			fmt.Fprintf(&b, "Period %s ~ %s\n", p.PeriodStart, p.PeriodEnd)
		}
		fmt.Fprintf(&b, "The player said %q.\n", playerMessage)
		b.WriteString("Guidelines:\n")
		fmt.Fprintf(&b, "- asked for the detailed purpose, say %q\n", p.PurposeDetail)
		fmt.Fprintf(&b, "- asked how to receive the document, ask for %s\n", p.Delivery.Display())
		fmt.Fprintf(&b, "- asked for the address detail, say %q\n", p.AddressDetail)
		b.WriteString("- asked which records or dates to select, name them\n")
		b.WriteString("- get annoyed when asked the same thing repeatedly\n")
		b.WriteString("- answer in Korean\n")
	}
	b.WriteString(`Output JSON { "text": string, "moodChange": number }.`)
	return b.String()
}

// publicProfile strips the transcript so the prompt stays small.
func publicProfile(p document.CitizenProfile) document.CitizenProfile {
	p.Dialogue = nil
	return p
}
