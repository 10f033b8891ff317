package scenario

import (
	"encoding/json"
	"strings"
	"time"

	"govos/internal/document"
	"govos/pkg/domain"
)

// generatedScenario is the JSON shape models are asked to produce.
type generatedScenario struct {
	CitizenName    string           `json:"citizenName"`
	InitialMessage string           `json:"initialMessage"`
	Profile        generatedProfile `json:"profile"`
}

type generatedProfile struct {
	Name                 string             `json:"name"`
	MissionType          string             `json:"missionType"`
	Address              string             `json:"address"`
	AddressOld           string             `json:"addressOld"`
	TargetName           string             `json:"targetName"`
	Relationship         string             `json:"relationship"`
	DetailOption         string             `json:"detailOption"`
	Purpose              string             `json:"purpose"`
	RequestType          string             `json:"requestType"`
	PurposeDetail        string             `json:"purposeDetail"`
	DeliveryMethod       string             `json:"deliveryMethod"`
	ExcelTaskDescription string             `json:"excelTaskDescription"`
	CertificateVariant   string             `json:"certificateVariant"`
	RrinDisclosure       string             `json:"rrinDisclosure"`
	ExcelData            []generatedExcelKV `json:"excelData"`
}

type generatedExcelKV struct {
	ColA string `json:"colA"`
	ColB string `json:"colB"`
}

// CleanJSON strips a surrounding markdown code fence from model output.
func CleanJSON(text string) string {
	clean := strings.TrimSpace(text)
	if !strings.HasPrefix(clean, "```") {
		return clean
	}
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}

func parseScenario(model, raw string) (generatedScenario, error) {
	var g generatedScenario
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &g); err != nil {
		return g, NewModelError(ErrorBadData, model, "scenario is not valid JSON", err)
	}
	if strings.TrimSpace(g.InitialMessage) == "" {
		return g, NewModelError(ErrorBadData, model, "scenario has no initial message", nil)
	}
	return g, nil
}

func parseReply(model, raw string) (Reply, error) {
	var r Reply
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &r); err != nil {
		return r, NewModelError(ErrorBadData, model, "reply is not valid JSON", err)
	}
	if strings.TrimSpace(r.Text) == "" {
		r.Text = NeutralReply.Text
	}
	return r, nil
}

// assemble merges the model's persona with the locally decided facts. Fields
// the model left empty fall back to neutral defaults.
func assemble(g generatedScenario, d Draft, now time.Time) Scenario {
	gp := g.Profile
	p := document.CitizenProfile{
		Name:        firstNonEmpty(gp.Name, g.CitizenName, "민원인"),
		MissionType: d.Mission,
		RequestType: document.None,
	}
	citizen := firstNonEmpty(g.CitizenName, p.Name)

	if d.Mission == document.MissionExcel {
		p.ExcelTask = strings.TrimSpace(gp.ExcelTaskDescription)
		for _, kv := range gp.ExcelData {
			a, b := strings.TrimSpace(kv.ColA), strings.TrimSpace(kv.ColB)
			if a == "" && b == "" {
				continue
			}
			p.ExcelRows = append(p.ExcelRows, document.ExcelRow{ColA: a, ColB: b})
		}
	} else {
		p.RequestType = d.DocType
		p.Address = strings.TrimSpace(gp.Address)
		p.AddressOld = strings.TrimSpace(gp.AddressOld)
		p.Purpose = strings.TrimSpace(gp.Purpose)
		p.TargetName = firstNonEmpty(gp.TargetName, p.Name)
		p.Relationship = firstNonEmpty(gp.Relationship, document.RelationSelf)
		p.DetailOption = firstNonEmpty(gp.DetailOption, document.DetailDefault)
		p.PurposeDetail = firstNonEmpty(gp.PurposeDetail, "제출용")

		p.Variant = d.Variant
		if v := document.Variant(gp.CertificateVariant); v == document.VariantGeneral || v == document.VariantDetailed {
			p.Variant = v
		}
		p.Disclosure = d.Disclosure
		if v := document.Disclosure(gp.RrinDisclosure); v == document.DisclosureMasked || v == document.DisclosureUnmasked {
			p.Disclosure = v
		}
		p.Delivery = document.DeliveryPrint
		if v := document.DeliveryMethod(gp.DeliveryMethod); v.Valid() {
			p.Delivery = v
		}
	}

	p.RRNFront = d.RRNFront
	p.RRNBack = d.RRNBack
	p.PhoneNumber = d.PhoneNumber
	p.Copies = document.Copies(d.Copies)
	p.BaseAddress = d.BaseAddress
	p.AddressDetail = d.AddressDetail
	p.PeriodStart = d.PeriodStart
	p.PeriodEnd = d.PeriodEnd
	p.HistoryRecords = d.History

	return Scenario{
		ID:             domain.NewScenarioID(),
		Kind:           KindNormal,
		CitizenName:    citizen,
		Profile:        p,
		InitialMessage: strings.TrimSpace(g.InitialMessage),
		Status:         StatusActive,
		CreatedAt:      now,
	}
}

// FallbackMessage is the opening line of the degraded scenario.
const FallbackMessage = "오류가 발생했습니다. 다음 민원을 불러오세요."

// Fallback is served when no scenario could be generated. It requests no
// document, so any issuance against it is rejected.
func Fallback(id Identity, now time.Time) Scenario {
	return Scenario{
		ID:          domain.NewScenarioID(),
		Kind:        KindNormal,
		CitizenName: "시스템",
		Profile: document.CitizenProfile{
			Name:         "시스템",
			MissionType:  document.MissionIssue,
			RequestType:  document.None,
			RRNFront:     id.RRNFront,
			RRNBack:      id.RRNBack,
			PhoneNumber:  id.PhoneNumber,
			Address:      "오류",
			Relationship: document.RelationSelf,
			DetailOption: document.DetailDefault,
			Copies:       1,
			Variant:      document.VariantGeneral,
			Disclosure:   document.DisclosureMasked,
			Delivery:     document.DeliveryPrint,
		},
		InitialMessage: FallbackMessage,
		Status:         StatusActive,
		Fallback:       true,
		CreatedAt:      now,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
