package issuance

import (
	"strings"

	"govos/internal/document"
	"govos/internal/platform/privacy"
)

// NoRecordsMarker is shown in place of an empty record table.
const NoRecordsMarker = "기록 없음"

var optionLabels = []struct {
	option document.SpecOption
	label  string
	isSet  func(document.Options) bool
}{
	{document.OptionPastAddress, "과거 주소 변동 사항", func(o document.Options) bool { return o.IncludePastAddress }},
	{document.OptionHouseholdRRIN, "세대원 주민번호", func(o document.Options) bool { return o.IncludeHouseholdRRIN }},
	{document.OptionRelationship, "세대주와의 관계", func(o document.Options) bool { return o.IncludeRelationship }},
	{document.OptionMoveInDate, "전입일", func(o document.Options) bool { return o.IncludeMoveInDate }},
	{document.OptionHouseholder, "세대주 성명", func(o document.Options) bool { return o.HouseholderName }},
	{document.OptionMilitary, "병역사항", func(o document.Options) bool { return o.MilitaryRecord }},
}

// DocumentPreview is the user-facing rendering of a printed document.
// It never carries the national id back part unless disclosure is unmasked.
type DocumentPreview struct {
	Title        string     `json:"title"`
	DocType      string     `json:"doc_type"`
	Name         string     `json:"name"`
	NationalID   string     `json:"national_id"`
	Address      string     `json:"address,omitempty"`
	BaseAddress  string     `json:"base_address,omitempty"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	Purpose      string     `json:"purpose,omitempty"`
	TargetName   string     `json:"target_name,omitempty"`
	Relationship string     `json:"relationship,omitempty"`
	Copies       int        `json:"copies"`
	Period       string     `json:"period,omitempty"`
	Variant      string     `json:"variant,omitempty"`
	Disclosure   string     `json:"disclosure"`
	Delivery     string     `json:"delivery"`
	DetailOption string     `json:"detail_option"`
	Included     []string   `json:"included,omitempty"`
	IssueDate    string     `json:"issue_date"`
	ListHeaders  []string   `json:"list_headers,omitempty"`
	Records      [][]string `json:"records,omitempty"`
	EmptyMarker  string     `json:"empty_marker,omitempty"`
}

// Preview renders doc for display.
func (s *Service) Preview(doc document.PrintedDoc) DocumentPreview {
	spec, _ := document.Lookup(doc.DocType)

	p := DocumentPreview{
		Title:        doc.Label,
		DocType:      string(doc.DocType),
		Name:         doc.Name,
		NationalID:   renderNationalID(doc),
		Address:      strings.TrimSpace(doc.Address + " " + doc.AddressDetail),
		BaseAddress:  doc.BaseAddress,
		PhoneNumber:  doc.PhoneNumber,
		Purpose:      joinNonEmpty(" - ", doc.Purpose, doc.PurposeDetail),
		TargetName:   doc.TargetName,
		Relationship: doc.Relationship,
		Copies:       int(doc.Copies),
		Disclosure:   doc.Disclosure.Display(),
		Delivery:     doc.Delivery.Display(),
		DetailOption: doc.DetailOption,
		IssueDate:    doc.IssuedAt.Format("2006. 1. 2."),
	}
	if spec.HasVariant {
		p.Variant = doc.Variant.Display()
	}
	if spec.HasPeriod {
		p.Period = doc.PeriodStart + " ~ " + doc.PeriodEnd
	}
	for _, o := range optionLabels {
		if spec.HasOption(o.option) && o.isSet(doc.Options) {
			p.Included = append(p.Included, o.label)
		}
	}
	if spec.IsListSelection {
		p.ListHeaders = spec.Headers()
		for _, r := range doc.SelectedRecords {
			p.Records = append(p.Records, []string{r.Date, r.Category, r.Detail})
		}
		if len(p.Records) == 0 {
			p.EmptyMarker = NoRecordsMarker
		}
	}
	return p
}

func renderNationalID(doc document.PrintedDoc) string {
	if doc.Disclosure == document.DisclosureUnmasked {
		return doc.RRNFront + "-" + doc.RRNBack
	}
	return privacy.MaskNationalID(doc.RRNFront)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
