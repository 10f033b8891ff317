package document

import (
	"fmt"
	"slices"
)

// Spec is the static configuration of one document type.
type Spec struct {
	Type            DocType      `json:"type" yaml:"type"`
	Label           string       `json:"label" yaml:"label"`
	Required        []FieldKind  `json:"required" yaml:"-"`
	HasPeriod       bool         `json:"has_period" yaml:"has_period"`
	HasVariant      bool         `json:"has_variant" yaml:"has_variant"`
	Options         []SpecOption `json:"options,omitempty" yaml:"options,omitempty"`
	IsListSelection bool         `json:"is_list_selection" yaml:"is_list_selection"`
	ListHeaders     []string     `json:"list_headers,omitempty" yaml:"list_headers,omitempty"`
}

// RequiredKeys returns the required field keys in check order.
func (s Spec) RequiredKeys() []string {
	out := make([]string, len(s.Required))
	for i, f := range s.Required {
		out[i] = f.String()
	}
	return out
}

// HasOption reports whether the type shows checkbox o.
func (s Spec) HasOption(o SpecOption) bool {
	return slices.Contains(s.Options, o)
}

// DefaultListHeaders are used when a type declares no list headers.
var DefaultListHeaders = []string{"일자", "내용", "비고"}

// Headers returns the list column headers, defaulting when unset.
func (s Spec) Headers() []string {
	if len(s.ListHeaders) == 0 {
		return DefaultListHeaders
	}
	return s.ListHeaders
}

var (
	personal  = []FieldKind{FieldName, FieldNationalID, FieldPurpose, FieldPhoneNumber, FieldCopies, FieldPurposeDetail}
	household = []SpecOption{OptionHouseholdRRIN}
)

var specs = []Spec{
	{
		Type:     ResidentDeungbon,
		Label:    "주민등록표(등본)",
		Required: []FieldKind{FieldName, FieldNationalID, FieldAddress, FieldPhoneNumber, FieldCopies, FieldPurposeDetail},
		Options:  []SpecOption{OptionPastAddress, OptionHouseholdRRIN, OptionRelationship, OptionMoveInDate, OptionHouseholder},
	},
	{
		Type:     ResidentChobon,
		Label:    "주민등록표(초본)",
		Required: []FieldKind{FieldName, FieldNationalID, FieldAddress, FieldDetailOption, FieldPhoneNumber, FieldCopies, FieldPurposeDetail},
		Options:  []SpecOption{OptionPastAddress, OptionMoveInDate, OptionMilitary},
	},
	{
		Type:       FamilyRelation,
		Label:      "가족관계증명서",
		Required:   []FieldKind{FieldName, FieldNationalID, FieldTargetName, FieldRelationship, FieldBaseAddress, FieldPhoneNumber, FieldCopies, FieldPurposeDetail},
		HasVariant: true,
		Options:    household,
	},
	{
		Type:       FamilyRelationDetail,
		Label:      "가족관계(상세)",
		Required:   []FieldKind{FieldName, FieldNationalID, FieldTargetName, FieldRelationship, FieldDetailOption, FieldBaseAddress, FieldPhoneNumber, FieldCopies, FieldPurposeDetail},
		HasVariant: true,
		Options:    household,
	},
	{
		Type:       BasicCert,
		Label:      "기본증명서",
		Required:   []FieldKind{FieldName, FieldNationalID, FieldPurpose, FieldBaseAddress, FieldPhoneNumber, FieldCopies, FieldPurposeDetail},
		HasVariant: true,
	},
	{
		Type:       MarriageCert,
		Label:      "혼인관계증명서",
		Required:   []FieldKind{FieldName, FieldNationalID, FieldTargetName, FieldBaseAddress, FieldPhoneNumber, FieldCopies, FieldPurposeDetail},
		HasVariant: true,
		Options:    household,
	},
	{Type: SealCert, Label: "인감증명서", Required: personal},
	{
		Type:     LandReg,
		Label:    "토지(임야)대장",
		Required: []FieldKind{FieldAddress, FieldTargetName, FieldCopies},
		Options:  []SpecOption{OptionHouseholder},
	},
	{
		Type:     BuildingReg,
		Label:    "일반건축물대장",
		Required: []FieldKind{FieldAddress, FieldCopies},
		Options:  []SpecOption{OptionHouseholder},
	},
	{
		Type:            TaxLocal,
		Label:           "지방세납세증명서",
		Required:        []FieldKind{FieldName, FieldNationalID, FieldAddress, FieldPurpose, FieldPhoneNumber, FieldCopies, FieldPurposeDetail},
		IsListSelection: true,
		ListHeaders:     []string{"납세일자", "세목", "금액"},
	},
	{Type: DriverHistory, Label: "운전경력증명서", Required: personal},
	{
		Type:            ImmigrationLog,
		Label:           "출입국사실증명",
		Required:        personal,
		IsListSelection: true,
		ListHeaders:     []string{"일자", "구분", "항구/공항"},
	},
	{Type: SchoolUniv, Label: "재학증명서(대)", Required: personal},
	{Type: SchoolHigh, Label: "재학증명서(고)", Required: personal},
	{Type: SchoolMiddle, Label: "재학증명서(중)", Required: personal},
	{Type: SchoolElem, Label: "재학증명서(초)", Required: personal},
	{
		Type:      IncomeCert,
		Label:     "소득금액증명",
		Required:  append(slices.Clone(personal), FieldPeriod),
		HasPeriod: true,
	},
	{
		Type:     PensionCert,
		Label:    "연금가입증명",
		Required: []FieldKind{FieldName, FieldNationalID, FieldPhoneNumber, FieldCopies, FieldPurposeDetail},
	},
	{
		Type:            VaccineCert,
		Label:           "예방접종증명",
		Required:        personal,
		IsListSelection: true,
		ListHeaders:     []string{"접종일자", "백신명", "차수"},
	},
	{
		Type:     HealthInsurance,
		Label:    "건강보험자격득실",
		Required: []FieldKind{FieldName, FieldNationalID, FieldPhoneNumber, FieldCopies, FieldPurposeDetail},
	},
	{Type: None, Label: "선택 안함"},
}

var catalog = buildCatalog(specs)

// buildCatalog indexes the spec table and panics on a duplicate type or a
// required field without a comparator.
func buildCatalog(list []Spec) map[DocType]Spec {
	out := make(map[DocType]Spec, len(list))
	for _, s := range list {
		if _, dup := out[s.Type]; dup {
			panic(fmt.Sprintf("document: duplicate spec for %s", s.Type))
		}
		for _, f := range s.Required {
			if _, ok := fieldDefs[f]; !ok {
				panic(fmt.Sprintf("document: %s requires unknown field %d", s.Type, f))
			}
		}
		if s.HasPeriod != slices.Contains(s.Required, FieldPeriod) {
			panic(fmt.Sprintf("document: %s period flag disagrees with required fields", s.Type))
		}
		out[s.Type] = s
	}
	return out
}

// Lookup returns a copy of the spec for t.
func Lookup(t DocType) (Spec, bool) {
	s, ok := catalog[t]
	return s.clone(), ok
}

// Catalog returns copies of every spec in portal order. Several specs share
// their Required backing array, so each slice is cloned.
func Catalog() []Spec {
	out := make([]Spec, len(specs))
	for i, s := range specs {
		out[i] = s.clone()
	}
	return out
}

func (s Spec) clone() Spec {
	s.Required = slices.Clone(s.Required)
	s.Options = slices.Clone(s.Options)
	s.ListHeaders = slices.Clone(s.ListHeaders)
	return s
}

// LabelOf returns the Korean label of t, or the raw key for unknown types.
func LabelOf(t DocType) string {
	if s, ok := catalog[t]; ok {
		return s.Label
	}
	return string(t)
}

// Issuable lists the types a scenario may request.
func Issuable() []DocType {
	out := make([]DocType, 0, len(specs))
	for _, s := range specs {
		if s.Type == None || s.Type == FamilyRelationDetail {
			continue
		}
		out = append(out, s.Type)
	}
	return out
}
