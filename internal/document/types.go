// Package document holds the civil-document vocabulary: document types, the
// per-type catalog, citizen request profiles and printed submissions.
package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DocType identifies a civil document kind.
type DocType string

const (
	ResidentDeungbon     DocType = "resident_deungbon"
	ResidentChobon       DocType = "resident_chobon"
	FamilyRelation       DocType = "family_relation"
	FamilyRelationDetail DocType = "family_relation_detail"
	BasicCert            DocType = "basic_cert"
	MarriageCert         DocType = "marriage_cert"
	SealCert             DocType = "seal_cert"
	LandReg              DocType = "land_reg"
	BuildingReg          DocType = "building_reg"
	TaxLocal             DocType = "tax_local"
	DriverHistory        DocType = "driver_history"
	ImmigrationLog       DocType = "immigration_log"
	SchoolUniv           DocType = "school_univ"
	SchoolHigh           DocType = "school_high"
	SchoolMiddle         DocType = "school_middle"
	SchoolElem           DocType = "school_elem"
	IncomeCert           DocType = "income_cert"
	PensionCert          DocType = "pension_cert"
	VaccineCert          DocType = "vaccine_cert"
	HealthInsurance      DocType = "health_insurance"
	None                 DocType = "none"
)

// ParseDocType accepts a catalog key.
func ParseDocType(s string) (DocType, error) {
	t := DocType(strings.TrimSpace(s))
	if _, ok := catalog[t]; !ok {
		return "", fmt.Errorf("unknown document type %q", s)
	}
	return t, nil
}

// MissionType distinguishes document issuance from spreadsheet work.
type MissionType string

const (
	MissionIssue MissionType = "issue"
	MissionExcel MissionType = "excel"
)

// Variant is the general/detailed certificate rendering.
type Variant string

const (
	VariantGeneral  Variant = "general"
	VariantDetailed Variant = "detailed"
)

// Display returns the label citizens use when asking for the variant.
func (v Variant) Display() string {
	if v == VariantDetailed {
		return "상세(Detailed)"
	}
	return "일반(General)"
}

// Disclosure controls whether the national id back part is printed.
type Disclosure string

const (
	DisclosureMasked   Disclosure = "masked"
	DisclosureUnmasked Disclosure = "unmasked"
)

func (d Disclosure) Display() string {
	if d == DisclosureUnmasked {
		return "완전공개"
	}
	return "비공개"
}

// DeliveryMethod is how the citizen receives the document.
type DeliveryMethod string

const (
	DeliveryPrint            DeliveryMethod = "print"
	DeliveryElectronicWallet DeliveryMethod = "electronic_wallet"
	DeliveryPDF              DeliveryMethod = "pdf"
	DeliveryFax              DeliveryMethod = "fax"
)

var deliveryDisplay = map[DeliveryMethod]string{
	DeliveryPrint:            "프린터 출력",
	DeliveryElectronicWallet: "전자문서지갑",
	DeliveryPDF:              "PDF 저장",
	DeliveryFax:              "팩스 전송",
}

// Display maps the method to its portal label, falling back to the raw value.
func (m DeliveryMethod) Display() string {
	if s, ok := deliveryDisplay[m]; ok {
		return s
	}
	return string(m)
}

// Valid reports whether m is a known method.
func (m DeliveryMethod) Valid() bool {
	_, ok := deliveryDisplay[m]
	return ok
}

// Relationship values offered by the portal.
const (
	RelationSelf   = "본인"
	RelationSpouse = "배우자"
	RelationChild  = "자녀"
	RelationParent = "부모"
)

// Legacy detail option values.
const (
	DetailIncluded   = "포함"
	DetailExcluded   = "미포함"
	DetailDefault    = "기본"
	DetailSelfIssued = "본인발급"
)

// SpecOption is a checkbox offered for a document type.
type SpecOption string

const (
	OptionPastAddress   SpecOption = "past_address"
	OptionHouseholdRRIN SpecOption = "household_rrin"
	OptionRelationship  SpecOption = "relationship"
	OptionMoveInDate    SpecOption = "move_in_date"
	OptionHouseholder   SpecOption = "householder"
	OptionMilitary      SpecOption = "military"
)

// Copies is a requested copy count. JSON and YAML accept 2 and "2" alike.
type Copies int

func (c *Copies) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*c = Copies(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("copies must be a number")
	}
	return c.parse(s)
}

func (c *Copies) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("copies must be a number (line %d)", node.Line)
	}
	return c.parse(node.Value)
}

func (c *Copies) parse(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("copies must be a number: %q", s)
	}
	*c = Copies(n)
	return nil
}

// HistoryRecord is one selectable row of a list-selection document.
type HistoryRecord struct {
	Date     string `json:"date" yaml:"date"`
	Category string `json:"category" yaml:"category"`
	Detail   string `json:"detail" yaml:"detail"`
}

// ExcelRow is one expected pair of a spreadsheet mission.
type ExcelRow struct {
	ColA string `json:"col_a" yaml:"col_a"`
	ColB string `json:"col_b" yaml:"col_b"`
}

// Sender identifies who wrote a chat line.
type Sender string

const (
	SenderPlayer  Sender = "player"
	SenderCitizen Sender = "citizen"
	SenderSystem  Sender = "system"
)

// ChatMessage is one line of the messenger transcript.
type ChatMessage struct {
	Sender    Sender    `json:"sender" yaml:"sender"`
	Text      string    `json:"text" yaml:"text"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// CitizenProfile is what the citizen asked for. Optional preferences are
// empty when the citizen did not state one.
type CitizenProfile struct {
	Name        string      `json:"name" yaml:"name"`
	MissionType MissionType `json:"mission_type" yaml:"mission_type"`
	RequestType DocType     `json:"request_type" yaml:"request_type"`

	RRNFront      string `json:"rrn_front,omitempty" yaml:"rrn_front,omitempty"`
	RRNBack       string `json:"rrn_back,omitempty" yaml:"rrn_back,omitempty"`
	Address       string `json:"address,omitempty" yaml:"address,omitempty"`
	AddressDetail string `json:"address_detail,omitempty" yaml:"address_detail,omitempty"`
	AddressOld    string `json:"address_old,omitempty" yaml:"address_old,omitempty"`
	BaseAddress   string `json:"base_address,omitempty" yaml:"base_address,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	Copies        Copies `json:"copies,omitempty" yaml:"copies,omitempty"`
	TargetName    string `json:"target_name,omitempty" yaml:"target_name,omitempty"`
	Relationship  string `json:"relationship,omitempty" yaml:"relationship,omitempty"`
	DetailOption  string `json:"detail_option,omitempty" yaml:"detail_option,omitempty"`
	Purpose       string `json:"purpose,omitempty" yaml:"purpose,omitempty"`
	PurposeDetail string `json:"purpose_detail,omitempty" yaml:"purpose_detail,omitempty"`
	PeriodStart   string `json:"period_start,omitempty" yaml:"period_start,omitempty"`
	PeriodEnd     string `json:"period_end,omitempty" yaml:"period_end,omitempty"`

	Variant    Variant        `json:"variant,omitempty" yaml:"variant,omitempty"`
	Disclosure Disclosure     `json:"disclosure,omitempty" yaml:"disclosure,omitempty"`
	Delivery   DeliveryMethod `json:"delivery,omitempty" yaml:"delivery,omitempty"`

	HistoryRecords []HistoryRecord `json:"history_records,omitempty" yaml:"history_records,omitempty"`

	ExcelTask string     `json:"excel_task,omitempty" yaml:"excel_task,omitempty"`
	ExcelRows []ExcelRow `json:"excel_rows,omitempty" yaml:"excel_rows,omitempty"`

	Dialogue []ChatMessage `json:"dialogue,omitempty" yaml:"dialogue,omitempty"`
}

// EffectiveDetailOption is the profile's detail option with the default
// applied when the citizen stated none.
func (p CitizenProfile) EffectiveDetailOption() string {
	if p.DetailOption == "" {
		return DetailDefault
	}
	return p.DetailOption
}

// Options is the checkbox state of an issued document.
type Options struct {
	IncludePastAddress   bool `json:"include_past_address" yaml:"include_past_address"`
	IncludeHouseholdRRIN bool `json:"include_household_rrin" yaml:"include_household_rrin"`
	IncludeRelationship  bool `json:"include_relationship" yaml:"include_relationship"`
	IncludeMoveInDate    bool `json:"include_move_in_date" yaml:"include_move_in_date"`
	HouseholderName      bool `json:"householder_name" yaml:"householder_name"`
	MilitaryRecord       bool `json:"military_record" yaml:"military_record"`
}

// DefaultOptions is the checkbox state of a fresh portal form.
func DefaultOptions() Options {
	return Options{
		IncludeRelationship: true,
		IncludeMoveInDate:   true,
		HouseholderName:     true,
	}
}

// PrintedDoc is a document as issued by the player.
type PrintedDoc struct {
	DocType       DocType `json:"doc_type" yaml:"doc_type"`
	Label         string  `json:"label" yaml:"label"`
	Name          string  `json:"name" yaml:"name"`
	RRNFront      string  `json:"rrn_front" yaml:"rrn_front"`
	RRNBack       string  `json:"rrn_back" yaml:"rrn_back"`
	Address       string  `json:"address" yaml:"address"`
	AddressDetail string  `json:"address_detail" yaml:"address_detail"`
	PhoneNumber   string  `json:"phone_number" yaml:"phone_number"`
	Purpose       string  `json:"purpose" yaml:"purpose"`
	PurposeDetail string  `json:"purpose_detail" yaml:"purpose_detail"`
	TargetName    string  `json:"target_name" yaml:"target_name"`
	Relationship  string  `json:"relationship" yaml:"relationship"`
	Copies        Copies  `json:"copies" yaml:"copies"`
	BaseAddress   string  `json:"base_address" yaml:"base_address"`
	PeriodStart   string  `json:"period_start" yaml:"period_start"`
	PeriodEnd     string  `json:"period_end" yaml:"period_end"`

	Options    Options        `json:"options" yaml:"options"`
	Variant    Variant        `json:"variant" yaml:"variant"`
	Disclosure Disclosure     `json:"disclosure" yaml:"disclosure"`
	Delivery   DeliveryMethod `json:"delivery" yaml:"delivery"`

	DetailOption    string          `json:"detail_option" yaml:"detail_option"`
	IssuedAt        time.Time       `json:"issued_at" yaml:"issued_at"`
	SelectedRecords []HistoryRecord `json:"selected_records,omitempty" yaml:"selected_records,omitempty"`
}
