package document

import (
	"strings"

	gstrings "govos/pkg/string"
)

// FieldKind is one of the fixed required-field checks.
type FieldKind int

const (
	FieldName FieldKind = iota + 1
	FieldNationalID
	FieldAddress
	FieldPurpose
	FieldPurposeDetail
	FieldTargetName
	FieldRelationship
	FieldDetailOption
	FieldPhoneNumber
	FieldCopies
	FieldBaseAddress
	FieldPeriod
)

// Comparator reports whether a printed document satisfies one field of a profile.
// derivedDetail is the detail option derived from the document's checkboxes.
type Comparator func(doc PrintedDoc, profile CitizenProfile, derivedDetail string) bool

type fieldDef struct {
	key     string
	label   string
	matches Comparator
}

var fieldDefs = map[FieldKind]fieldDef{
	FieldName: {"name", "성명", func(d PrintedDoc, p CitizenProfile, _ string) bool {
		return strings.TrimSpace(d.Name) == strings.TrimSpace(p.Name)
	}},
	FieldNationalID: {"rrin", "주민번호", func(d PrintedDoc, p CitizenProfile, _ string) bool {
		return d.RRNFront == p.RRNFront && d.RRNBack == p.RRNBack
	}},
	FieldAddress: {"address", "주소/상세주소", func(d PrintedDoc, p CitizenProfile, _ string) bool {
		return gstrings.RemoveSpace(d.Address) == gstrings.RemoveSpace(p.Address) &&
			gstrings.RemoveSpace(d.AddressDetail) == gstrings.RemoveSpace(p.AddressDetail)
	}},
	FieldPurpose: {"purpose", "용도", func(d PrintedDoc, _ CitizenProfile, _ string) bool {
		return strings.TrimSpace(d.Purpose) != ""
	}},
	FieldPurposeDetail: {"purposeDetail", "상세용도", func(d PrintedDoc, p CitizenProfile, _ string) bool {
		return strings.TrimSpace(d.PurposeDetail) == strings.TrimSpace(p.PurposeDetail)
	}},
	FieldTargetName: {"targetName", "대상자", func(d PrintedDoc, p CitizenProfile, _ string) bool {
		return strings.TrimSpace(d.TargetName) == strings.TrimSpace(p.TargetName)
	}},
	FieldRelationship: {"relationship", "관계", func(d PrintedDoc, p CitizenProfile, _ string) bool {
		return d.Relationship == p.Relationship
	}},
	FieldDetailOption: {"detailOption", "상세옵션", func(_ PrintedDoc, p CitizenProfile, derived string) bool {
		return derived == p.EffectiveDetailOption()
	}},
	FieldPhoneNumber: {"phoneNumber", "연락처", func(d PrintedDoc, p CitizenProfile, _ string) bool {
		return gstrings.RemoveRune(d.PhoneNumber, '-') == gstrings.RemoveRune(p.PhoneNumber, '-')
	}},
	FieldCopies: {"copies", "부수", func(d PrintedDoc, p CitizenProfile, _ string) bool {
		return d.Copies == p.Copies
	}},
	FieldBaseAddress: {"baseAddress", "등록기준지", func(d PrintedDoc, p CitizenProfile, _ string) bool {
		return gstrings.RemoveSpace(d.BaseAddress) == gstrings.RemoveSpace(p.BaseAddress)
	}},
	FieldPeriod: {"period", "기간", func(d PrintedDoc, p CitizenProfile, _ string) bool {
		return d.PeriodStart == p.PeriodStart && d.PeriodEnd == p.PeriodEnd
	}},
}

// AllFields lists every field kind in declaration order.
func AllFields() []FieldKind {
	out := make([]FieldKind, 0, len(fieldDefs))
	for k := FieldName; k <= FieldPeriod; k++ {
		out = append(out, k)
	}
	return out
}

// Label is the Korean name used in rejection messages.
func (k FieldKind) Label() string {
	if d, ok := fieldDefs[k]; ok {
		return d.label
	}
	return k.String()
}

// String is the field's wire key.
func (k FieldKind) String() string {
	if d, ok := fieldDefs[k]; ok {
		return d.key
	}
	return "unknown"
}

func (k FieldKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Matches runs the field's comparator.
func (k FieldKind) Matches(doc PrintedDoc, profile CitizenProfile, derivedDetail string) bool {
	d, ok := fieldDefs[k]
	if !ok {
		return false
	}
	return d.matches(doc, profile, derivedDetail)
}

// DeriveDetailOption maps checkbox state onto the legacy detail option:
// past-address history wins, then an explicit "미포함" request, else "기본".
func DeriveDetailOption(includePastAddress bool, requested string) string {
	if includePastAddress {
		return DetailIncluded
	}
	if requested == DetailExcluded {
		return DetailExcluded
	}
	return DetailDefault
}
