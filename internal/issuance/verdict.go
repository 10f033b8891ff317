package issuance

import (
	"strings"

	"govos/internal/document"
)

// Category classifies a rejection.
type Category string

const (
	CategoryNone      Category = ""
	CategoryType      Category = "type"
	CategoryField     Category = "field"
	CategoryOption    Category = "option"
	CategorySelection Category = "selection"
)

// OptionKind names which preference an option rejection is about.
type OptionKind string

const (
	OptionVariant    OptionKind = "variant"
	OptionDisclosure OptionKind = "disclosure"
	OptionDelivery   OptionKind = "delivery"
)

// Verdict is the outcome of comparing a printed document with a request.
// Rejections are values, not errors: exactly one reason is reported.
type Verdict struct {
	Accepted   bool               `json:"accepted"`
	SelfIssued bool               `json:"self_issued,omitempty"`
	Category   Category           `json:"category,omitempty"`
	Field      document.FieldKind `json:"field,omitempty"`
	Option     OptionKind         `json:"option,omitempty"`
	Reason     string             `json:"reason,omitempty"`
	Requested  string             `json:"requested,omitempty"`
	Submitted  string             `json:"submitted,omitempty"`
}

// MetricLabel is the category used in metrics and spans.
func (v Verdict) MetricLabel() string {
	switch {
	case v.SelfIssued:
		return "self_issued"
	case v.Accepted:
		return "accepted"
	default:
		return string(v.Category)
	}
}

// Citizen renders the in-character complaint for a rejection: the reason
// without its bracketed tag. Accepted verdicts yield the thank-you line.
func (v Verdict) Citizen() string {
	if v.Accepted {
		return AcceptLine
	}
	return "이게 아니잖아요! " + stripTag(v.Reason) + " 다시 확인해주세요."
}

// AcceptLine is what a satisfied citizen says.
const AcceptLine = "감사합니다. 수고 많으시네요."

func stripTag(reason string) string {
	if !strings.HasPrefix(reason, "[") {
		return reason
	}
	if i := strings.Index(reason, "] "); i >= 0 {
		return reason[i+2:]
	}
	return reason
}

func accept() Verdict {
	return Verdict{Accepted: true}
}

func rejectType(required document.DocType, submitted document.DocType) Verdict {
	return Verdict{
		Category:  CategoryType,
		Reason:    "[서류 불일치] 민원인은 '" + document.LabelOf(required) + "'를 원합니다.",
		Requested: string(required),
		Submitted: string(submitted),
	}
}

func rejectField(f document.FieldKind) Verdict {
	return Verdict{
		Category: CategoryField,
		Field:    f,
		Reason:   "[정보 불일치] " + f.Label() + " 항목이 요청과 다릅니다.",
	}
}

func rejectVariant(requested, submitted document.Variant) Verdict {
	return Verdict{
		Category:  CategoryOption,
		Option:    OptionVariant,
		Reason:    "[옵션 불일치] 민원인은 '" + requested.Display() + "' 증명서를 원합니다.",
		Requested: string(requested),
		Submitted: string(submitted),
	}
}

func rejectDisclosure(requested, submitted document.Disclosure) Verdict {
	return Verdict{
		Category:  CategoryOption,
		Option:    OptionDisclosure,
		Reason:    "[주민번호 공개 불일치] 민원인은 주민번호 '" + requested.Display() + "'를 원합니다.",
		Requested: string(requested),
		Submitted: string(submitted),
	}
}

func rejectDelivery(requested, submitted document.DeliveryMethod) Verdict {
	return Verdict{
		Category:  CategoryOption,
		Option:    OptionDelivery,
		Reason:    "[수령 방법 불일치] 민원인은 '" + requested.Display() + "' 방식으로 받기를 원합니다.",
		Requested: string(requested),
		Submitted: string(submitted),
	}
}

func rejectSelection() Verdict {
	return Verdict{
		Category: CategorySelection,
		Reason:   "[기록 미선택] 발급할 기록을 선택하지 않았습니다.",
	}
}
