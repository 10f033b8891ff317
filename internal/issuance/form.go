package issuance

import (
	"fmt"
	"strings"

	"govos/internal/document"
	dErrors "govos/pkg/domain-errors"
	gstrings "govos/pkg/string"
	"govos/pkg/validation"
)

// Form is the portal's issuance form. SelectedRecords holds indexes into the
// active profile's history records.
type Form struct {
	DocType       document.DocType `json:"doc_type"`
	Name          string           `json:"name"`
	RRNFront      string           `json:"rrn_front"`
	RRNBack       string           `json:"rrn_back"`
	Address       string           `json:"address"`
	AddressDetail string           `json:"address_detail"`
	PhoneNumber   string           `json:"phone_number"`
	Purpose       string           `json:"purpose"`
	PurposeDetail string           `json:"purpose_detail"`
	TargetName    string           `json:"target_name"`
	Relationship  string           `json:"relationship"`
	Copies        document.Copies  `json:"copies"`
	BaseAddress   string           `json:"base_address"`
	PeriodStart   string           `json:"period_start"`
	PeriodEnd     string           `json:"period_end"`

	Options    document.Options        `json:"options"`
	Variant    document.Variant        `json:"variant"`
	Disclosure document.Disclosure     `json:"disclosure"`
	Delivery   document.DeliveryMethod `json:"delivery"`

	SelectedRecords []int `json:"selected_records"`
}

// NewForm returns a blank form with the portal defaults.
func NewForm() Form {
	return Form{
		DocType:      document.None,
		Relationship: document.RelationSelf,
		Copies:       1,
		Options:      document.DefaultOptions(),
		Variant:      document.VariantGeneral,
		Disclosure:   document.DisclosureMasked,
		Delivery:     document.DeliveryPrint,
	}
}

// Select resets the form for a newly chosen document type.
func (f Form) Select(t document.DocType) Form {
	next := NewForm()
	next.DocType = t
	return next
}

// FormPatch carries the fields a client changed. Nil means unchanged.
type FormPatch struct {
	Name          *string          `json:"name"`
	RRNFront      *string          `json:"rrn_front"`
	RRNBack       *string          `json:"rrn_back"`
	Address       *string          `json:"address"`
	AddressDetail *string          `json:"address_detail"`
	PhoneNumber   *string          `json:"phone_number"`
	Purpose       *string          `json:"purpose"`
	PurposeDetail *string          `json:"purpose_detail"`
	TargetName    *string          `json:"target_name"`
	Relationship  *string          `json:"relationship"`
	Copies        *document.Copies `json:"copies"`
	BaseAddress   *string          `json:"base_address"`
	PeriodStart   *string          `json:"period_start"`
	PeriodEnd     *string          `json:"period_end"`

	Options    *document.Options        `json:"options"`
	Variant    *document.Variant        `json:"variant"`
	Disclosure *document.Disclosure     `json:"disclosure"`
	Delivery   *document.DeliveryMethod `json:"delivery"`

	SelectedRecords []int `json:"selected_records"`
}

// Validate checks enumerations and lengths. Record indexes are checked
// against the active profile by the caller.
func (p FormPatch) Validate() error {
	texts := map[string]*string{
		"name": p.Name, "rrn_front": p.RRNFront, "rrn_back": p.RRNBack,
		"address": p.Address, "address_detail": p.AddressDetail, "phone_number": p.PhoneNumber,
		"purpose": p.Purpose, "purpose_detail": p.PurposeDetail, "target_name": p.TargetName,
		"relationship": p.Relationship, "base_address": p.BaseAddress,
		"period_start": p.PeriodStart, "period_end": p.PeriodEnd,
	}
	for field, v := range texts {
		if v == nil {
			continue
		}
		if err := validation.CheckStringLength(field, *v, validation.MaxFieldLength); err != nil {
			return err
		}
	}
	if p.Copies != nil && (*p.Copies < 1 || *p.Copies > 99) {
		return dErrors.New(dErrors.CodeValidation, "copies must be between 1 and 99")
	}
	if p.Variant != nil && *p.Variant != document.VariantGeneral && *p.Variant != document.VariantDetailed {
		return dErrors.Newf(dErrors.CodeValidation, "unknown variant %q", *p.Variant)
	}
	if p.Disclosure != nil && *p.Disclosure != document.DisclosureMasked && *p.Disclosure != document.DisclosureUnmasked {
		return dErrors.Newf(dErrors.CodeValidation, "unknown disclosure %q", *p.Disclosure)
	}
	if p.Delivery != nil && !p.Delivery.Valid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown delivery method %q", *p.Delivery)
	}
	if err := validation.CheckSliceCount("selected_records", len(p.SelectedRecords), validation.MaxSelectedRecords); err != nil {
		return err
	}
	for _, i := range p.SelectedRecords {
		if i < 0 {
			return dErrors.New(dErrors.CodeValidation, "selected_records must not contain negative indexes")
		}
	}
	return nil
}

// Normalize trims free-text fields.
func (p *FormPatch) Normalize() {
	gstrings.TrimStrings(p.Name, p.RRNFront, p.RRNBack, p.PhoneNumber, p.TargetName, p.Relationship,
		p.PeriodStart, p.PeriodEnd)
}

// Apply returns f with the patch applied.
func (p FormPatch) Apply(f Form) Form {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&f.Name, p.Name)
	set(&f.RRNFront, p.RRNFront)
	set(&f.RRNBack, p.RRNBack)
	set(&f.Address, p.Address)
	set(&f.AddressDetail, p.AddressDetail)
	set(&f.PhoneNumber, p.PhoneNumber)
	set(&f.Purpose, p.Purpose)
	set(&f.PurposeDetail, p.PurposeDetail)
	set(&f.TargetName, p.TargetName)
	set(&f.Relationship, p.Relationship)
	set(&f.BaseAddress, p.BaseAddress)
	set(&f.PeriodStart, p.PeriodStart)
	set(&f.PeriodEnd, p.PeriodEnd)
	if p.Copies != nil {
		f.Copies = *p.Copies
	}
	if p.Options != nil {
		f.Options = *p.Options
	}
	if p.Variant != nil {
		f.Variant = *p.Variant
	}
	if p.Disclosure != nil {
		f.Disclosure = *p.Disclosure
	}
	if p.Delivery != nil {
		f.Delivery = *p.Delivery
	}
	if p.SelectedRecords != nil {
		f.SelectedRecords = append([]int(nil), p.SelectedRecords...)
	}
	return f
}

// CheckRecordIndexes rejects indexes outside the profile's history records.
func CheckRecordIndexes(indexes []int, available int) error {
	for _, i := range indexes {
		if i < 0 || i >= available {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("selected record %d does not exist", i))
		}
	}
	return nil
}

// IsSelfIssue reports whether the form names the player.
func (f Form) IsSelfIssue() bool {
	return document.IsPlayer(strings.TrimSpace(f.Name), strings.TrimSpace(f.RRNFront))
}
