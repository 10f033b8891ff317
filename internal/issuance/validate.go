// Package issuance decides whether a printed civil document satisfies a
// citizen's request, and builds documents from the portal form.
package issuance

import (
	"govos/internal/document"
)

// Validate compares doc against profile. The first failing rule wins:
// document type, then required fields in catalog order, then variant,
// disclosure and delivery preferences, then record selection.
//
// A document issued to the player themself bypasses every rule.
func Validate(doc document.PrintedDoc, profile document.CitizenProfile) Verdict {
	if document.IsPlayer(doc.Name, doc.RRNFront) {
		return Verdict{Accepted: true, SelfIssued: true}
	}

	if doc.DocType != profile.RequestType {
		return rejectType(profile.RequestType, doc.DocType)
	}

	spec, ok := document.Lookup(doc.DocType)
	if !ok {
		return rejectType(profile.RequestType, doc.DocType)
	}

	derived := document.DeriveDetailOption(doc.Options.IncludePastAddress, profile.DetailOption)
	for _, f := range spec.Required {
		if !f.Matches(doc, profile, derived) {
			return rejectField(f)
		}
	}

	if profile.Variant != "" && doc.Variant != profile.Variant {
		return rejectVariant(profile.Variant, doc.Variant)
	}
	if profile.Disclosure != "" && doc.Disclosure != profile.Disclosure {
		return rejectDisclosure(profile.Disclosure, doc.Disclosure)
	}
	if profile.Delivery != "" && doc.Delivery != profile.Delivery {
		return rejectDelivery(profile.Delivery, doc.Delivery)
	}

	if spec.IsListSelection && len(doc.SelectedRecords) == 0 {
		return rejectSelection()
	}

	return accept()
}
