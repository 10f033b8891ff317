package handler

import (
	"govos/internal/document"
	"govos/internal/session"
)

// CreateSessionResponse carries the new session and its bearer token.
type CreateSessionResponse struct {
	Session   session.Snapshot `json:"session"`
	Token     string           `json:"token"`
	TokenType string           `json:"token_type"`
}

// DocumentSpecResponse is one catalog entry.
type DocumentSpecResponse struct {
	Type            document.DocType      `json:"type"`
	Label           string                `json:"label"`
	Required        []string              `json:"required"`
	HasPeriod       bool                  `json:"has_period"`
	HasVariant      bool                  `json:"has_variant"`
	Options         []document.SpecOption `json:"options,omitempty"`
	IsListSelection bool                  `json:"is_list_selection"`
	ListHeaders     []string              `json:"list_headers,omitempty"`
}

// CatalogResponse lists every document type.
type CatalogResponse struct {
	Documents []DocumentSpecResponse `json:"documents"`
}

func toCatalogResponse(specs []document.Spec) CatalogResponse {
	out := make([]DocumentSpecResponse, 0, len(specs))
	for _, s := range specs {
		entry := DocumentSpecResponse{
			Type:            s.Type,
			Label:           s.Label,
			Required:        s.RequiredKeys(),
			HasPeriod:       s.HasPeriod,
			HasVariant:      s.HasVariant,
			Options:         s.Options,
			IsListSelection: s.IsListSelection,
		}
		if s.IsListSelection {
			entry.ListHeaders = s.Headers()
		}
		out = append(out, entry)
	}
	return CatalogResponse{Documents: out}
}
