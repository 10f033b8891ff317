package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"govos/internal/document"
)

type catalogEntry struct {
	Type            document.DocType      `yaml:"type"`
	Label           string                `yaml:"label"`
	Required        []string              `yaml:"required"`
	HasPeriod       bool                  `yaml:"has_period,omitempty"`
	HasVariant      bool                  `yaml:"has_variant,omitempty"`
	Options         []document.SpecOption `yaml:"options,omitempty"`
	IsListSelection bool                  `yaml:"is_list_selection,omitempty"`
	ListHeaders     []string              `yaml:"list_headers,omitempty"`
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the document catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			specs := document.Catalog()
			entries := make([]catalogEntry, 0, len(specs))
			for _, s := range specs {
				e := catalogEntry{
					Type:            s.Type,
					Label:           s.Label,
					Required:        s.RequiredKeys(),
					HasPeriod:       s.HasPeriod,
					HasVariant:      s.HasVariant,
					Options:         s.Options,
					IsListSelection: s.IsListSelection,
				}
				if s.IsListSelection {
					e.ListHeaders = s.Headers()
				}
				entries = append(entries, e)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(entries)
		},
	}
}
