package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"govos/internal/document"
	"govos/internal/issuance"
)

type verdictOutput struct {
	Accepted   bool              `yaml:"accepted"`
	SelfIssued bool              `yaml:"self_issued,omitempty"`
	Category   issuance.Category `yaml:"category,omitempty"`
	Reason     string            `yaml:"reason,omitempty"`
	Requested  string            `yaml:"requested,omitempty"`
	Submitted  string            `yaml:"submitted,omitempty"`
}

func newValidateCmd() *cobra.Command {
	var profilePath, docPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a printed document against a citizen request",
		Long: `Reads a citizen profile and a printed document from YAML files and
prints the verdict. Exits 1 when the document is rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var profile document.CitizenProfile
			if err := readYAML(profilePath, &profile); err != nil {
				return err
			}
			var doc document.PrintedDoc
			if err := readYAML(docPath, &doc); err != nil {
				return err
			}

			v := issuance.Validate(doc, profile)
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			out := verdictOutput{
				Accepted:   v.Accepted,
				SelfIssued: v.SelfIssued,
				Category:   v.Category,
				Reason:     v.Reason,
				Requested:  v.Requested,
				Submitted:  v.Submitted,
			}
			if err := enc.Encode(out); err != nil {
				return err
			}
			if err := enc.Close(); err != nil {
				return err
			}
			if !v.Accepted {
				return errRejected
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&profilePath, "profile", "", "citizen profile YAML file")
	cmd.Flags().StringVar(&docPath, "doc", "", "printed document YAML file")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("doc")
	return cmd
}

func readYAML(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
