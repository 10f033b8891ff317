// Command govosctl inspects the document catalog, checks submissions offline
// and previews generated scenarios.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errRejected makes the process exit non-zero without printing usage.
var errRejected = errors.New("document rejected")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "govosctl",
		Short:         "Operator tools for the GovOS game server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newCatalogCmd(),
		newValidateCmd(),
		newScenarioCmd(),
		newTokenCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
