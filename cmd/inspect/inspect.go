// cmd/inspect/inspect.go

package inspect

import (
	"github.com/spf13/cobra"
)

// InspectCmd is the root command for tenant inspection.
var InspectCmd = &cobra.Command{
	Use:     "inspect",
	Short:   "Inspect aggregated tenant state",
	Aliases: []string{"show"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
