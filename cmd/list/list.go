// cmd/list/list.go

package list

import (
	"github.com/spf13/cobra"
)

// ListCmd is the root command for read-only listings.
var ListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List tenant resources (policies, backups, audit history)",
	Aliases: []string{"ls", "get"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
