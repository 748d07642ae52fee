// cmd/delete/delete.go

package delete

import (
	"github.com/spf13/cobra"
)

// DeleteCmd is the root command for delete operations.
var DeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Delete stored resources",
	Aliases: []string{"rm", "remove"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
