// cmd/restore/restore.go

package restore

import (
	"github.com/spf13/cobra"
)

// RestoreCmd is the root command for restore operations.
var RestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replay stored policy backups into the tenant",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
