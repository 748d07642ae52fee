// cmd/backup/backup.go

package backup

import (
	"github.com/spf13/cobra"
)

// BackupCmd is the root command for backup operations.
var BackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Capture point-in-time copies of tenant policies",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
