// cmd/sync/sync.go

package sync

import (
	"github.com/spf13/cobra"
)

// SyncCmd is the root command for device actions.
var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push actions to managed devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
