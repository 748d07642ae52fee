// cmd/root.go

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	// Subcommands
	backupcmd "github.com/CodeMonkeyCybersecurity/metis/cmd/backup"
	deletecmd "github.com/CodeMonkeyCybersecurity/metis/cmd/delete"
	exportcmd "github.com/CodeMonkeyCybersecurity/metis/cmd/export"
	inspectcmd "github.com/CodeMonkeyCybersecurity/metis/cmd/inspect"
	listcmd "github.com/CodeMonkeyCybersecurity/metis/cmd/list"
	restorecmd "github.com/CodeMonkeyCybersecurity/metis/cmd/restore"
	synccmd "github.com/CodeMonkeyCybersecurity/metis/cmd/sync"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
)

// RootCmd is the base command for metis.
var RootCmd = &cobra.Command{
	Use:   "metis",
	Short: "Metis CLI for Microsoft 365 tenant administration",
	Long: `Metis is a command-line console for a Microsoft 365 tenant: it aggregates
users, policies, security alerts, and audit activity from Microsoft Graph,
and manages point-in-time policy backups with safe, disabled-by-default
restores.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("No subcommand provided. Try `metis help`.")
		return cmd.Help()
	},
}

// HelpCmd wraps help so that it can be invoked like a normal command.
var HelpCmd = &cobra.Command{
	Use:   "help",
	Short: "Help about any command",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return RootCmd.Help()
		}
		c, _, err := RootCmd.Find(args)
		if err != nil || c == nil {
			return fmt.Errorf("command not found: %s", strings.Join(args, " "))
		}
		return c.Help()
	},
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	RootCmd.SetHelpCommand(HelpCmd)

	for _, subCmd := range []*cobra.Command{
		inspectcmd.InspectCmd,
		listcmd.ListCmd,
		backupcmd.BackupCmd,
		restorecmd.RestoreCmd,
		deletecmd.DeleteCmd,
		exportcmd.ExportCmd,
		synccmd.SyncCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute initializes and runs the root command.
func Execute() {
	defer logger.Sync()

	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		if metis_err.IsExpectedUserError(err) {
			logger.L().Warn("CLI completed with user error", zap.Error(err))
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(0)
		}
		logger.L().Error("CLI execution error", zap.Error(err))
		os.Exit(1)
	}
}
