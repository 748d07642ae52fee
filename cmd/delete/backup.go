// cmd/delete/backup.go

package delete

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/bootstrap"
	metis "github.com/CodeMonkeyCybersecurity/metis/pkg/metis_cli"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
)

var backupCmd = &cobra.Command{
	Use:   "backup <backup-id>",
	Short: "Delete a stored policy backup",
	Long: `Delete a stored policy backup. The restore audit log keeps its entries even
after the backup they reference is gone. Deleting an id that does not exist
is a no-op.

Examples:
  metis delete backup backup_1756448809000
  metis delete backup backup_1756448809000 --force`,
	Args: cobra.ExactArgs(1),
	RunE: metis.Wrap(runDeleteBackup),
}

func init() {
	DeleteCmd.AddCommand(backupCmd)

	backupCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}

func runDeleteBackup(rc *metis_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	backupID := args[0]

	if force, _ := cmd.Flags().GetBool("force"); !force {
		fmt.Printf("Delete backup %s? This cannot be undone. [y/N]: ", backupID)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	session, err := bootstrap.Connect(rc)
	if err != nil {
		return err
	}
	engine, err := session.Engine()
	if err != nil {
		return err
	}

	if err := engine.Delete(rc, backupID); err != nil {
		return err
	}
	fmt.Printf("Deleted backup %s\n", backupID)
	return nil
}
