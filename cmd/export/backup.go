// cmd/export/backup.go

package export

import (
	"fmt"
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/bootstrap"
	metis "github.com/CodeMonkeyCybersecurity/metis/pkg/metis_cli"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
)

var backupCmd = &cobra.Command{
	Use:   "backup <backup-id>",
	Short: "Export a policy backup as a JSON file",
	Long: `Write a stored policy backup to disk as indented JSON. The filename is
derived from the backup name with non-alphanumeric characters collapsed to
underscores, suffixed "_backup.json".

Examples:
  metis export backup backup_1756448809000
  metis export backup backup_1756448809000 --output /tmp`,
	Args: cobra.ExactArgs(1),
	RunE: metis.Wrap(runExportBackup),
}

func init() {
	ExportCmd.AddCommand(backupCmd)

	backupCmd.Flags().String("output", ".", "Directory to write the export into")
}

func runExportBackup(rc *metis_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	session, err := bootstrap.Connect(rc)
	if err != nil {
		return err
	}
	engine, err := session.Engine()
	if err != nil {
		return err
	}

	filename, data, err := engine.Export(rc, args[0])
	if err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString("output")
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return cerr.Wrapf(err, "writing export to %s", path)
	}

	fmt.Printf("Exported to %s\n", path)
	return nil
}
