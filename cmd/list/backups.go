// cmd/list/backups.go

package list

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/bootstrap"
	metis "github.com/CodeMonkeyCybersecurity/metis/pkg/metis_cli"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
)

var backupsCmd = &cobra.Command{
	Use:     "backups",
	Short:   "List stored policy backups, newest first",
	Aliases: []string{"backup"},
	Args:    cobra.NoArgs,
	RunE:    metis.Wrap(runListBackups),
}

func init() {
	ListCmd.AddCommand(backupsCmd)

	backupsCmd.Flags().Bool("json", false, "Emit JSON instead of a table")
}

func runListBackups(rc *metis_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	session, err := bootstrap.Connect(rc)
	if err != nil {
		return err
	}
	engine, err := session.Engine()
	if err != nil {
		return err
	}

	backups, err := engine.List(rc)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return json.NewEncoder(os.Stdout).Encode(backups)
	}

	if len(backups) == 0 {
		fmt.Println("No backups stored. Create one with `metis backup policies --name <name>`.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tPOLICIES\tCREATED BY")
	for _, b := range backups {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			b.ID, b.Name, b.CreatedDateTime.Format("2006-01-02 15:04"), b.PoliciesCount, b.CreatedBy)
	}
	return w.Flush()
}
