// cmd/list/audit.go

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

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List the policy restore audit trail, newest first",
	Args:  cobra.NoArgs,
	RunE:  metis.Wrap(runListAudit),
}

func init() {
	ListCmd.AddCommand(auditCmd)

	auditCmd.Flags().Bool("json", false, "Emit JSON instead of a table")
}

func runListAudit(rc *metis_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	session, err := bootstrap.Connect(rc)
	if err != nil {
		return err
	}
	engine, err := session.Engine()
	if err != nil {
		return err
	}

	entries, err := engine.AuditLog(rc)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No restores recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tBACKUP\tRESTORED BY\tTOTAL\tOK\tFAILED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.BackupName, e.RestoredBy,
			e.TotalPolicies, e.SuccessCount, e.FailedCount)
	}
	return w.Flush()
}
