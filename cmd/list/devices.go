// cmd/list/devices.go

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

const devicesTop = 500

var devicesCmd = &cobra.Command{
	Use:     "devices",
	Short:   "List Intune-managed devices",
	Aliases: []string{"device"},
	Long: `List Intune-enrolled devices with their compliance state and last check-in.

Examples:
  metis list devices
  metis list devices --json`,
	Args: cobra.NoArgs,
	RunE: metis.Wrap(runListDevices),
}

func init() {
	ListCmd.AddCommand(devicesCmd)

	devicesCmd.Flags().Bool("json", false, "Emit JSON instead of a table")
}

func runListDevices(rc *metis_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	session, err := bootstrap.Connect(rc)
	if err != nil {
		return err
	}

	devices, err := session.Graph.ManagedDevices(rc.Ctx, devicesTop)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return json.NewEncoder(os.Stdout).Encode(devices)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tOS\tVERSION\tCOMPLIANCE\tUSER\tLAST SYNC")
	for _, d := range devices {
		lastSync := "-"
		if d.LastSyncDateTime != nil {
			lastSync = d.LastSyncDateTime.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.DeviceName, d.OperatingSystem, d.OSVersion, d.ComplianceState, d.UserPrincipalName, lastSync)
	}
	return w.Flush()
}
