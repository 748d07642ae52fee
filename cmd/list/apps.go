// cmd/list/apps.go

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

const appsTop = 200

var appsCmd = &cobra.Command{
	Use:     "apps",
	Short:   "List the Intune application inventory",
	Aliases: []string{"applications"},
	Args:    cobra.NoArgs,
	RunE:    metis.Wrap(runListApps),
}

func init() {
	ListCmd.AddCommand(appsCmd)

	appsCmd.Flags().Bool("json", false, "Emit JSON instead of a table")
}

func runListApps(rc *metis_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	session, err := bootstrap.Connect(rc)
	if err != nil {
		return err
	}

	apps, err := session.Graph.MobileApps(rc.Ctx, appsTop)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return json.NewEncoder(os.Stdout).Encode(apps)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPUBLISHER\tCREATED")
	for _, a := range apps {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			field(a, "displayName"), field(a, "publisher"), field(a, "createdDateTime"))
	}
	return w.Flush()
}
