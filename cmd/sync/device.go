// cmd/sync/device.go

package sync

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/bootstrap"
	metis "github.com/CodeMonkeyCybersecurity/metis/pkg/metis_cli"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/msgraph"
)

var deviceCmd = &cobra.Command{
	Use:   "device <managed-device-id>",
	Short: "Push a remote action to a managed device",
	Long: `Push a remote action to an Intune-enrolled device. The default action asks
the device to check in and apply pending policy.

Destructive actions (wipe, retire) require --force.

Examples:
  # Ask a device to sync
  metis sync device 0a1b2c3d-...

  # Lock a lost device
  metis sync device 0a1b2c3d-... --action remoteLock`,
	Args: cobra.ExactArgs(1),
	RunE: metis.Wrap(runSyncDevice),
}

func init() {
	SyncCmd.AddCommand(deviceCmd)

	deviceCmd.Flags().String("action", string(msgraph.DeviceActionSync),
		"Action to push: syncDevice, remoteLock, retire, wipe")
	deviceCmd.Flags().Bool("force", false, "Required for wipe and retire")
}

func runSyncDevice(rc *metis_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)

	actionName, _ := cmd.Flags().GetString("action")
	action := msgraph.DeviceAction(actionName)

	if action == msgraph.DeviceActionWipe || action == msgraph.DeviceActionRetire {
		if force, _ := cmd.Flags().GetBool("force"); !force {
			return metis_err.NewValidationError("action %q removes data from the device; re-run with --force", action)
		}
	}

	session, err := bootstrap.Connect(rc)
	if err != nil {
		return err
	}

	device, err := session.Graph.ManagedDeviceByID(rc.Ctx, args[0])
	if err != nil {
		return err
	}

	if err := session.Graph.InvokeDeviceAction(rc.Ctx, device.ID, action); err != nil {
		return err
	}

	logger.Info("Device action accepted",
		zap.String("device_id", device.ID),
		zap.String("device_name", device.DeviceName),
		zap.String("action", string(action)))
	fmt.Printf("Action %s accepted for %s (%s)\n", action, device.DeviceName, device.ID)
	return nil
}
