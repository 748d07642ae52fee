// cmd/restore/policies.go

package restore

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/backup"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/bootstrap"
	metis "github.com/CodeMonkeyCybersecurity/metis/pkg/metis_cli"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
)

var policiesCmd = &cobra.Command{
	Use:   "policies <backup-id>",
	Short: "Restore policies from a backup",
	Long: `Restore policies from a stored backup. Every policy is created as a new
object named "<name> (Restored <date>)"; nothing in the tenant is updated
or deleted. Conditional-access policies come back disabled so enforcement
never re-enables without review.

Individual policy failures do not abort the run; the per-policy outcome is
printed and recorded in the restore audit log.

Examples:
  # Restore everything the backup holds
  metis restore policies backup_1756448809000

  # Restore only conditional-access policies
  metis restore policies backup_1756448809000 --types conditionalAccess`,
	Args: cobra.ExactArgs(1),
	RunE: metis.Wrap(runRestorePolicies),
}

func init() {
	RestoreCmd.AddCommand(policiesCmd)

	policiesCmd.Flags().StringSlice("types", nil,
		"Policy types to restore (conditionalAccess, deviceCompliance, deviceConfiguration, appProtection); defaults to all")
}

func runRestorePolicies(rc *metis_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)

	types, _ := cmd.Flags().GetStringSlice("types")
	domains := make([]backup.Domain, 0, len(types))
	for _, t := range types {
		domains = append(domains, backup.Domain(t))
	}
	if len(domains) == 0 {
		domains = backup.SupportedDomains()
	}

	session, err := bootstrap.Connect(rc)
	if err != nil {
		return err
	}
	engine, err := session.Engine()
	if err != nil {
		return err
	}

	result, err := engine.Restore(rc, args[0], domains)
	if err != nil {
		return err
	}

	success, failed := 0, 0
	for _, domain := range domains {
		dr := result[domain]
		if dr == nil {
			continue
		}
		success += dr.Success
		failed += dr.Failed

		fmt.Printf("%s: %d restored, %d failed\n", domain, dr.Success, dr.Failed)
		for _, d := range dr.SuccessDetails {
			fmt.Printf("  + %s\n", d.PolicyName)
		}
		for _, msg := range dr.Errors {
			fmt.Printf("  ! %s\n", msg)
		}
	}

	logger.Info("Restore finished",
		zap.String("backup_id", args[0]),
		zap.Int("success", success),
		zap.Int("failed", failed))
	fmt.Printf("Done: %d restored, %d failed. See `metis list audit` for the record.\n", success, failed)
	return nil
}
