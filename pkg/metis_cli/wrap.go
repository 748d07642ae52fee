// pkg/metis_cli/wrap.go

package metis_cli

import (
	"context"
	"time"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Wrap adapts a Metis handler to a cobra RunE, injecting the runtime context
// and handling panics, lifecycle logging, and expected-error softening.
func Wrap(fn func(rc *metis_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logger.InitFallback()

		rc := metis_io.NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		rc.Log.Debug("Command execution started", zap.Time("timestamp", rc.Timestamp))
		cmd.Flags().Visit(func(f *pflag.Flag) {
			rc.Log.Debug("Flag set", zap.String("flag", f.Name), zap.String("value", f.Value.String()))
		})

		start := time.Now()
		err = fn(rc, cmd, args)

		if err != nil && metis_err.IsExpectedUserError(err) {
			rc.Log.Warn("Command rejected", zap.Error(err), zap.Duration("duration", time.Since(start)))
		}
		return err
	}
}
