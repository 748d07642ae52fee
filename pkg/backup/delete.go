// pkg/backup/delete.go

package backup

import (
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Delete removes a stored backup. Deleting an id that does not exist is a
// no-op so retried deletions stay safe. Audit entries referencing the
// backup are kept; the trail is append-only.
func (e *Engine) Delete(rc *metis_io.RuntimeContext, backupID string) error {
	if err := e.store.DeleteBackup(rc.Ctx, backupID); err != nil {
		return err
	}
	otelzap.Ctx(rc.Ctx).Info("Deleted policy backup", zap.String("backup_id", backupID))
	return nil
}
