// pkg/backup/read.go

package backup

import (
	"encoding/json"
	"regexp"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
	cerr "github.com/cockroachdb/errors"
)

// List returns all stored backups, newest first.
func (e *Engine) List(rc *metis_io.RuntimeContext) ([]*Backup, error) {
	return e.store.ListBackups(rc.Ctx)
}

// Get returns one backup by id.
func (e *Engine) Get(rc *metis_io.RuntimeContext, backupID string) (*Backup, error) {
	return e.findBackup(rc.Ctx, backupID)
}

// AuditLog returns the restore audit trail, newest first.
func (e *Engine) AuditLog(rc *metis_io.RuntimeContext) ([]*AuditEntry, error) {
	return e.store.ListAuditEntries(rc.Ctx)
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Export renders a backup as indented JSON together with a filesystem-safe
// filename derived from the backup name.
func (e *Engine) Export(rc *metis_io.RuntimeContext, backupID string) (filename string, data []byte, err error) {
	b, err := e.findBackup(rc.Ctx, backupID)
	if err != nil {
		return "", nil, err
	}

	data, err = json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", nil, cerr.Wrap(err, "encoding backup for export")
	}

	filename = unsafeFilenameChars.ReplaceAllString(b.Name, "_") + "_backup.json"
	return filename, data, nil
}
