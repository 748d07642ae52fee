// pkg/backup/store.go
//
// Persistence contract for backups and the restore audit log. The reference
// store is a pair of JSON files in the state directory; any durable
// key-value or document store satisfies the contract (see redis.go).

package backup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	cerr "github.com/cockroachdb/errors"
)

// Store owns backups and restore audit entries.
type Store interface {
	// SaveBackup appends one immutable backup record.
	SaveBackup(ctx context.Context, b *Backup) error
	// ListBackups returns all backups, createdDateTime descending.
	ListBackups(ctx context.Context) ([]*Backup, error)
	// DeleteBackup removes one backup. Unknown ids are a no-op.
	DeleteBackup(ctx context.Context, id string) error
	// AppendAuditEntry appends to the restore audit log.
	AppendAuditEntry(ctx context.Context, e *AuditEntry) error
	// ListAuditEntries returns the audit log, newest first.
	ListAuditEntries(ctx context.Context) ([]*AuditEntry, error)
}

const (
	backupsFile = "policy_backups.json"
	auditFile   = "policy_restore_audit.json"
)

// FileStore keeps everything in two JSON files. Single-writer by assumption
// (one admin session); the mutex guards in-process concurrency only.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, cerr.Wrap(err, "creating backup state dir")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) SaveBackup(ctx context.Context, b *Backup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []*Backup
	if err := s.readFile(backupsFile, &all); err != nil {
		return err
	}
	all = append(all, b)
	return s.writeFile(backupsFile, all)
}

func (s *FileStore) ListBackups(ctx context.Context) ([]*Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []*Backup
	if err := s.readFile(backupsFile, &all); err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedDateTime.After(all[j].CreatedDateTime)
	})
	return all, nil
}

func (s *FileStore) DeleteBackup(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []*Backup
	if err := s.readFile(backupsFile, &all); err != nil {
		return err
	}

	kept := all[:0]
	for _, b := range all {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(all) {
		// Unknown id: deletion is idempotent, leave the file untouched.
		return nil
	}
	return s.writeFile(backupsFile, kept)
}

func (s *FileStore) AppendAuditEntry(ctx context.Context, e *AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []*AuditEntry
	if err := s.readFile(auditFile, &all); err != nil {
		return err
	}
	all = append(all, e)
	return s.writeFile(auditFile, all)
}

func (s *FileStore) ListAuditEntries(ctx context.Context) ([]*AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []*AuditEntry
	if err := s.readFile(auditFile, &all); err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	return all, nil
}

func (s *FileStore) readFile(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return cerr.Wrapf(err, "reading %s", name)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return cerr.Wrapf(err, "parsing %s", name)
	}
	return nil
}

func (s *FileStore) writeFile(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return cerr.Wrapf(err, "encoding %s", name)
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0600)
}
