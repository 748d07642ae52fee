// pkg/backup/engine.go

package backup

import (
	"context"
	"time"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/config"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
)

// PolicyService is the slice of the Graph client the engine consumes: raw
// reads for snapshots, creates for replay. Restore never updates or deletes
// a live policy.
type PolicyService interface {
	RawConditionalAccessPolicies(ctx context.Context) ([]map[string]interface{}, error)
	RawDeviceCompliancePolicies(ctx context.Context) ([]map[string]interface{}, error)
	CreateConditionalAccessPolicy(ctx context.Context, policy map[string]interface{}) (map[string]interface{}, error)
	CreateDeviceCompliancePolicy(ctx context.Context, policy map[string]interface{}) (map[string]interface{}, error)
}

// Engine captures, lists, replays, and deletes policy snapshots.
type Engine struct {
	graph PolicyService
	store Store

	tenantID  string
	createdBy string

	// now is swapped in tests for deterministic ids and timestamps.
	now func() time.Time
}

// NewEngine assembles an engine. createdBy labels backups and audit entries
// and falls back to the client id when the operator name is unknown.
func NewEngine(graph PolicyService, store Store, tenantID, createdBy string) *Engine {
	if createdBy == "" {
		createdBy = "metis"
	}
	return &Engine{
		graph:     graph,
		store:     store,
		tenantID:  tenantID,
		createdBy: createdBy,
		now:       time.Now,
	}
}

// NewStoreFromConfig picks the configured store backend.
func NewStoreFromConfig(cfg *config.Config) (Store, error) {
	if cfg.StoreBackend == config.StoreBackendRedis {
		return NewRedisStore(cfg.RedisURL)
	}
	return NewFileStore(cfg.StateDir)
}

// findBackup scans the store for one id.
func (e *Engine) findBackup(ctx context.Context, id string) (*Backup, error) {
	all, err := e.store.ListBackups(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range all {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, metis_err.NewNotFoundError("backup %q not found", id)
}
