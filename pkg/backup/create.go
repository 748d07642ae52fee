// pkg/backup/create.go

package backup

import (
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const schemaVersion = "1.0"

// Create captures a named point-in-time snapshot of the tenant's raw
// policies. The raw objects are fetched directly from the service, never
// from a normalized cache, so the copy is faithful. The record never
// touches the service's live policies.
func (e *Engine) Create(rc *metis_io.RuntimeContext, name, description string) (*Backup, error) {
	logger := otelzap.Ctx(rc.Ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, metis_err.NewValidationError("backup name must not be empty")
	}

	logger.Info("Creating policy backup", zap.String("name", name))

	policies := map[Domain][]map[string]interface{}{
		DomainConditionalAccess:   {},
		DomainDeviceCompliance:    {},
		DomainDeviceConfiguration: {},
		DomainAppProtection:       {},
	}

	// Configuration and app-protection domains are reserved: the keys are
	// persisted so old backups stay schema-compatible once replay for them
	// lands, but no snapshot is taken yet.
	fetches := []struct {
		domain Domain
		fetch  func() ([]map[string]interface{}, error)
	}{
		{DomainConditionalAccess, func() ([]map[string]interface{}, error) {
			return e.graph.RawConditionalAccessPolicies(rc.Ctx)
		}},
		{DomainDeviceCompliance, func() ([]map[string]interface{}, error) {
			return e.graph.RawDeviceCompliancePolicies(rc.Ctx)
		}},
	}

	for _, f := range fetches {
		raw, err := f.fetch()
		if err != nil {
			if metis_err.IsAuthenticationError(err) {
				return nil, err
			}
			logger.Warn("Snapshot of domain failed, storing it empty",
				zap.String("domain", string(f.domain)), zap.Error(err))
			continue
		}
		if raw == nil {
			raw = []map[string]interface{}{}
		}
		policies[f.domain] = raw
	}

	count := 0
	for _, raw := range policies {
		count += len(raw)
	}

	now := e.now()
	b := &Backup{
		ID:               fmt.Sprintf("backup_%d", now.UnixMilli()),
		Name:             name,
		Description:      description,
		CreatedBy:        e.createdBy,
		CreatedDateTime:  now,
		SnapshotDateTime: now,
		PoliciesCount:    count,
		Policies:         policies,
		Metadata: Metadata{
			TenantID: e.tenantID,
			Version:  schemaVersion,
			Tags:     []string{"manual-backup"},
		},
	}

	if err := e.store.SaveBackup(rc.Ctx, b); err != nil {
		return nil, err
	}

	logger.Info("Policy backup stored",
		zap.String("backup_id", b.ID),
		zap.Int("policies", b.PoliciesCount))
	return b, nil
}
