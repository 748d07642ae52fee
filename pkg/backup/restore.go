// pkg/backup/restore.go

package backup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Fields stripped from a cloned policy before resubmission: the service
// assigns fresh identity and timestamps.
var strippedFields = []string{"id", "createdDateTime", "modifiedDateTime", "lastModifiedDateTime"}

// Restore replays the selected domains of a stored backup into the tenant.
// Every policy is submitted as a brand-new object; existing policies are
// never updated or deleted. Restored conditional-access policies are forced
// to the disabled state so enforcement never silently re-enables. One
// failing policy never aborts the batch, and the whole invocation is
// recorded as one audit entry.
//
// Not idempotent: re-running with the same arguments creates another set of
// duplicates, since the service has no natural upsert key here.
func (e *Engine) Restore(rc *metis_io.RuntimeContext, backupID string, domains []Domain) (RestoreResult, error) {
	logger := otelzap.Ctx(rc.Ctx)

	if len(domains) == 0 {
		return nil, metis_err.NewValidationError("select at least one policy type to restore")
	}
	for _, d := range domains {
		if !IsSupportedDomain(d) {
			return nil, metis_err.NewValidationError("unsupported policy type %q", d)
		}
	}

	b, err := e.findBackup(rc.Ctx, backupID)
	if err != nil {
		return nil, err
	}

	logger.Info("Restoring policy backup",
		zap.String("backup_id", b.ID),
		zap.String("backup_name", b.Name),
		zap.Int("domains", len(domains)))

	result := RestoreResult{}
	total := 0
	for _, domain := range domains {
		source := b.Policies[domain]
		total += len(source)
		result[domain] = e.restoreDomain(rc, domain, source)
	}

	entry := &AuditEntry{
		ID:            uuid.New().String(),
		Timestamp:     e.now(),
		BackupID:      b.ID,
		BackupName:    b.Name,
		RestoredBy:    e.createdBy,
		PolicyTypes:   domains,
		TotalPolicies: total,
		Details:       result,
	}
	for _, dr := range result {
		entry.SuccessCount += dr.Success
		entry.FailedCount += dr.Failed
	}

	if err := e.store.AppendAuditEntry(rc.Ctx, entry); err != nil {
		// The restore itself succeeded; a missing audit row is worth a
		// warning, not a failed invocation.
		logger.Warn("Failed to append restore audit entry", zap.Error(err))
	}

	logger.Info("Restore completed",
		zap.Int("success", entry.SuccessCount),
		zap.Int("failed", entry.FailedCount))
	return result, nil
}

// restoreDomain replays one domain's policies sequentially so each creation
// settles before its outcome is recorded.
func (e *Engine) restoreDomain(rc *metis_io.RuntimeContext, domain Domain, source []map[string]interface{}) *DomainResult {
	dr := &DomainResult{
		Errors:         []string{},
		SuccessDetails: []SuccessDetail{},
		FailedDetails:  []FailureDetail{},
	}

	create := e.creatorFor(domain)

	for _, raw := range source {
		name := displayName(raw)
		newName := fmt.Sprintf("%s (Restored %s)", name, e.now().Format("2006-01-02"))

		if create == nil {
			dr.Failed++
			msg := fmt.Sprintf("restore of %s policies is not supported yet", domain)
			dr.Errors = append(dr.Errors, fmt.Sprintf("%s: %s", name, msg))
			dr.FailedDetails = append(dr.FailedDetails, FailureDetail{
				PolicyName: name, ErrorMessage: msg, Timestamp: e.now(),
			})
			continue
		}

		clone, err := clonePolicy(raw)
		if err != nil {
			dr.Failed++
			dr.Errors = append(dr.Errors, fmt.Sprintf("%s: %v", name, err))
			dr.FailedDetails = append(dr.FailedDetails, FailureDetail{
				PolicyName: name, ErrorMessage: err.Error(), Timestamp: e.now(),
			})
			continue
		}

		for _, field := range strippedFields {
			delete(clone, field)
		}
		clone["displayName"] = newName
		if domain == DomainConditionalAccess {
			// Safety rule: a restored access policy must never silently
			// re-enable enforcement, whatever its original state was.
			clone["state"] = "disabled"
		}

		created, err := create(rc.Ctx, clone)
		if err != nil {
			dr.Failed++
			dr.Errors = append(dr.Errors, fmt.Sprintf("%s: %v", name, err))
			dr.FailedDetails = append(dr.FailedDetails, FailureDetail{
				PolicyName: name, ErrorMessage: err.Error(), Timestamp: e.now(),
			})
			continue
		}

		newID, _ := created["id"].(string)
		dr.Success++
		dr.SuccessDetails = append(dr.SuccessDetails, SuccessDetail{
			PolicyName: newName, NewPolicyID: newID, Timestamp: e.now(),
		})
	}

	return dr
}

type createFunc func(ctx context.Context, policy map[string]interface{}) (map[string]interface{}, error)

func (e *Engine) creatorFor(domain Domain) createFunc {
	switch domain {
	case DomainConditionalAccess:
		return e.graph.CreateConditionalAccessPolicy
	case DomainDeviceCompliance:
		return e.graph.CreateDeviceCompliancePolicy
	default:
		// Reserved domains have no replay endpoint yet.
		return nil
	}
}

// clonePolicy deep-copies via a JSON round trip so mutations never reach
// the stored backup record.
func clonePolicy(raw map[string]interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, cerr.Wrap(err, "cloning policy")
	}
	var clone map[string]interface{}
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, cerr.Wrap(err, "cloning policy")
	}
	return clone, nil
}

func displayName(raw map[string]interface{}) string {
	if s, ok := raw["displayName"].(string); ok && s != "" {
		return s
	}
	if s, ok := raw["name"].(string); ok && s != "" {
		return s
	}
	return "(unnamed policy)"
}
