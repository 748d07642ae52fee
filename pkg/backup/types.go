// pkg/backup/types.go

package backup

import "time"

// Domain keys a policy family inside a backup. The JSON names are the wire
// and store format, shared with exports.
type Domain string

const (
	DomainConditionalAccess   Domain = "conditionalAccess"
	DomainDeviceCompliance    Domain = "deviceCompliance"
	DomainDeviceConfiguration Domain = "deviceConfiguration"
	DomainAppProtection       Domain = "appProtection"
)

// SupportedDomains lists every domain a backup carries, in snapshot order.
func SupportedDomains() []Domain {
	return []Domain{
		DomainConditionalAccess,
		DomainDeviceCompliance,
		DomainDeviceConfiguration,
		DomainAppProtection,
	}
}

// IsSupportedDomain reports whether d is a known domain key.
func IsSupportedDomain(d Domain) bool {
	for _, s := range SupportedDomains() {
		if s == d {
			return true
		}
	}
	return false
}

// Metadata is free-form backup context.
type Metadata struct {
	TenantID string   `json:"tenantId"`
	Version  string   `json:"version"`
	Tags     []string `json:"tags"`
}

// Backup is a point-in-time, disconnected copy of raw tenant policies.
// Immutable once stored; the live policies it was taken from are referenced
// by value only.
type Backup struct {
	ID               string                          `json:"id"`
	Name             string                          `json:"name"`
	Description      string                          `json:"description"`
	CreatedBy        string                          `json:"createdBy"`
	CreatedDateTime  time.Time                       `json:"createdDateTime"`
	SnapshotDateTime time.Time                       `json:"snapshotDateTime"`
	PoliciesCount    int                             `json:"policiesCount"`
	Policies         map[Domain][]map[string]interface{} `json:"policies"`
	Metadata         Metadata                        `json:"metadata"`
}

// SuccessDetail records one re-created policy.
type SuccessDetail struct {
	PolicyName  string    `json:"policyName"`
	NewPolicyID string    `json:"newPolicyId"`
	Timestamp   time.Time `json:"timestamp"`
}

// FailureDetail records one policy that could not be re-created.
type FailureDetail struct {
	PolicyName   string    `json:"policyName"`
	ErrorMessage string    `json:"errorMessage"`
	Timestamp    time.Time `json:"timestamp"`
}

// DomainResult is the per-domain outcome of one restore invocation.
type DomainResult struct {
	Success        int             `json:"success"`
	Failed         int             `json:"failed"`
	Errors         []string        `json:"errors"`
	SuccessDetails []SuccessDetail `json:"successDetails"`
	FailedDetails  []FailureDetail `json:"failedDetails"`
}

// RestoreResult maps each selected domain onto its outcome. Produced once
// per restore invocation, never mutated after return.
type RestoreResult map[Domain]*DomainResult

// AuditEntry is one append-only record of a restore invocation.
type AuditEntry struct {
	ID            string        `json:"id"`
	Timestamp     time.Time     `json:"timestamp"`
	BackupID      string        `json:"backupId"`
	BackupName    string        `json:"backupName"`
	RestoredBy    string        `json:"restoredBy"`
	PolicyTypes   []Domain      `json:"policyTypes"`
	TotalPolicies int           `json:"totalPolicies"`
	SuccessCount  int           `json:"successCount"`
	FailedCount   int           `json:"failedCount"`
	Details       RestoreResult `json:"details"`
}
