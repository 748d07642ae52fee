package backup_test

import (
	"context"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/backup"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBackup(t *testing.T, e *backup.Engine) *backup.Backup {
	t.Helper()
	b, err := e.Create(testRC(t), "seed", "")
	require.NoError(t, err)
	return b
}

func TestRestore_UnknownBackup(t *testing.T) {
	e, _ := testEngine(t, &fakeGraph{})

	_, err := e.Restore(testRC(t), "backup_nope", []backup.Domain{backup.DomainConditionalAccess})
	require.Error(t, err)
	assert.True(t, metis_err.IsNotFoundError(err))
}

func TestRestore_DomainSelectionValidation(t *testing.T) {
	graph := &fakeGraph{ca: []map[string]interface{}{{"id": "ca1", "displayName": "p"}}}
	e, _ := testEngine(t, graph)
	b := seedBackup(t, e)

	_, err := e.Restore(testRC(t), b.ID, nil)
	require.Error(t, err)
	assert.True(t, metis_err.IsValidationError(err), "empty selection is rejected")

	_, err = e.Restore(testRC(t), b.ID, []backup.Domain{"intunePolicies"})
	require.Error(t, err)
	assert.True(t, metis_err.IsValidationError(err), "unknown domain is rejected")
}

func TestRestore_CreatesSanitizedCopies(t *testing.T) {
	graph := &fakeGraph{
		ca: []map[string]interface{}{
			{
				"id":               "ca1",
				"displayName":      "Require MFA",
				"state":            "enabled",
				"createdDateTime":  "2024-01-01T00:00:00Z",
				"modifiedDateTime": "2024-06-01T00:00:00Z",
				"conditions":       map[string]interface{}{"clientAppTypes": []interface{}{"all"}},
			},
		},
		dc: []map[string]interface{}{
			{
				"id":                   "dc1",
				"displayName":          "Windows baseline",
				"lastModifiedDateTime": "2024-06-01T00:00:00Z",
			},
		},
	}
	e, _ := testEngine(t, graph)
	b := seedBackup(t, e)

	result, err := e.Restore(testRC(t), b.ID,
		[]backup.Domain{backup.DomainConditionalAccess, backup.DomainDeviceCompliance})
	require.NoError(t, err)

	require.Len(t, graph.createdCA, 1)
	created := graph.createdCA[0]
	assert.NotContains(t, created, "id")
	assert.NotContains(t, created, "createdDateTime")
	assert.NotContains(t, created, "modifiedDateTime")
	assert.Equal(t, "Require MFA (Restored 2026-08-29)", created["displayName"])
	assert.Equal(t, "disabled", created["state"],
		"restored access policies never come back enforcing")
	assert.Equal(t, map[string]interface{}{"clientAppTypes": []interface{}{"all"}},
		created["conditions"], "payload fields other than identity survive")

	require.Len(t, graph.createdDC, 1)
	assert.NotContains(t, graph.createdDC[0], "lastModifiedDateTime")
	assert.NotContains(t, graph.createdDC[0], "state",
		"compliance policies have no state field to force")

	caResult := result[backup.DomainConditionalAccess]
	require.NotNil(t, caResult)
	assert.Equal(t, 1, caResult.Success)
	assert.Zero(t, caResult.Failed)
	require.Len(t, caResult.SuccessDetails, 1)
	assert.Equal(t, "Require MFA (Restored 2026-08-29)", caResult.SuccessDetails[0].PolicyName,
		"success details carry the new, suffixed name")
	assert.NotEmpty(t, caResult.SuccessDetails[0].NewPolicyID)
}

func TestRestore_SourceBackupIsNotMutated(t *testing.T) {
	graph := &fakeGraph{
		ca: []map[string]interface{}{
			{"id": "ca1", "displayName": "Require MFA", "state": "enabled"},
		},
	}
	e, store := testEngine(t, graph)
	b := seedBackup(t, e)

	_, err := e.Restore(testRC(t), b.ID, []backup.Domain{backup.DomainConditionalAccess})
	require.NoError(t, err)

	stored, err := store.ListBackups(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	original := stored[0].Policies[backup.DomainConditionalAccess][0]
	assert.Equal(t, "ca1", original["id"])
	assert.Equal(t, "enabled", original["state"])
	assert.Equal(t, "Require MFA", original["displayName"])
}

func TestRestore_ContinuesPastFailures(t *testing.T) {
	graph := &fakeGraph{
		ca: []map[string]interface{}{
			{"id": "ca1", "displayName": "First"},
			{"id": "ca2", "displayName": "Second"},
			{"id": "ca3", "displayName": "Third"},
		},
		createErr: map[string]error{
			"Second (Restored 2026-08-29)": cerr.New("400 invalid grant controls"),
		},
	}
	e, _ := testEngine(t, graph)
	b := seedBackup(t, e)

	result, err := e.Restore(testRC(t), b.ID, []backup.Domain{backup.DomainConditionalAccess})
	require.NoError(t, err, "per-policy failures are data, not an error")

	dr := result[backup.DomainConditionalAccess]
	require.NotNil(t, dr)
	assert.Equal(t, 2, dr.Success)
	assert.Equal(t, 1, dr.Failed)
	require.Len(t, dr.Errors, 1)
	assert.Contains(t, dr.Errors[0], "Second")
	assert.Contains(t, dr.Errors[0], "400 invalid grant controls")
	require.Len(t, dr.FailedDetails, 1)
	assert.Equal(t, "Second", dr.FailedDetails[0].PolicyName)
}

func TestRestore_ReservedDomainPoliciesFail(t *testing.T) {
	e, store := testEngine(t, &fakeGraph{})

	// Hand-craft a backup holding configuration policies, as an import from
	// a future schema would.
	b := &backup.Backup{
		ID:              "backup_crafted",
		Name:            "crafted",
		CreatedDateTime: time.Now(),
		Policies: map[backup.Domain][]map[string]interface{}{
			backup.DomainDeviceConfiguration: {
				{"id": "cfg1", "displayName": "Kiosk profile"},
			},
		},
	}
	require.NoError(t, store.SaveBackup(context.Background(), b))

	result, err := e.Restore(testRC(t), b.ID, []backup.Domain{backup.DomainDeviceConfiguration})
	require.NoError(t, err)

	dr := result[backup.DomainDeviceConfiguration]
	require.NotNil(t, dr)
	assert.Zero(t, dr.Success)
	assert.Equal(t, 1, dr.Failed)
	assert.Contains(t, dr.Errors[0], "not supported")
}

func TestRestore_WritesOneAuditEntry(t *testing.T) {
	graph := &fakeGraph{
		ca: []map[string]interface{}{
			{"id": "ca1", "displayName": "First"},
			{"id": "ca2", "displayName": "Second"},
		},
		createErr: map[string]error{
			"Second (Restored 2026-08-29)": cerr.New("boom"),
		},
	}
	e, store := testEngine(t, graph)
	b := seedBackup(t, e)

	_, err := e.Restore(testRC(t), b.ID, []backup.Domain{backup.DomainConditionalAccess})
	require.NoError(t, err)

	entries, err := store.ListAuditEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1, "one invocation, one audit entry")

	entry := entries[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, b.ID, entry.BackupID)
	assert.Equal(t, "seed", entry.BackupName)
	assert.Equal(t, "admin@contoso.com", entry.RestoredBy)
	assert.Equal(t, []backup.Domain{backup.DomainConditionalAccess}, entry.PolicyTypes)
	assert.Equal(t, 2, entry.TotalPolicies)
	assert.Equal(t, 1, entry.SuccessCount)
	assert.Equal(t, 1, entry.FailedCount)
	require.NotNil(t, entry.Details[backup.DomainConditionalAccess])
}

func TestRestore_RepeatRunsDuplicate(t *testing.T) {
	graph := &fakeGraph{
		ca: []map[string]interface{}{{"id": "ca1", "displayName": "Require MFA"}},
	}
	e, store := testEngine(t, graph)
	b := seedBackup(t, e)

	for i := 0; i < 2; i++ {
		_, err := e.Restore(testRC(t), b.ID, []backup.Domain{backup.DomainConditionalAccess})
		require.NoError(t, err)
	}

	assert.Len(t, graph.createdCA, 2, "replaying twice creates two copies")

	entries, err := store.ListAuditEntries(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
