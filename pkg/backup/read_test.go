package backup_test

import (
	"encoding/json"
	"testing"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/backup"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_FilenameSanitized(t *testing.T) {
	graph := &fakeGraph{
		ca: []map[string]interface{}{{"id": "ca1", "displayName": "Require MFA"}},
	}
	e, _ := testEngine(t, graph)

	b, err := e.Create(testRC(t), "Q3 2024: pre-change!", "")
	require.NoError(t, err)

	filename, _, err := e.Export(testRC(t), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q3_2024__pre_change__backup.json", filename)
}

func TestExport_RoundTripsTheStoredRecord(t *testing.T) {
	graph := &fakeGraph{
		ca: []map[string]interface{}{
			{"id": "ca1", "displayName": "Require MFA", "state": "enabled"},
		},
	}
	e, _ := testEngine(t, graph)

	b, err := e.Create(testRC(t), "roundtrip", "full fidelity")
	require.NoError(t, err)

	_, data, err := e.Export(testRC(t), b.ID)
	require.NoError(t, err)

	var decoded backup.Backup
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, b.ID, decoded.ID)
	assert.Equal(t, b.Name, decoded.Name)
	assert.Equal(t, b.PoliciesCount, decoded.PoliciesCount)
	assert.Equal(t, "ca1", decoded.Policies[backup.DomainConditionalAccess][0]["id"])

	// Indented output, same layout as the on-disk store.
	reencoded, err := json.MarshalIndent(&decoded, "", "  ")
	require.NoError(t, err)
	assert.JSONEq(t, string(reencoded), string(data))
}

func TestExport_UnknownBackup(t *testing.T) {
	e, _ := testEngine(t, &fakeGraph{})

	_, _, err := e.Export(testRC(t), "backup_missing")
	require.Error(t, err)
	assert.True(t, metis_err.IsNotFoundError(err))
}

func TestDelete_Idempotent(t *testing.T) {
	graph := &fakeGraph{
		ca: []map[string]interface{}{{"id": "ca1", "displayName": "Require MFA"}},
	}
	e, _ := testEngine(t, graph)

	b, err := e.Create(testRC(t), "short-lived", "")
	require.NoError(t, err)

	require.NoError(t, e.Delete(testRC(t), b.ID))
	require.NoError(t, e.Delete(testRC(t), b.ID), "deleting again stays quiet")

	all, err := e.List(testRC(t))
	require.NoError(t, err)
	assert.Empty(t, all)
}
