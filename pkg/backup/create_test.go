package backup_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/backup"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGraph implements the engine's slice of the Graph client with canned
// data and per-policy create failures keyed by display name.
type fakeGraph struct {
	ca    []map[string]interface{}
	dc    []map[string]interface{}
	caErr error
	dcErr error

	createdCA []map[string]interface{}
	createdDC []map[string]interface{}
	createErr map[string]error
	nextID    int
}

func (f *fakeGraph) RawConditionalAccessPolicies(ctx context.Context) ([]map[string]interface{}, error) {
	return f.ca, f.caErr
}

func (f *fakeGraph) RawDeviceCompliancePolicies(ctx context.Context) ([]map[string]interface{}, error) {
	return f.dc, f.dcErr
}

func (f *fakeGraph) create(policy map[string]interface{}, sink *[]map[string]interface{}) (map[string]interface{}, error) {
	name, _ := policy["displayName"].(string)
	if err := f.createErr[name]; err != nil {
		return nil, err
	}
	f.nextID++
	*sink = append(*sink, policy)
	created := map[string]interface{}{"id": fmt.Sprintf("new-%d", f.nextID)}
	for k, v := range policy {
		created[k] = v
	}
	return created, nil
}

func (f *fakeGraph) CreateConditionalAccessPolicy(ctx context.Context, policy map[string]interface{}) (map[string]interface{}, error) {
	return f.create(policy, &f.createdCA)
}

func (f *fakeGraph) CreateDeviceCompliancePolicy(ctx context.Context, policy map[string]interface{}) (map[string]interface{}, error) {
	return f.create(policy, &f.createdDC)
}

func testRC(t *testing.T) *metis_io.RuntimeContext {
	t.Helper()
	return metis_io.NewContext(context.Background(), t.Name())
}

func testEngine(t *testing.T, graph *fakeGraph) (*backup.Engine, backup.Store) {
	t.Helper()
	store, err := backup.NewFileStore(t.TempDir())
	require.NoError(t, err)
	e := backup.NewEngine(graph, store, "tenant-1", "admin@contoso.com")
	e.SetNowForTest(func() time.Time {
		return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	})
	return e, store
}

func TestCreate_RejectsBlankName(t *testing.T) {
	e, _ := testEngine(t, &fakeGraph{})

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := e.Create(testRC(t), name, "whatever")
		require.Error(t, err)
		assert.True(t, metis_err.IsValidationError(err))
	}
}

func TestCreate_CapturesRawPolicies(t *testing.T) {
	graph := &fakeGraph{
		ca: []map[string]interface{}{
			{"id": "ca1", "displayName": "Require MFA", "state": "enabled"},
			{"id": "ca2", "displayName": "Block legacy auth", "state": "disabled"},
		},
		dc: []map[string]interface{}{
			{"id": "dc1", "displayName": "Windows baseline"},
		},
	}
	e, _ := testEngine(t, graph)

	b, err := e.Create(testRC(t), "  pre-change  ", "before the pilot")
	require.NoError(t, err)

	assert.Equal(t, "pre-change", b.Name, "name is stored trimmed")
	assert.Equal(t, "before the pilot", b.Description)
	assert.Equal(t, "admin@contoso.com", b.CreatedBy)
	assert.Equal(t, 3, b.PoliciesCount)
	assert.Len(t, b.Policies[backup.DomainConditionalAccess], 2)
	assert.Len(t, b.Policies[backup.DomainDeviceCompliance], 1)

	// Reserved domains are persisted empty, not omitted, so the stored
	// schema stays stable when replay for them lands.
	require.Contains(t, b.Policies, backup.DomainDeviceConfiguration)
	require.Contains(t, b.Policies, backup.DomainAppProtection)
	assert.Empty(t, b.Policies[backup.DomainDeviceConfiguration])
	assert.Empty(t, b.Policies[backup.DomainAppProtection])

	assert.Equal(t, "backup_1788004800000", b.ID)
	assert.Equal(t, b.CreatedDateTime, b.SnapshotDateTime)
	assert.Equal(t, "tenant-1", b.Metadata.TenantID)
	assert.Equal(t, "1.0", b.Metadata.Version)
	assert.Equal(t, []string{"manual-backup"}, b.Metadata.Tags)
}

func TestCreate_AuthFailureAborts(t *testing.T) {
	graph := &fakeGraph{
		caErr: metis_err.NewAuthenticationError(cerr.New("401"), "token rejected"),
	}
	e, store := testEngine(t, graph)

	_, err := e.Create(testRC(t), "doomed", "")
	require.Error(t, err)
	assert.True(t, metis_err.IsAuthenticationError(err))

	all, err := store.ListBackups(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "nothing is persisted when the snapshot aborts")
}

func TestCreate_TransientDomainFailureStoredEmpty(t *testing.T) {
	graph := &fakeGraph{
		caErr: cerr.New("503 from conditional access"),
		dc: []map[string]interface{}{
			{"id": "dc1", "displayName": "Windows baseline"},
		},
	}
	e, _ := testEngine(t, graph)

	b, err := e.Create(testRC(t), "partial", "")
	require.NoError(t, err, "a transient domain failure does not abort the backup")

	assert.Empty(t, b.Policies[backup.DomainConditionalAccess])
	assert.Len(t, b.Policies[backup.DomainDeviceCompliance], 1)
	assert.Equal(t, 1, b.PoliciesCount)
}

func TestCreate_PersistsToStore(t *testing.T) {
	graph := &fakeGraph{
		ca: []map[string]interface{}{{"id": "ca1", "displayName": "Require MFA"}},
	}
	e, store := testEngine(t, graph)

	b, err := e.Create(testRC(t), "kept", "")
	require.NoError(t, err)

	all, err := store.ListBackups(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
	assert.Equal(t, b.PoliciesCount, all[0].PoliciesCount)
}
