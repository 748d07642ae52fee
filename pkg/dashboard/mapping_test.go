package dashboard

import (
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/msgraph"
	"github.com/stretchr/testify/assert"
)

func TestMapUserRole(t *testing.T) {
	tests := []struct {
		jobTitle string
		want     string
	}{
		{"Global Administrator", "Global Admin"},
		{"Tenant Admin", "Global Admin"},
		{"Security Administrator", "Security Admin"},
		{"Compliance Admin", "Compliance Admin"},
		{"IT Admin", "User Admin"},
		{"Software Engineer", "Viewer"},
		{"", "Viewer"},
	}

	for _, tt := range tests {
		t.Run(tt.jobTitle, func(t *testing.T) {
			assert.Equal(t, tt.want, mapUserRole(tt.jobTitle))
		})
	}
}

func TestMapUsers_Defaults(t *testing.T) {
	out := mapUsers([]msgraph.User{
		{ID: "u1", DisplayName: "Ada", AccountEnabled: false},
	})

	assert.Equal(t, "Inactive", out[0].Status)
	assert.Equal(t, "Unknown", out[0].Department)
	assert.True(t, out[0].LastLogin.IsZero())
}

func TestMapActivities_SystemFallbackAndSeverity(t *testing.T) {
	var signedIn msgraph.DirectoryAudit
	signedIn.ID = "a1"
	signedIn.Category = "Policy"
	signedIn.ActivityDisplayName = "Update policy"
	signedIn.ActivityDateTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	signedIn.InitiatedBy.User.UserPrincipalName = "ada@contoso.com"
	signedIn.Result.ResultType = "success"

	var unattended msgraph.DirectoryAudit
	unattended.ID = "a2"
	unattended.ActivityDisplayName = "Sync directory"
	unattended.Result.ResultType = "failure"

	out := mapActivities([]msgraph.DirectoryAudit{signedIn, unattended})

	assert.Equal(t, "ada@contoso.com", out[0].User)
	assert.Equal(t, "Policy: Update policy", out[0].Description)
	assert.Equal(t, "Success", out[0].Severity)

	assert.Equal(t, "System", out[1].User, "activities with no initiator belong to the platform")
	assert.Equal(t, "Error", out[1].Severity)
}

func TestMapLogSeverity(t *testing.T) {
	assert.Equal(t, "Success", mapLogSeverity("success"))
	assert.Equal(t, "Error", mapLogSeverity("failure"))
	assert.Equal(t, "Info", mapLogSeverity("timeout"))
	assert.Equal(t, "Info", mapLogSeverity(""))
}

func TestMapRecommendations(t *testing.T) {
	out := mapRecommendations([]map[string]interface{}{
		{
			"id":         "ctrl-1",
			"title":      "Enable MFA",
			"userImpact": "high",
			"controlStateUpdates": []interface{}{
				map[string]interface{}{"assignedTo": "somebody"},
				map[string]interface{}{"assignedTo": "Completed"},
			},
		},
		{
			"id":         "ctrl-2",
			"title":      "Review guests",
			"userImpact": "unexpected",
		},
	})

	assert.Equal(t, "High", out[0].Impact)
	assert.Equal(t, "Completed", out[0].Status, "the newest control-state update wins")

	assert.Equal(t, "Medium", out[1].Impact, "unrecognized impact defaults to medium")
	assert.Equal(t, "Not Started", out[1].Status)
}

func TestMapRecommendations_EmptyUsesFallback(t *testing.T) {
	out := mapRecommendations(nil)
	assert.Len(t, out, 5)
}

func TestGrowthRate_EmptyUsers(t *testing.T) {
	assert.Zero(t, growthRate(nil, time.Now()))
}
