// pkg/msgraph/security.go

package msgraph

import "context"

// SecurityAlerts lists recent alerts from the unified alerts endpoint.
func (c *Client) SecurityAlerts(ctx context.Context, top int) ([]map[string]interface{}, error) {
	return c.GetList(ctx, "/security/alerts_v2", ListOptions{
		Select:  []string{"id", "title", "description", "severity", "status", "createdDateTime", "classification"},
		Top:     top,
		OrderBy: "createdDateTime desc",
	})
}

// SecureScores lists the tenant's recent secure score snapshots.
func (c *Client) SecureScores(ctx context.Context, top int) ([]map[string]interface{}, error) {
	return c.GetList(ctx, "/security/secureScores", ListOptions{
		Select:  []string{"id", "createdDateTime", "currentScore", "maxScore", "averageComparativeScores"},
		Top:     top,
		OrderBy: "createdDateTime desc",
	})
}

// SecureScoreControlProfiles lists the control profiles that back security
// recommendations.
func (c *Client) SecureScoreControlProfiles(ctx context.Context, top int) ([]map[string]interface{}, error) {
	return c.GetList(ctx, "/security/secureScoreControlProfiles", ListOptions{
		Select: []string{"id", "title", "implementationCost", "userImpact", "complianceInformation", "actionType", "controlStateUpdates"},
		Top:    top,
	})
}
