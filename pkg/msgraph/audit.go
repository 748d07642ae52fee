// pkg/msgraph/audit.go

package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DirectoryAudit is a directory audit log entry.
type DirectoryAudit struct {
	ID                  string    `json:"id"`
	Category            string    `json:"category"`
	ActivityDisplayName string    `json:"activityDisplayName"`
	ActivityDateTime    time.Time `json:"activityDateTime"`
	InitiatedBy         struct {
		User struct {
			UserPrincipalName string `json:"userPrincipalName"`
		} `json:"user"`
	} `json:"initiatedBy"`
	Result struct {
		ResultType string `json:"resultType"`
	} `json:"result"`
}

// DirectoryAudits lists the most recent directory audit entries.
func (c *Client) DirectoryAudits(ctx context.Context, top int) ([]DirectoryAudit, error) {
	raw, err := c.GetList(ctx, "/auditLogs/directoryAudits", ListOptions{
		Select:  []string{"id", "category", "activityDisplayName", "activityDateTime", "initiatedBy", "result"},
		Top:     top,
		OrderBy: "activityDateTime desc",
	})
	if err != nil {
		return nil, err
	}
	return decodeAudits(raw)
}

// PolicyTrends lists policy-category audit activity over the trailing
// window, the raw material for the policy change chart.
func (c *Client) PolicyTrends(ctx context.Context, days int) ([]DirectoryAudit, error) {
	since := time.Now().AddDate(0, 0, -days).UTC().Format(time.RFC3339)
	raw, err := c.GetList(ctx, "/auditLogs/directoryAudits", ListOptions{
		Select:  []string{"id", "activityDisplayName", "activityDateTime", "result"},
		Top:     1000,
		Filter:  fmt.Sprintf("activityDateTime ge %s and category eq 'Policy'", since),
		OrderBy: "activityDateTime desc",
	})
	if err != nil {
		return nil, err
	}
	return decodeAudits(raw)
}

// SignIns lists sign-in events for the trailing window. Many tenants lack
// the premium license this endpoint needs, so callers treat failure as an
// empty result.
func (c *Client) SignIns(ctx context.Context, days int) ([]map[string]interface{}, error) {
	since := time.Now().AddDate(0, 0, -days).UTC().Format(time.RFC3339)
	return c.GetList(ctx, "/auditLogs/signIns", ListOptions{
		Select:  []string{"id", "createdDateTime", "status", "userDisplayName", "appDisplayName", "riskLevel"},
		Top:     1000,
		Filter:  "createdDateTime ge " + since,
		OrderBy: "createdDateTime desc",
	})
}

func decodeAudits(raw []map[string]interface{}) ([]DirectoryAudit, error) {
	audits := make([]DirectoryAudit, 0, len(raw))
	for _, m := range raw {
		data, err := json.Marshal(m)
		if err != nil {
			continue
		}
		var a DirectoryAudit
		if err := json.Unmarshal(data, &a); err != nil {
			continue
		}
		audits = append(audits, a)
	}
	return audits, nil
}
