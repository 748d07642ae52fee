// pkg/msgraph/organization.go

package msgraph

import (
	"context"
	"encoding/json"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
	cerr "github.com/cockroachdb/errors"
)

// Organization is the tenant's organization record.
type Organization struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	VerifiedDomains []struct {
		Name      string `json:"name"`
		IsDefault bool   `json:"isDefault"`
	} `json:"verifiedDomains"`
	AssignedPlans []struct {
		ServicePlanID string `json:"servicePlanId"`
		Service       string `json:"service"`
	} `json:"assignedPlans"`
}

// OrganizationInfo reads the tenant's organization object. Graph returns a
// single-element collection here.
func (c *Client) OrganizationInfo(ctx context.Context) (*Organization, error) {
	raw, err := c.GetList(ctx, "/organization", ListOptions{
		Select: []string{"id", "displayName", "verifiedDomains", "assignedPlans"},
	})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, metis_err.WrapRemoteServiceError(cerr.New("empty organization collection"), "GET /organization")
	}

	data, err := json.Marshal(raw[0])
	if err != nil {
		return nil, metis_err.WrapRemoteServiceError(err, "encoding organization")
	}
	var org Organization
	if err := json.Unmarshal(data, &org); err != nil {
		return nil, metis_err.WrapRemoteServiceError(err, "decoding organization")
	}
	return &org, nil
}
