// pkg/msgraph/policies.go
//
// Policy endpoints. List calls return the raw, unnormalized Graph objects:
// the backup engine persists them verbatim and pkg/policies owns the mapping
// into view records.

package msgraph

import "context"

const (
	pathConditionalAccess    = "/identity/conditionalAccess/policies"
	pathDeviceCompliance     = "/deviceManagement/deviceCompliancePolicies"
	pathDeviceConfigurations = "/deviceManagement/deviceConfigurations"
	pathSettingsCatalog      = "/deviceManagement/configurationPolicies"
	pathAppProtection        = "/deviceAppManagement/managedAppPolicies"
)

// RawConditionalAccessPolicies lists conditional-access policies verbatim.
func (c *Client) RawConditionalAccessPolicies(ctx context.Context) ([]map[string]interface{}, error) {
	return c.GetList(ctx, pathConditionalAccess, ListOptions{})
}

// CreateConditionalAccessPolicy creates a brand-new conditional-access
// policy and returns the service's representation, including the new id.
func (c *Client) CreateConditionalAccessPolicy(ctx context.Context, policy map[string]interface{}) (map[string]interface{}, error) {
	return c.Post(ctx, pathConditionalAccess, policy)
}

// RawDeviceCompliancePolicies lists device-compliance policies verbatim.
func (c *Client) RawDeviceCompliancePolicies(ctx context.Context) ([]map[string]interface{}, error) {
	return c.GetList(ctx, pathDeviceCompliance, ListOptions{})
}

// CreateDeviceCompliancePolicy creates a brand-new device-compliance policy.
func (c *Client) CreateDeviceCompliancePolicy(ctx context.Context, policy map[string]interface{}) (map[string]interface{}, error) {
	return c.Post(ctx, pathDeviceCompliance, policy)
}

// RawDeviceConfigurations lists classic device-configuration profiles.
func (c *Client) RawDeviceConfigurations(ctx context.Context, top int) ([]map[string]interface{}, error) {
	return c.GetList(ctx, pathDeviceConfigurations, ListOptions{
		Top:     top,
		OrderBy: "lastModifiedDateTime desc",
	})
}

// RawSettingsCatalogPolicies lists settings-catalog policies. These carry
// name/platforms/settingCount instead of the classic displayName shape.
func (c *Client) RawSettingsCatalogPolicies(ctx context.Context, top int) ([]map[string]interface{}, error) {
	return c.GetList(ctx, pathSettingsCatalog, ListOptions{Top: top})
}

// RawAppProtectionPolicies lists managed-app protection policies.
func (c *Client) RawAppProtectionPolicies(ctx context.Context) ([]map[string]interface{}, error) {
	return c.GetList(ctx, pathAppProtection, ListOptions{})
}
