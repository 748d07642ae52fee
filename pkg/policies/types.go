// pkg/policies/types.go

package policies

import "time"

// Type classifies a normalized policy.
type Type string

const (
	TypeConditionalAccess   Type = "ConditionalAccess"
	TypeDeviceCompliance    Type = "DeviceCompliance"
	TypeDeviceConfiguration Type = "DeviceConfiguration"
	TypeAppProtection       Type = "AppProtection"
	TypeSecurity            Type = "Security"
	TypeCompliance          Type = "Compliance"
)

// Status mirrors the Graph conditional-access state values. Compliance and
// configuration policies have no state field in the raw API and are treated
// as enabled once created; that is a display simplification, not a real
// compliance signal.
type Status string

const (
	StatusEnabled           Status = "enabled"
	StatusDisabled          Status = "disabled"
	StatusReportOnly        Status = "enabledForReportingButNotEnforced"
)

// Platform is the inferred OS scope of a device policy.
type Platform string

const (
	PlatformWindows       Platform = "Windows"
	PlatformIOS           Platform = "iOS"
	PlatformAndroid       Platform = "Android"
	PlatformMacOS         Platform = "macOS"
	PlatformCrossPlatform Platform = "Cross-platform"
	PlatformUnknown       Platform = "Unknown"
)

// Policy is the normalized view record shared by every policy table.
//
// Priority is nil when the policy type has no priority concept; a nil
// priority is distinct from every numeric value and sorting must keep it so.
type Policy struct {
	ID            string
	Name          string
	Type          Type
	Status        Status
	Priority      *int
	LastModified  time.Time
	CreatedBy     string
	AffectedUsers int
	Description   string
	Tags          []string
}

// ConfigurationPolicy is the richer record for device-configuration-style
// policies. It embeds Policy so it is presentable anywhere a generic policy
// table is used.
type ConfigurationPolicy struct {
	Policy

	Platform        Platform
	Technology      string
	SettingCount    int
	IsAssigned      bool
	PolicyTypeLabel string

	// Raw assignment and status sub-objects, passed through untouched.
	Assignments []map[string]interface{}
	Statuses    []map[string]interface{}
}

// Priority tiers inferred for conditional-access policies. These are a
// structural heuristic over the policy's scope, not a value the API returns.
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
)

func intPtr(n int) *int { return &n }
