// pkg/policies/normalize.go
//
// Mapping from raw Graph policy objects to normalized view records. All
// discriminator pattern tables live in this file so that a new @odata.type
// string is a one-place change. Unmatched discriminators land on explicit
// Unknown values rather than silently defaulting.

package policies

import (
	"strings"
	"time"
)

// NormalizeConditionalAccess maps a raw conditional-access policy.
func NormalizeConditionalAccess(raw map[string]interface{}) Policy {
	p := Policy{
		ID:           str(raw, "id"),
		Name:         str(raw, "displayName"),
		Type:         TypeConditionalAccess,
		Status:       conditionalAccessStatus(str(raw, "state")),
		Priority:     conditionalAccessPriority(raw),
		LastModified: timestamp(raw, "modifiedDateTime", "createdDateTime"),
		CreatedBy:    str(raw, "createdDateTime"),
		Description:  str(raw, "description"),
		Tags:         []string{"conditional-access", "security"},
	}
	if p.Description == "" {
		p.Description = p.Name
	}
	return p
}

// NormalizeDeviceCompliance maps a raw device-compliance policy.
func NormalizeDeviceCompliance(raw map[string]interface{}) Policy {
	p := Policy{
		ID:           str(raw, "id"),
		Name:         str(raw, "displayName"),
		Type:         TypeDeviceCompliance,
		Status:       StatusEnabled,
		Priority:     nil,
		LastModified: timestamp(raw, "lastModifiedDateTime", "createdDateTime"),
		CreatedBy:    str(raw, "createdDateTime"),
		Description:  str(raw, "description"),
		Tags:         []string{"device-compliance", "intune"},
	}
	if p.Description == "" {
		p.Description = p.Name
	}
	return p
}

// NormalizeAppProtection maps a raw app-protection (MAM) policy. The
// platform comes from the discriminator since the objects themselves carry
// no platform field.
func NormalizeAppProtection(raw map[string]interface{}) Policy {
	p := Policy{
		ID:           str(raw, "id"),
		Name:         str(raw, "displayName"),
		Type:         TypeAppProtection,
		Status:       StatusEnabled,
		Priority:     nil,
		LastModified: timestamp(raw, "lastModifiedDateTime", "createdDateTime"),
		CreatedBy:    str(raw, "createdDateTime"),
		Description:  str(raw, "description"),
		Tags:         []string{"app-protection", string(inferPlatform(raw))},
	}
	if p.Description == "" {
		p.Description = p.Name
	}
	return p
}

// NormalizeConfiguration maps a raw device-configuration, settings-catalog,
// or compliance object into the richer ConfigurationPolicy record using the
// discriminator heuristics.
func NormalizeConfiguration(raw map[string]interface{}) ConfigurationPolicy {
	name := str(raw, "displayName")
	if name == "" {
		// Settings-catalog objects carry "name" instead of "displayName".
		name = str(raw, "name")
	}

	cp := ConfigurationPolicy{
		Policy: Policy{
			ID:           str(raw, "id"),
			Name:         name,
			Type:         TypeDeviceConfiguration,
			Status:       StatusEnabled,
			Priority:     nil,
			LastModified: timestamp(raw, "lastModifiedDateTime", "createdDateTime"),
			CreatedBy:    str(raw, "createdDateTime"),
			Description:  str(raw, "description"),
			Tags:         []string{"device-configuration", "intune"},
		},
		Platform:        inferPlatform(raw),
		Technology:      str(raw, "technologies"),
		SettingCount:    number(raw, "settingCount"),
		IsAssigned:      boolean(raw, "isAssigned"),
		PolicyTypeLabel: inferTypeLabel(raw),
	}
	if cp.Technology == "" {
		cp.Technology = "mdm"
	}
	if cp.PolicyTypeLabel == "Compliance Policy" {
		cp.Type = TypeDeviceCompliance
	}
	return cp
}

// typeLabelPatterns maps @odata.type substrings onto human labels, first
// match wins. Order matters: compliance before the windows/platform entries
// so "windows10CompliancePolicy" classifies as compliance.
var typeLabelPatterns = []struct {
	substr string
	label  string
}{
	{"deviceManagementConfigurationPolicy", "Settings Catalog"},
	{"deviceManagementTemplate", "Security Baseline"},
	{"deviceManagementIntent", "Endpoint Security"},
	{"compliance", "Compliance Policy"},
	{"windows10Custom", "Windows Custom Configuration"},
	{"windows10General", "Administrative Templates"},
	{"windowsHealthMonitoring", "Windows Health Monitoring"},
	{"windows", "Windows Configuration"},
	{"ios", "iOS Configuration"},
	{"android", "Android Configuration"},
	{"macos", "macOS Configuration"},
	{"deviceConfiguration", "Device Configuration"},
}

// inferTypeLabel applies the priority-ordered heuristics of the console:
// explicit discriminator first, then structural field sniffing.
func inferTypeLabel(raw map[string]interface{}) string {
	if odata := str(raw, "@odata.type"); odata != "" {
		lowered := strings.ToLower(odata)
		for _, pat := range typeLabelPatterns {
			if strings.Contains(lowered, strings.ToLower(pat.substr)) {
				return pat.label
			}
		}
		// A discriminator we have never seen: make the gap visible.
		return "Unknown"
	}

	if _, ok := raw["settingCount"]; ok {
		return "Settings Catalog"
	}
	if _, ok := raw["scheduledActionsForRule"]; ok {
		return "Compliance Policy"
	}
	return "Configuration Policy"
}

var platformPatterns = []struct {
	substr   string
	platform Platform
}{
	{"windows", PlatformWindows},
	{"ios", PlatformIOS},
	{"android", PlatformAndroid},
	{"macos", PlatformMacOS},
}

func inferPlatform(raw map[string]interface{}) Platform {
	// Settings-catalog policies state their platforms outright.
	source := str(raw, "platforms")
	if source == "" {
		source = str(raw, "platformType")
	}
	if source == "" {
		source = str(raw, "@odata.type")
	}
	if source == "" {
		return PlatformUnknown
	}

	lowered := strings.ToLower(source)
	for _, pat := range platformPatterns {
		if strings.Contains(lowered, pat.substr) {
			return pat.platform
		}
	}
	if strings.Contains(lowered, "graph") {
		// A discriminator string that names no OS.
		return PlatformCrossPlatform
	}
	return PlatformUnknown
}

func conditionalAccessStatus(state string) Status {
	switch state {
	case "enabled":
		return StatusEnabled
	case "enabledForReportingButNotEnforced":
		return StatusReportOnly
	default:
		return StatusDisabled
	}
}

// conditionalAccessPriority derives an urgency tier from the policy's scope:
// all-application policies outrank all-user policies outrank the rest. A
// heuristic proxy, not an API value.
func conditionalAccessPriority(raw map[string]interface{}) *int {
	conditions, ok := raw["conditions"].(map[string]interface{})
	if !ok {
		return intPtr(PriorityMedium)
	}

	if scopeIncludesAll(conditions, "applications", "includeApplications") {
		return intPtr(PriorityCritical)
	}
	if scopeIncludesAll(conditions, "users", "includeUsers") {
		return intPtr(PriorityHigh)
	}
	return intPtr(PriorityMedium)
}

func scopeIncludesAll(conditions map[string]interface{}, scope, field string) bool {
	s, ok := conditions[scope].(map[string]interface{})
	if !ok {
		return false
	}
	values, ok := s[field].([]interface{})
	if !ok {
		return false
	}
	for _, v := range values {
		if v == "All" {
			return true
		}
	}
	return false
}

func str(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func number(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func boolean(m map[string]interface{}, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func timestamp(m map[string]interface{}, keys ...string) time.Time {
	for _, key := range keys {
		if s := str(m, key); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
