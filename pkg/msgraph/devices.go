// pkg/msgraph/devices.go

package msgraph

import (
	"context"
	"encoding/json"
	"time"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
)

// DirectoryDevice is the slim directory device record used for statistics.
type DirectoryDevice struct {
	ID             string     `json:"id"`
	AccountEnabled bool       `json:"accountEnabled"`
	LastSignIn     *time.Time `json:"approximateLastSignInDateTime,omitempty"`
}

// ManagedDevice is the Intune-managed device record.
type ManagedDevice struct {
	ID                string     `json:"id"`
	DeviceName        string     `json:"deviceName"`
	OperatingSystem   string     `json:"operatingSystem"`
	OSVersion         string     `json:"osVersion"`
	ComplianceState   string     `json:"complianceState"`
	UserPrincipalName string     `json:"userPrincipalName"`
	EnrolledDateTime  *time.Time `json:"enrolledDateTime,omitempty"`
	LastSyncDateTime  *time.Time `json:"lastSyncDateTime,omitempty"`
}

// DeviceAction is a remote action Intune can push to a managed device.
type DeviceAction string

const (
	DeviceActionSync   DeviceAction = "syncDevice"
	DeviceActionLock   DeviceAction = "remoteLock"
	DeviceActionWipe   DeviceAction = "wipe"
	DeviceActionRetire DeviceAction = "retire"
)

// Devices lists directory devices for organization statistics.
func (c *Client) Devices(ctx context.Context, top int) ([]DirectoryDevice, error) {
	raw, err := c.GetList(ctx, "/devices", ListOptions{
		Select: []string{"id", "accountEnabled", "approximateLastSignInDateTime"},
		Top:    top,
	})
	if err != nil {
		return nil, err
	}

	devices := make([]DirectoryDevice, 0, len(raw))
	for _, m := range raw {
		data, err := json.Marshal(m)
		if err != nil {
			continue
		}
		var d DirectoryDevice
		if err := json.Unmarshal(data, &d); err != nil {
			continue
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// ManagedDevices lists Intune-enrolled devices.
func (c *Client) ManagedDevices(ctx context.Context, top int) ([]ManagedDevice, error) {
	raw, err := c.GetList(ctx, "/deviceManagement/managedDevices", ListOptions{Top: top})
	if err != nil {
		return nil, err
	}

	devices := make([]ManagedDevice, 0, len(raw))
	for _, m := range raw {
		data, err := json.Marshal(m)
		if err != nil {
			continue
		}
		var d ManagedDevice
		if err := json.Unmarshal(data, &d); err != nil {
			continue
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// ManagedDeviceByID reads one Intune-enrolled device.
func (c *Client) ManagedDeviceByID(ctx context.Context, id string) (*ManagedDevice, error) {
	if id == "" {
		return nil, metis_err.NewValidationError("device id is required")
	}
	var d ManagedDevice
	if err := c.GetObject(ctx, "/deviceManagement/managedDevices/"+id, ListOptions{}, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// InvokeDeviceAction pushes a remote action to one managed device. Wipe and
// retire are destructive; command handlers confirm before calling this.
func (c *Client) InvokeDeviceAction(ctx context.Context, deviceID string, action DeviceAction) error {
	switch action {
	case DeviceActionSync, DeviceActionLock, DeviceActionWipe, DeviceActionRetire:
	default:
		return metis_err.NewValidationError("unsupported device action %q", action)
	}
	if deviceID == "" {
		return metis_err.NewValidationError("device id is required")
	}

	_, err := c.Post(ctx, "/deviceManagement/managedDevices/"+deviceID+"/"+string(action), map[string]interface{}{})
	return err
}

// MobileApps lists the tenant's Intune application inventory.
func (c *Client) MobileApps(ctx context.Context, top int) ([]map[string]interface{}, error) {
	return c.GetList(ctx, "/deviceAppManagement/mobileApps", ListOptions{Top: top})
}
