// pkg/dashboard/types.go

package dashboard

import (
	"time"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/msgraph"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/policies"
)

// UserAccount is the console's user row.
type UserAccount struct {
	ID         string
	Name       string
	Email      string
	Role       string
	Status     string
	LastLogin  time.Time
	Department string
}

// Activity is one audit-log row.
type Activity struct {
	ID          string
	Type        string
	Description string
	Timestamp   time.Time
	User        string
	Severity    string
}

// Recommendation is a security recommendation row.
type Recommendation struct {
	ID                 string
	Title              string
	Impact             string
	Status             string
	ImplementationCost string
	ActionType         string
}

// Statistics summarizes the tenant for the dashboard header.
type Statistics struct {
	TotalUsers     int
	ActiveUsers    int
	ActiveDevices  int
	UserGrowthRate float64
	Organization   *msgraph.Organization
}

// Snapshot is the merged view model one fetch produces. Failed domains are
// empty slices or nil pointers; callers needing per-domain error detail
// inspect emptiness.
type Snapshot struct {
	Users           []UserAccount
	Policies        []policies.Policy
	Activities      []Activity
	SecurityAlerts  []map[string]interface{}
	Organization    *msgraph.Organization
	Statistics      *Statistics
	SecureScores    []map[string]interface{}
	PolicyTrends    []msgraph.DirectoryAudit
	Recommendations []Recommendation
	FetchedAt       time.Time
}
