// pkg/dashboard/snapshot.go
//
// Fan-out/fan-in aggregation over the Graph client. Every domain fetch is
// isolated: one failing endpoint (missing permission, unsupported license,
// transient network error) never taints the others. The only error this
// layer returns is an orchestration failure, which in practice means the
// token could not be obtained at all.

package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/msgraph"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/policies"
	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// GraphSource is the slice of the Graph client the aggregator consumes.
type GraphSource interface {
	Users(ctx context.Context, top int) ([]msgraph.User, error)
	RawConditionalAccessPolicies(ctx context.Context) ([]map[string]interface{}, error)
	RawDeviceCompliancePolicies(ctx context.Context) ([]map[string]interface{}, error)
	DirectoryAudits(ctx context.Context, top int) ([]msgraph.DirectoryAudit, error)
	SecurityAlerts(ctx context.Context, top int) ([]map[string]interface{}, error)
	OrganizationInfo(ctx context.Context) (*msgraph.Organization, error)
	Devices(ctx context.Context, top int) ([]msgraph.DirectoryDevice, error)
	SecureScores(ctx context.Context, top int) ([]map[string]interface{}, error)
	PolicyTrends(ctx context.Context, days int) ([]msgraph.DirectoryAudit, error)
	SecureScoreControlProfiles(ctx context.Context, top int) ([]map[string]interface{}, error)
}

// Fetcher aggregates one tenant's console data.
type Fetcher struct {
	Graph GraphSource

	// Tokens is preflighted before the fan-out; a source that cannot mint a
	// token at all aborts the whole fetch. Nil skips the preflight.
	Tokens msgraph.TokenSource
}

const (
	usersTop      = 500
	auditTop      = 200
	alertsTop     = 100
	scoresTop     = 30
	recsTop       = 20
	trendsDays    = 180
	statsUsersTop = 999
	statsDevsTop  = 500
)

// Snapshot fans out the ten domain fetches, waits for all to settle, and
// merges whatever succeeded. A refresh is simply another call.
func (f *Fetcher) Snapshot(rc *metis_io.RuntimeContext) (*Snapshot, error) {
	logger := otelzap.Ctx(rc.Ctx)

	if f.Tokens != nil {
		if _, err := f.Tokens.Token(rc.Ctx); err != nil {
			return nil, metis_err.NewOrchestrationError(err, "sign-in failed: no tenant data can be fetched")
		}
	}

	snap := &Snapshot{FetchedAt: time.Now()}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		domains *multierror.Error

		rawUsers []msgraph.User
		rawCA    []map[string]interface{}
		rawDC    []map[string]interface{}
		audits   []msgraph.DirectoryAudit
		recs     []map[string]interface{}
	)

	settle := func(domain string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				domains = multierror.Append(domains, err)
				mu.Unlock()
				logger.Warn("Domain fetch failed, continuing without it",
					zap.String("domain", domain), zap.Error(err))
			}
		}()
	}

	settle("users", func() error {
		us, err := f.Graph.Users(rc.Ctx, usersTop)
		if err != nil {
			return err
		}
		rawUsers = us
		return nil
	})
	settle("conditionalAccess", func() error {
		ps, err := f.Graph.RawConditionalAccessPolicies(rc.Ctx)
		if err != nil {
			return err
		}
		rawCA = ps
		return nil
	})
	settle("deviceCompliance", func() error {
		ps, err := f.Graph.RawDeviceCompliancePolicies(rc.Ctx)
		if err != nil {
			return err
		}
		rawDC = ps
		return nil
	})
	settle("auditLogs", func() error {
		as, err := f.Graph.DirectoryAudits(rc.Ctx, auditTop)
		if err != nil {
			return err
		}
		audits = as
		return nil
	})
	settle("securityAlerts", func() error {
		alerts, err := f.Graph.SecurityAlerts(rc.Ctx, alertsTop)
		if err != nil {
			return err
		}
		snap.SecurityAlerts = alerts
		return nil
	})
	settle("organization", func() error {
		org, err := f.Graph.OrganizationInfo(rc.Ctx)
		if err != nil {
			return err
		}
		snap.Organization = org
		return nil
	})
	settle("statistics", func() error {
		snap.Statistics = f.statistics(rc.Ctx)
		return nil
	})
	settle("secureScores", func() error {
		scores, err := f.Graph.SecureScores(rc.Ctx, scoresTop)
		if err != nil {
			return err
		}
		snap.SecureScores = scores
		return nil
	})
	settle("policyTrends", func() error {
		trends, err := f.Graph.PolicyTrends(rc.Ctx, trendsDays)
		if err != nil {
			return err
		}
		snap.PolicyTrends = trends
		return nil
	})
	settle("recommendations", func() error {
		profiles, err := f.Graph.SecureScoreControlProfiles(rc.Ctx, recsTop)
		if err != nil {
			return err
		}
		recs = profiles
		return nil
	})

	wg.Wait()

	if err := domains.ErrorOrNil(); err != nil {
		logger.Info("Snapshot assembled with partial data",
			zap.Int("failed_domains", len(domains.Errors)))
	}

	snap.Users = mapUsers(rawUsers)

	// Conditional-access first, then device-compliance; fetch order is the
	// display order, no dedup or cross-domain sorting here.
	snap.Policies = make([]policies.Policy, 0, len(rawCA)+len(rawDC))
	for _, raw := range rawCA {
		snap.Policies = append(snap.Policies, policies.NormalizeConditionalAccess(raw))
	}
	for _, raw := range rawDC {
		snap.Policies = append(snap.Policies, policies.NormalizeDeviceCompliance(raw))
	}

	snap.Activities = mapActivities(audits)
	snap.Recommendations = mapRecommendations(recs)

	return snap, nil
}

// statistics runs its own settled sub-fetches; a failed sub-fetch leaves its
// contribution at zero rather than failing the domain.
func (f *Fetcher) statistics(ctx context.Context) *Statistics {
	var (
		wg      sync.WaitGroup
		users   []msgraph.User
		devices []msgraph.DirectoryDevice
		org     *msgraph.Organization
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		users, _ = f.Graph.Users(ctx, statsUsersTop)
	}()
	go func() {
		defer wg.Done()
		devices, _ = f.Graph.Devices(ctx, statsDevsTop)
	}()
	go func() {
		defer wg.Done()
		org, _ = f.Graph.OrganizationInfo(ctx)
	}()
	wg.Wait()

	stats := &Statistics{
		TotalUsers:     len(users),
		UserGrowthRate: growthRate(users, time.Now()),
		Organization:   org,
	}
	for _, u := range users {
		if u.AccountEnabled {
			stats.ActiveUsers++
		}
	}
	for _, d := range devices {
		if d.AccountEnabled {
			stats.ActiveDevices++
		}
	}
	return stats
}

// growthRate is the share of users created in the trailing 30 days.
func growthRate(users []msgraph.User, now time.Time) float64 {
	if len(users) == 0 {
		return 0
	}
	cutoff := now.AddDate(0, 0, -30)
	recent := 0
	for _, u := range users {
		if u.CreatedDateTime != nil && u.CreatedDateTime.After(cutoff) {
			recent++
		}
	}
	return float64(recent) / float64(len(users)) * 100
}
