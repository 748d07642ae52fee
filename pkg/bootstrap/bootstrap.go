// pkg/bootstrap/bootstrap.go
//
// Assembles the pieces every tenant-facing command needs: configuration,
// client secret, token source, Graph client, backup store.

package bootstrap

import (
	"github.com/CodeMonkeyCybersecurity/metis/pkg/backup"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/config"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/dashboard"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/msgraph"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/secrets"
)

// Session is one authenticated connection to a tenant.
type Session struct {
	Cfg    *config.Config
	Tokens msgraph.TokenSource
	Graph  *msgraph.Client
}

// Connect loads configuration, resolves the client secret, and builds the
// Graph client. No network call happens here; the first token is minted
// lazily on the first request.
func Connect(rc *metis_io.RuntimeContext) (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	secret, err := secrets.ClientSecret(rc, cfg.ClientSecret)
	if err != nil {
		return nil, err
	}

	tokens := &msgraph.ClientCredentialsSource{
		TenantID:     cfg.TenantID,
		ClientID:     cfg.ClientID,
		ClientSecret: secret,
	}

	return &Session{
		Cfg:    cfg,
		Tokens: tokens,
		Graph:  msgraph.New(msgraph.Config{BaseURL: cfg.GraphBaseURL, Tokens: tokens}),
	}, nil
}

// Engine builds the backup/restore engine over the configured store.
func (s *Session) Engine() (*backup.Engine, error) {
	store, err := backup.NewStoreFromConfig(s.Cfg)
	if err != nil {
		return nil, err
	}
	return backup.NewEngine(s.Graph, store, s.Cfg.TenantID, s.Cfg.ClientID), nil
}

// Fetcher builds the snapshot aggregator.
func (s *Session) Fetcher() *dashboard.Fetcher {
	return &dashboard.Fetcher{Graph: s.Graph, Tokens: s.Tokens}
}
