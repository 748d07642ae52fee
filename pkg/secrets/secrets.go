// pkg/secrets/secrets.go
//
// Resolution order for the Graph client secret: explicit config value,
// METIS_CLIENT_SECRET env var, Vault KV (secret/data/metis/graph), then a
// local secrets file. Vault unavailability degrades, it does not abort.

package secrets

import (
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_io"
	cerr "github.com/cockroachdb/errors"
	vaultapi "github.com/hashicorp/vault/api"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	vaultSecretPath = "secret/data/metis/graph"
	vaultSecretKey  = "client_secret"

	localSecretFile = "/var/lib/metis/secrets/graph.client_secret"
)

// ClientSecret resolves the Azure AD application secret.
func ClientSecret(rc *metis_io.RuntimeContext, configured string) (string, error) {
	logger := otelzap.Ctx(rc.Ctx)

	if configured != "" {
		return configured, nil
	}

	if s := os.Getenv("METIS_CLIENT_SECRET"); s != "" {
		return s, nil
	}

	if s, err := fromVault(rc); err == nil && s != "" {
		return s, nil
	} else if err != nil {
		logger.Warn("Vault unavailable, checking local secret file", zap.Error(err))
	}

	if data, err := os.ReadFile(localSecretFile); err == nil {
		return strings.TrimSpace(string(data)), nil
	}

	return "", cerr.New("no Graph client secret found: set client_secret, METIS_CLIENT_SECRET, Vault secret/metis/graph, or " + localSecretFile)
}

func fromVault(rc *metis_io.RuntimeContext) (string, error) {
	if os.Getenv("VAULT_ADDR") == "" {
		return "", cerr.New("VAULT_ADDR not set")
	}

	client, err := vaultapi.NewClient(vaultapi.DefaultConfig())
	if err != nil {
		return "", cerr.Wrap(err, "creating vault client")
	}

	secret, err := client.Logical().ReadWithContext(rc.Ctx, vaultSecretPath)
	if err != nil {
		return "", cerr.Wrap(err, "reading vault secret")
	}
	if secret == nil || secret.Data == nil {
		return "", cerr.Newf("vault secret %s not found", vaultSecretPath)
	}

	// KV v2 nests the payload under "data".
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		data = secret.Data
	}
	if s, ok := data[vaultSecretKey].(string); ok && s != "" {
		return s, nil
	}
	return "", cerr.Newf("vault secret %s has no %s key", vaultSecretPath, vaultSecretKey)
}
