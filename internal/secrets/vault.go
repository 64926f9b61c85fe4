package secrets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"go.uber.org/zap"
)

const defaultVaultCacheTTL = 5 * time.Minute

// secretGetter is the part of *azsecrets.Client the vault client calls.
type secretGetter interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

type VaultConfig struct {
	VaultName    string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// VaultClient reads the latest version of Key Vault secrets. With caching
// enabled each value is reused until the TTL elapses.
type VaultClient struct {
	client secretGetter
	cache  *ttlCache
	logger *zap.Logger
}

// NewVaultClient authenticates through the default Azure credential chain.
func NewVaultClient(cfg *VaultConfig, logger *zap.Logger) (*VaultClient, error) {
	if cfg.VaultName == "" {
		return nil, errors.New("vault name is required")
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}
	endpoint := "https://" + cfg.VaultName + ".vault.azure.net/"
	client, err := azsecrets.NewClient(endpoint, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("key vault client for %s: %w", endpoint, err)
	}
	logger.Info("Key Vault client ready", zap.String("vault", cfg.VaultName), zap.Bool("cache", cfg.CacheEnabled))
	return newVaultClient(client, cfg, logger), nil
}

func newVaultClient(client secretGetter, cfg *VaultConfig, logger *zap.Logger) *VaultClient {
	vc := &VaultClient{client: client, logger: logger}
	if cfg.CacheEnabled {
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = defaultVaultCacheTTL
		}
		vc.cache = newTTLCache(ttl)
	}
	return vc
}

func (v *VaultClient) GetSecret(ctx context.Context, name string) (string, error) {
	if v.cache != nil {
		if value, ok := v.cache.get(name); ok {
			return value, nil
		}
	}

	resp, err := v.client.GetSecret(ctx, name, "", nil)
	var respErr *azcore.ResponseError
	switch {
	case errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, name)
	case err != nil:
		v.logger.Error("Key Vault lookup failed", zap.String("secret", name), zap.Error(err))
		return "", fmt.Errorf("get secret %s: %w", name, err)
	case resp.Value == nil:
		return "", fmt.Errorf("%w: %s has no value", ErrSecretNotFound, name)
	}

	if v.cache != nil {
		v.cache.put(name, *resp.Value)
	}
	return *resp.Value, nil
}

// ClearCache forgets every cached value.
func (v *VaultClient) ClearCache() {
	if v.cache != nil {
		v.cache.reset()
	}
}
