package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// SecretSource names the backend secrets come from.
type SecretSource string

const (
	SourceEnvironment SecretSource = "environment"
	SourceVault       SecretSource = "vault"
	// SourceAuto uses the environment for local work and Key Vault everywhere else
	SourceAuto SecretSource = "auto"
)

// ErrSecretNotFound means the backend has no value under the requested name.
var ErrSecretNotFound = errors.New("secret not found")

// IsNotFound reports whether err wraps ErrSecretNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSecretNotFound)
}

type ProviderConfig struct {
	Source       SecretSource
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Provider fetches named secrets from a single backend.
type Provider struct {
	source SecretSource
	fetch  func(ctx context.Context, name string) (string, error)
	logger *zap.Logger
}

// ResolveSource maps SourceAuto onto a concrete backend for environment.
func ResolveSource(source SecretSource, environment string) SecretSource {
	if source != SourceAuto {
		return source
	}
	if isLocalEnvironment(environment) {
		return SourceEnvironment
	}
	return SourceVault
}

func isLocalEnvironment(environment string) bool {
	switch environment {
	case "", "development", "local", "test":
		return true
	}
	return false
}

func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := ResolveSource(cfg.Source, cfg.Environment)
	defer logger.Info("Secrets provider ready", zap.String("source", string(source)))

	switch source {
	case SourceEnvironment:
		return &Provider{source: source, fetch: fromEnvironment, logger: logger}, nil
	case SourceVault:
		if cfg.VaultName == "" {
			return nil, errors.New("vault name required when using vault secret source")
		}
		vault, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("vault client: %w", err)
		}
		return NewProviderWithVault(vault, logger), nil
	default:
		return nil, fmt.Errorf("unknown secret source %q", source)
	}
}

// NewProviderWithVault wraps an existing Key Vault client.
func NewProviderWithVault(vault *VaultClient, logger *zap.Logger) *Provider {
	return &Provider{source: SourceVault, fetch: vault.GetSecret, logger: logger}
}

func fromEnvironment(_ context.Context, name string) (string, error) {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%w: environment variable %s", ErrSecretNotFound, name)
}

// GetSecret returns the named secret. With the environment source the name is
// read as an environment variable.
func (p *Provider) GetSecret(ctx context.Context, name string) (string, error) {
	return p.fetch(ctx, name)
}

// GetSecretOrEnv lets a non-empty envName override the backend. A secret that
// exists in neither place resolves to "" without error.
func (p *Provider) GetSecretOrEnv(ctx context.Context, name, envName string) (string, error) {
	if override := os.Getenv(envName); override != "" {
		p.logger.Debug("Secret overridden from environment", zap.String("env", envName))
		return override, nil
	}
	value, err := p.fetch(ctx, name)
	switch {
	case IsNotFound(err):
		p.logger.Debug("Secret not configured", zap.String("secret", name))
		return "", nil
	case err != nil:
		return "", err
	}
	return value, nil
}

func (p *Provider) Source() SecretSource { return p.source }

func (p *Provider) IsVaultEnabled() bool { return p.source == SourceVault }
