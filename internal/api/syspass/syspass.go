package syspass

import (
	"github.com/vaultops/syspass-cli/internal/api"
	"github.com/vaultops/syspass-cli/internal/api/apierr"
	"github.com/vaultops/syspass-cli/internal/config"
	"github.com/vaultops/syspass-cli/internal/logging"
)

// New selects the adapter matching the configured API version and wires it
// to the shared transport. The choice is made once; there is no runtime
// switching between dialects.
func New(cfg *config.Config, usage UsageSource, prompt SecretPrompt, log logging.Logger) (api.Client, error) {
	version, err := api.ParseVersion(cfg.APIVersion)
	if err != nil {
		return nil, err
	}

	secrets := NewSecretCache(cfg.Password, prompt)
	tr := newTransport(cfg, secrets, log)

	switch version {
	case api.VersionV2:
		return &clientV2{tr: tr, usage: usage, log: log}, nil
	default:
		return &clientV3{tr: tr, usage: usage, log: log}, nil
	}
}

var _ UsageSource = noUsage{}

// noUsage is the UsageSource used when ranking is disabled entirely.
type noUsage struct{}

func (noUsage) Counts() map[int]int { return nil }

// NoUsage returns a UsageSource that never ranks.
func NoUsage() UsageSource { return noUsage{} }

// errUnsupported builds the local rejection error for operations the given
// dialect cannot perform. The message deliberately reads
// "<version> does not support this" so callers can match the substring.
func errUnsupported(version api.Version) error {
	return &unsupportedError{version: version}
}

type unsupportedError struct {
	version api.Version
}

func (e *unsupportedError) Error() string {
	return string(e.version) + " " + apierr.ErrUnsupported.Error()
}

func (e *unsupportedError) Unwrap() error { return apierr.ErrUnsupported }
