// Package credentials supplies the doc-layer token through an injected
// provider, so the reconciliation core never reads process-wide state.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/conn-castle/doc-layer/internal/messages"
)

// EnvToken is the environment variable holding the doc-layer token.
const EnvToken = "DOC_LAYER_TOKEN"

// Placeholder is the deferred-expansion reference persisted into the host
// config. The host resolves it at runtime; the literal token value is never
// written to disk.
const Placeholder = "{env:" + EnvToken + "}"

// Provider supplies the doc-layer credential.
type Provider interface {
	Token() (string, error)
}

// EnvProvider resolves the token from the process environment layered over
// an optional .env file in the repository root. Process environment wins.
type EnvProvider struct {
	lookup func(string) (string, bool)
	dotenv map[string]string
}

// NewEnvProvider builds an EnvProvider for the given repository root.
// A missing .env file is not an error.
func NewEnvProvider(root string) *EnvProvider {
	dotenv, err := godotenv.Read(filepath.Join(root, ".env"))
	if err != nil {
		dotenv = nil
	}
	return &EnvProvider{lookup: os.LookupEnv, dotenv: dotenv}
}

// NewStaticProvider returns a provider backed by a fixed map, for tests and
// injection.
func NewStaticProvider(vars map[string]string) *EnvProvider {
	return &EnvProvider{
		lookup: func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		},
	}
}

// Token returns the doc-layer token or an input error when it is unset.
func (p *EnvProvider) Token() (string, error) {
	if v, ok := p.lookup(EnvToken); ok && v != "" {
		return v, nil
	}
	if v, ok := p.dotenv[EnvToken]; ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf(messages.CredentialsMissingTokenFmt, EnvToken)
}
