package llm

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Supported provider names.
const (
	ProviderGroq       = "groq"
	ProviderOpenRouter = "openrouter"
)

// Credentials maps a provider name to its API key.
type Credentials map[string]string

// Options configures the providers built by a Factory.
type Options struct {
	// BaseURLs overrides the API base URL per provider name.
	BaseURLs map[string]string
	// HTTPClient is shared by every provider; nil uses a default client.
	HTTPClient *http.Client
	Logger     *zap.Logger
	// RequestsPerMinute enables client-side rate limiting when positive.
	RequestsPerMinute int
}

type constructor func(apiKey string, opts Options) Provider

// registry is the closed set of providers. Adding a provider means adding
// one implementation and one entry here.
var registry = map[string]constructor{
	ProviderGroq: func(apiKey string, opts Options) Provider {
		return NewGroqProvider(apiKey, opts.BaseURLs[ProviderGroq], opts.HTTPClient, opts.Logger)
	},
	ProviderOpenRouter: func(apiKey string, opts Options) Provider {
		return NewOpenRouterProvider(apiKey, opts.BaseURLs[ProviderOpenRouter], opts.HTTPClient, opts.Logger)
	},
}

// Supported returns the registered provider names, sorted.
func Supported() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether name is a registered provider.
func IsSupported(name string) bool {
	_, ok := registry[name]
	return ok
}

// Factory builds providers from credentials resolved once at startup.
type Factory struct {
	creds Credentials
	opts  Options
}

// NewFactory creates a Factory. The credentials map is not copied.
func NewFactory(creds Credentials, opts Options) *Factory {
	return &Factory{creds: creds, opts: opts}
}

// Provider returns the provider registered under name. It never touches the
// network: unknown names fail with ErrUnsupportedProvider and a missing key
// with ErrMissingCredential.
func (f *Factory) Provider(name string) (Provider, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q: please choose one of %s", ErrUnsupportedProvider, name, strings.Join(Supported(), ", "))
	}

	apiKey := f.creds[name]
	if apiKey == "" {
		return nil, fmt.Errorf("%w for provider %q", ErrMissingCredential, name)
	}

	p := build(apiKey, f.opts)
	if f.opts.RequestsPerMinute > 0 {
		p = NewRateLimitedProvider(p, f.opts.RequestsPerMinute)
	}
	return p, nil
}
