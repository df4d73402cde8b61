package provider

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kararlabs/meetmind/internal/scrub"
	"github.com/kararlabs/meetmind/internal/telemetry"
)

// Config holds per-provider connection settings.
type Config struct {
	Model   string `koanf:"model"`
	BaseURL string `koanf:"base_url"`
	Timeout int    `koanf:"timeout"` // seconds
}

func (c Config) model(def string) string {
	if c.Model != "" {
		return c.Model
	}
	return def
}

func (c Config) baseURL(def string) string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return def
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return time.Duration(c.Timeout) * time.Second
	}
	return defaultTimeout
}

// envVarFor maps a provider kind to its base credential slot.
func envVarFor(kind Kind) string {
	switch kind {
	case KindGemini:
		return "GEMINI_API_KEY"
	case KindOpenAI:
		return "OPENAI_API_KEY"
	case KindAnthropic:
		return "ANTHROPIC_API_KEY"
	}
	return ""
}

// Options configures the registry.
type Options struct {
	// Configs holds per-kind connection settings; missing kinds use
	// defaults.
	Configs map[Kind]Config

	// Pools overrides credential pools; missing kinds are scanned from
	// the environment.
	Pools map[Kind]*Pool

	Scrubber *scrub.Scrubber
	Logger   *zap.Logger
	Metrics  *telemetry.Metrics
}

// Registry builds and caches one client per provider kind. Clients are
// created lazily and live for the process lifetime.
type Registry struct {
	mu      sync.Mutex
	opts    Options
	clients map[Kind]Client
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:    opts,
		clients: make(map[Kind]Client),
	}
}

// Get returns the cached client for kind, building it on first use.
func (r *Registry) Get(kind Kind) Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[kind]; ok {
		return c
	}

	cfg := r.opts.Configs[kind]
	pool := r.opts.Pools[kind]
	if pool == nil {
		pool = PoolFromEnv(envVarFor(kind))
	}

	var b backend
	var displayName string
	switch kind {
	case KindGemini:
		b = newGeminiBackend(cfg)
		displayName = "Google Gemini"
	case KindOpenAI:
		b = newOpenAIBackend(cfg)
		displayName = "OpenAI"
	case KindAnthropic:
		b = newAnthropicBackend(cfg)
		displayName = "Anthropic Claude"
	}

	c := newClient(kind, displayName, pool, b, r.opts.Scrubber, r.opts.Logger, r.opts.Metrics)
	r.clients[kind] = c
	return c
}

// All returns every supported client in fixed priority order.
func (r *Registry) All() []Client {
	out := make([]Client, 0, len(PriorityOrder))
	for _, kind := range PriorityOrder {
		out = append(out, r.Get(kind))
	}
	return out
}

// Descriptors returns provider descriptors in fixed priority order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(PriorityOrder))
	for _, kind := range PriorityOrder {
		out = append(out, r.Get(kind).Descriptor())
	}
	return out
}
