package gateway

import (
	"go.uber.org/zap"

	"github.com/emesal/ratatoskr/pkg/provider"
	"github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/registry"
	"github.com/emesal/ratatoskr/pkg/router"
)

// Builder assembles a Gateway from opted-in providers (§4.8). Registering
// any provider implicitly populates the capability router for every
// capability that provider advertises, using first-registered-wins
// ordering (spec §4.3, mirroring router.Register).
type Builder struct {
	providers map[string]provider.Provider
	router    *router.Router
	registry  *registry.Registry
	logger    *zap.Logger
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		providers: make(map[string]provider.Provider),
		router:    router.New(),
	}
}

// WithProvider registers p under name, wiring it into the router for every
// capability it advertises. Registering a second provider under a name
// already used replaces it; reuse WithProvider to add providers that serve
// disjoint capabilities (e.g. Anthropic for chat, HuggingFace for embed).
func (b *Builder) WithProvider(name string, p provider.Provider) *Builder {
	b.providers[name] = p
	for _, cap := range p.Capabilities().List() {
		b.router.Register(cap, p)
	}
	return b
}

// WithRegistry attaches a model/preset registry for registry:TIER/CAPABILITY
// preset resolution (§4.5, §4.6). Without one, preset references fail with
// InvalidInput.
func (b *Builder) WithRegistry(r *registry.Registry) *Builder {
	b.registry = r
	return b
}

// WithLogger attaches a structured logger. Without one, Build defaults to
// zap.NewNop() so the gateway is always safe to log through.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// Build validates the accumulated configuration and returns the assembled
// Gateway. At least one provider must be configured (§4.8: NoProvider).
func (b *Builder) Build() (*Gateway, error) {
	if len(b.providers) == 0 {
		return nil, errors.ErrNoProvider
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gateway{
		providers: b.providers,
		router:    b.router,
		registry:  b.registry,
		logger:    logger,
	}, nil
}
