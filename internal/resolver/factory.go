package resolver

import (
	"fmt"

	"kakeibo/internal/config"
)

// BackendFactory creates a Backend from the resolver config.
type BackendFactory func(cfg *config.ResolverConfig) (Backend, error)

// registry of resolver backend factories.
var backends = map[string]BackendFactory{
	"httpapi": func(cfg *config.ResolverConfig) (Backend, error) { return NewHTTPBackend(cfg) },
	"ollama":  func(cfg *config.ResolverConfig) (Backend, error) { return NewOllamaBackend(cfg) },
}

// RegisterBackend registers a resolver backend factory by name.
func RegisterBackend(name string, factory BackendFactory) {
	backends[name] = factory
}

// NewFromConfig builds a Resolver for the configured backend. An empty or
// "stub" backend name yields the heuristic-only resolver.
func NewFromConfig(cfg *config.ResolverConfig) (*Resolver, error) {
	if cfg == nil || cfg.Backend == "" || cfg.Backend == "stub" {
		return New(nil), nil
	}
	factory, ok := backends[cfg.Backend]
	if !ok {
		return nil, fmt.Errorf("unknown resolver backend: %s", cfg.Backend)
	}
	backend, err := factory(cfg)
	if err != nil {
		return nil, err
	}
	return New(backend), nil
}
