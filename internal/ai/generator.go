package ai

import (
	"context"
	"fmt"
	"sync"

	"github.com/ardelio/heart-risk-api/internal/domain"
)

// Generator defines the interface for AI risk generators
type Generator interface {
	// Name returns the provider identifier
	Name() string

	// IsConfigured checks if the provider has valid credentials
	IsConfigured() bool

	// GenerateRiskSummary produces a risk score and summary for the
	// given health metrics
	GenerateRiskSummary(ctx context.Context, metrics domain.HealthMetrics) (*domain.RiskResult, error)
}

// Router manages generator providers and routing
type Router struct {
	providers       map[string]Generator
	defaultProvider string
	mu              sync.RWMutex
}

// NewRouter creates a new generator router
func NewRouter(defaultProvider string) *Router {
	return &Router{
		providers:       make(map[string]Generator),
		defaultProvider: defaultProvider,
	}
}

// RegisterProvider registers a generator provider
func (r *Router) RegisterProvider(provider Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.Name()] = provider
}

// DefaultProvider returns the configured default provider name
func (r *Router) DefaultProvider() string {
	return r.defaultProvider
}

// Get returns the named provider, or the default when name is empty
func (r *Router) Get(name string) (Generator, error) {
	if name == "" {
		name = r.defaultProvider
	}

	r.mu.RLock()
	provider, ok := r.providers[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("provider not found: %s", name)
	}
	if !provider.IsConfigured() {
		return nil, fmt.Errorf("provider not configured: %s", name)
	}
	return provider, nil
}

// GenerateRiskSummary dispatches to the default provider, satisfying
// the Generator interface so the router can stand in for a single provider
func (r *Router) GenerateRiskSummary(ctx context.Context, metrics domain.HealthMetrics) (*domain.RiskResult, error) {
	provider, err := r.Get("")
	if err != nil {
		return nil, err
	}
	return provider.GenerateRiskSummary(ctx, metrics)
}

// Name returns the router's default provider name
func (r *Router) Name() string {
	return r.defaultProvider
}

// IsConfigured reports whether the default provider is usable
func (r *Router) IsConfigured() bool {
	_, err := r.Get("")
	return err == nil
}
