package assistant

import (
	"context"
	"sync"
)

// Registry guarantees a single remote assistant resource per process.
// The first GetOrCreate call creates it; every later call returns the cached
// id without a network round trip. There is no invalidation path, a config
// change requires a restart.
type Registry struct {
	client ResourceClient
	cfg    Config

	mu sync.Mutex
	id string
}

func NewRegistry(client ResourceClient, cfg Config) *Registry {
	return &Registry{
		client: client,
		cfg:    cfg,
	}
}

func (r *Registry) GetOrCreate(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.id != "" {
		return r.id, nil
	}

	id, err := r.client.CreateAssistant(ctx, r.cfg)
	if err != nil {
		return "", err
	}
	r.id = id
	return id, nil
}
