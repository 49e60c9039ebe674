package memory

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/optimus-erp/procure-api/internal/domain/auth"
)

var _ auth.Repository = (*APIKeyRepository)(nil)

// APIKeyRepository stores API keys in a map indexed by key hash.
type APIKeyRepository struct {
	mu     sync.RWMutex
	byHash map[string]*auth.APIKeyInfo
	nextID int64
}

// NewAPIKeyRepository returns an empty in-memory API key repository.
func NewAPIKeyRepository() *APIKeyRepository {
	return &APIKeyRepository{
		byHash: make(map[string]*auth.APIKeyInfo),
		nextID: 1,
	}
}

// Add registers an API key under its hash and assigns it an ID.
func (r *APIKeyRepository) Add(hash, name string, scopes []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byHash[hash] = &auth.APIKeyInfo{
		ID:      r.nextID,
		KeyHash: hash,
		Name:    name,
		Scopes:  scopes,
	}
	r.nextID++
}

// FindByHash looks up an API key by its HMAC-SHA256 hash.
func (r *APIKeyRepository) FindByHash(_ context.Context, hash string) (*auth.APIKeyInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.byHash[hash]
	if !ok {
		return nil, errors.New("api key not found")
	}
	return info, nil
}
