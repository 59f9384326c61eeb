package session

import (
	"context"
	"errors"

	"github.com/mmynk/tabby/internal/models"
	"github.com/mmynk/tabby/internal/storage"
)

// Resolver maps a presented credential to a participant identity.
// This is the only capability the core needs from the access layer.
type Resolver interface {
	// ResolveParticipant returns the participant for a credential, or
	// ErrInvalidToken if the credential identifies no one.
	ResolveParticipant(ctx context.Context, credential string) (*models.Participant, error)
}

// StoreResolver resolves credentials against the ledger store. A credential
// is either a signed session token (checked first, no store read for the
// claims) or a raw opaque access token looked up directly.
type StoreResolver struct {
	store   storage.Store
	manager *Manager
}

// NewStoreResolver creates a resolver backed by the given store and session
// manager.
func NewStoreResolver(store storage.Store, manager *Manager) *StoreResolver {
	return &StoreResolver{store: store, manager: manager}
}

// ResolveParticipant implements Resolver.
func (r *StoreResolver) ResolveParticipant(ctx context.Context, credential string) (*models.Participant, error) {
	if credential == "" {
		return nil, ErrMissingToken
	}

	if claims, err := r.manager.Validate(credential); err == nil {
		p, err := r.store.GetParticipant(ctx, claims.ParticipantID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrInvalidToken
			}
			return nil, err
		}
		return p, nil
	}

	p, err := r.store.GetParticipantByToken(ctx, credential)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return p, nil
}
