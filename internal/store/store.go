package store

import (
	"context"
	"errors"
	"log"
	"time"
)

// PromptKey is the single slot the current prompt lives under.
const PromptKey = "currentPrompt"

// opTimeout bounds one backend call made through PromptStore.
const opTimeout = 5 * time.Second

// ErrNotFound is returned by a Backend when the key has no value.
var ErrNotFound = errors.New("not found")

// Backend is durable string storage addressed by key. Delete of a missing key
// is not an error.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// PromptStore holds at most one prompt. Backend failures are logged and
// absorbed: Save and Clear become no-ops and Load reports the slot as empty.
type PromptStore struct {
	backend Backend
	key     string
}

// NewPromptStore wraps backend with the single-slot prompt contract.
func NewPromptStore(backend Backend) *PromptStore {
	return &PromptStore{backend: backend, key: PromptKey}
}

// Save overwrites the slot.
func (s *PromptStore) Save(prompt string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.backend.Put(ctx, s.key, prompt); err != nil {
		log.Printf("store: save prompt: %v", err)
	}
}

// Load returns the slot content, or false when it is empty or unreadable.
func (s *PromptStore) Load() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	prompt, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return "", false
	}
	if err != nil {
		log.Printf("store: load prompt: %v", err)
		return "", false
	}
	if prompt == "" {
		return "", false
	}
	return prompt, true
}

// Clear empties the slot. Clearing an empty slot is a no-op.
func (s *PromptStore) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.backend.Delete(ctx, s.key); err != nil {
		log.Printf("store: clear prompt: %v", err)
	}
}
