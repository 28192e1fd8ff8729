package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// VerificationStoreAdapter keeps signed verifications that have not been
// submitted yet in a JSON file, keyed by the address they verify
type VerificationStoreAdapter struct {
	path string
	mu   sync.Mutex
}

// NewVerificationStoreAdapter creates a new VerificationStoreAdapter
func NewVerificationStoreAdapter(cfg *config.RuntimeConfig) *VerificationStoreAdapter {
	return &VerificationStoreAdapter{
		path: filepath.Join(cfg.DataDir, "pending-verifications.json"),
	}
}

// List returns every stored verification.
func (s *VerificationStoreAdapter) List(ctx context.Context) ([]models.PendingVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.PendingVerification, 0, len(entries))
	for _, v := range entries {
		out = append(out, v)
	}
	return out, nil
}

// Get returns the verification stored for addr.
func (s *VerificationStoreAdapter) Get(ctx context.Context, addr common.Address) (*models.PendingVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	v, ok := entries[addr.Hex()]
	if !ok {
		return nil, fmt.Errorf("%w: no pending verification for %s", domain.ErrNotFound, addr.Hex())
	}
	return &v, nil
}

// Save stores v, replacing an earlier verification of the same address.
func (s *VerificationStoreAdapter) Save(ctx context.Context, v models.PendingVerification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[v.AddressToVerify.Hex()] = v
	return s.write(entries)
}

// Remove deletes the verification of addr, if any.
func (s *VerificationStoreAdapter) Remove(ctx context.Context, addr common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := entries[addr.Hex()]; !ok {
		return nil
	}
	delete(entries, addr.Hex())
	return s.write(entries)
}

func (s *VerificationStoreAdapter) load() (map[string]models.PendingVerification, error) {
	entries := make(map[string]models.PendingVerification)

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read verification store: %w", err)
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse verification store: %w", err)
	}
	return entries, nil
}

func (s *VerificationStoreAdapter) write(entries map[string]models.PendingVerification) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal verifications: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write verification store: %w", err)
	}
	return nil
}

// Ensure the adapter implements the interface
var _ usecase.VerificationStore = (*VerificationStoreAdapter)(nil)
