package store

import (
	"context"
	"encoding/json"
	"fmt"

	"routine-advisor-be/internal/entity"
)

const selectionKeyPrefix = "selectedProducts:"

// SelectionSnapshots persists the selection of each session as a JSON array.
type SelectionSnapshots struct {
	kv KeyValueStore
}

func NewSelectionSnapshots(kv KeyValueStore) *SelectionSnapshots {
	return &SelectionSnapshots{kv: kv}
}

func (s *SelectionSnapshots) key(sessionID string) string {
	return selectionKeyPrefix + sessionID
}

func (s *SelectionSnapshots) Save(ctx context.Context, sessionID string, products []entity.Product) error {
	if products == nil {
		products = []entity.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}
	if err := s.kv.Set(ctx, s.key(sessionID), string(data)); err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}

// Load returns nil without error when nothing was saved for the session.
func (s *SelectionSnapshots) Load(ctx context.Context, sessionID string) ([]entity.Product, error) {
	raw, ok, err := s.kv.Get(ctx, s.key(sessionID))
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var products []entity.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, fmt.Errorf("parse selection: %w", err)
	}
	return products, nil
}
