package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"minion-profit/internal/model"

	"github.com/tidwall/gjson"
)

// Snapshot is a saved copy of the market data, used for offline runs.
type Snapshot struct {
	UpdatedAt string              `json:"updated_at"` // ISO 8601 timestamp
	Items     []model.PriceRecord `json:"items"`
}

// LoadSnapshot reads a snapshot file. A bare JSON array of records is accepted too.
func LoadSnapshot(filePath string) (*Snapshot, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read prices file: %w", err)
	}

	var snap Snapshot
	if gjson.ParseBytes(raw).IsArray() {
		err = json.Unmarshal(raw, &snap.Items)
	} else {
		err = json.Unmarshal(raw, &snap)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse prices file: %w", err)
	}
	return &snap, nil
}

// SaveSnapshot writes a snapshot, creating the directory when needed.
func SaveSnapshot(snap *Snapshot, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prices: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write prices file: %w", err)
	}
	return nil
}

// DefaultSnapshotPath returns PRICES_FILE, or data/sb_items.json.
func DefaultSnapshotPath() string {
	if path := os.Getenv("PRICES_FILE"); path != "" {
		return path
	}
	return "./data/sb_items.json"
}

// LoadReference builds a Reference from a snapshot file. auctions may be nil.
func LoadReference(filePath string, auctions AuctionSource) (*Reference, error) {
	snap, err := LoadSnapshot(filePath)
	if err != nil {
		return nil, err
	}
	return NewReference(snap.Items, auctions), nil
}
