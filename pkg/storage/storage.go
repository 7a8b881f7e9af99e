package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"emberhold/pkg/shared/config"
)

// ErrNotFound is returned by Load for players that were never saved.
var ErrNotFound = errors.New("player not found")

type PlayerSaveData struct {
	Username    string
	Password    string // Plaintext for now (TODO: hash once accounts move off local saves)
	X, Y        float64
	Health      float64
	Keybindings map[string]int  // Action -> Ebiten Key ID
	OpenMenus   map[string]bool // WindowName -> IsVisible
	Inventory   InventorySave
}

// InventorySave is the persisted form of a player's containers. Only
// occupied slots are listed.
type InventorySave struct {
	Grid  []SlotSave
	Quick []SlotSave
	Gold  int
}

type SlotSave struct {
	Index    int
	ItemID   string
	Quantity int
}

// Store persists player data.
type Store interface {
	// Load returns ErrNotFound when username has no save.
	Load(ctx context.Context, username string) (*PlayerSaveData, error)
	Save(ctx context.Context, data PlayerSaveData) error
	Close() error
}

// Open picks the backend named in cfg.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.Dir), nil
	case "sqlite":
		return OpenSQLite(cfg.DBPath, cfg.Compress)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// ValidUsername reports whether name is safe to use as a storage key.
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

func checkUsername(name string) error {
	if !ValidUsername(name) {
		return fmt.Errorf("invalid username %q", name)
	}
	return nil
}
