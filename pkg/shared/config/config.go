package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g.
// EMBERHOLD_SERVER_TICK_RATE.
const EnvPrefix = "EMBERHOLD_"

// Config holds server and client configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	Inventory InventoryConfig `yaml:"inventory" envPrefix:"INVENTORY_"`
	Storage   StorageConfig   `yaml:"storage" envPrefix:"STORAGE_"`
	Items     ItemsConfig     `yaml:"items" envPrefix:"ITEMS_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Client    ClientConfig    `yaml:"client" envPrefix:"CLIENT_"`
}

type ServerConfig struct {
	TCPAddr     string  `yaml:"tcp_addr" env:"TCP_ADDR"`
	WSAddr      string  `yaml:"ws_addr" env:"WS_ADDR"`
	TickRate    int     `yaml:"tick_rate" env:"TICK_RATE"` // Hz
	PickupRange float64 `yaml:"pickup_range" env:"PICKUP_RANGE"`
}

// InventoryConfig sizes every player's inventory.
type InventoryConfig struct {
	GridWidth   int    `yaml:"grid_width" env:"GRID_WIDTH"`
	GridHeight  int    `yaml:"grid_height" env:"GRID_HEIGHT"`
	QuickSlots  int    `yaml:"quick_slots" env:"QUICK_SLOTS"`
	ManagedKind string `yaml:"managed_kind" env:"MANAGED_KIND"`

	// Given to players on their first login.
	StarterKit  []KitEntry `yaml:"starter_kit"`
	StarterGold int        `yaml:"starter_gold" env:"STARTER_GOLD"`
}

type KitEntry struct {
	ID       string `yaml:"id"`
	Quantity int    `yaml:"quantity"`
}

type StorageConfig struct {
	Backend  string `yaml:"backend" env:"BACKEND"` // "file" or "sqlite"
	Dir      string `yaml:"dir" env:"DIR"`
	DBPath   string `yaml:"db_path" env:"DB_PATH"`
	Compress bool   `yaml:"compress" env:"COMPRESS"`
}

type ItemsConfig struct {
	Catalog string `yaml:"catalog" env:"CATALOG"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"` // "text" or "json"
}

type ClientConfig struct {
	ServerAddr string `yaml:"server_addr" env:"SERVER_ADDR"`
	Username   string `yaml:"username" env:"USERNAME"`
	Password   string `yaml:"password" env:"PASSWORD"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads configuration from a YAML file, fills defaults and applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.TCPAddr == "" {
		cfg.Server.TCPAddr = ServerPortTCP
	}
	if cfg.Server.WSAddr == "" {
		cfg.Server.WSAddr = ServerPortWS
	}
	if cfg.Server.TickRate == 0 {
		cfg.Server.TickRate = 30
	}
	if cfg.Server.PickupRange == 0 {
		cfg.Server.PickupRange = 48
	}

	if cfg.Inventory.GridWidth == 0 {
		cfg.Inventory.GridWidth = 6
	}
	if cfg.Inventory.GridHeight == 0 {
		cfg.Inventory.GridHeight = 4
	}
	if cfg.Inventory.QuickSlots == 0 {
		cfg.Inventory.QuickSlots = 6
	}
	if cfg.Inventory.ManagedKind == "" {
		cfg.Inventory.ManagedKind = "potion_health_small"
	}
	if cfg.Inventory.StarterKit == nil {
		cfg.Inventory.StarterKit = []KitEntry{
			{ID: "sword_starter", Quantity: 1},
			{ID: "potion_health_small", Quantity: 3},
		}
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "file"
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = "data/players"
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = "data/emberhold.db"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	if cfg.Client.ServerAddr == "" {
		cfg.Client.ServerAddr = "localhost" + ServerPortTCP
	}
}

// Validate rejects configurations the server cannot run with.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Server.TickRate < 1 {
		errs = append(errs, fmt.Errorf("server.tick_rate must be positive, got %d", cfg.Server.TickRate))
	}
	inv := cfg.Inventory
	if inv.GridWidth < 1 || inv.GridHeight < 1 {
		errs = append(errs, fmt.Errorf("inventory grid must be at least 1x1, got %dx%d", inv.GridWidth, inv.GridHeight))
	}
	if inv.QuickSlots < 0 || inv.QuickSlots > 10 {
		errs = append(errs, fmt.Errorf("inventory.quick_slots must be between 0 and 10, got %d", inv.QuickSlots))
	}
	for _, k := range inv.StarterKit {
		if k.ID == "" || k.Quantity < 1 {
			errs = append(errs, fmt.Errorf("invalid starter kit entry %+v", k))
		}
	}
	switch cfg.Storage.Backend {
	case "file", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be file or sqlite, got %q", cfg.Storage.Backend))
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", cfg.Log.Format))
	}
	return errors.Join(errs...)
}

// TickInterval is the time between two server ticks.
func (s ServerConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}
