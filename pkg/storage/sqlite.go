package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

const (
	codecJSON = "json"
	codecZstd = "zstd"
)

// SQLiteStore keeps player saves in a single sqlite table. Rows are JSON,
// optionally zstd-compressed; each row records its codec so the setting can
// change between runs.
type SQLiteStore struct {
	db       *sql.DB
	compress bool
	enc      *zstd.Encoder
	dec      *zstd.Decoder
}

func OpenSQLite(path string, compress bool) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, compress: compress, enc: enc, dec: dec}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS players (
		username   TEXT PRIMARY KEY,
		codec      TEXT NOT NULL,
		data       BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);`)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, data PlayerSaveData) error {
	if err := checkUsername(data.Username); err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", data.Username, err)
	}
	codec := codecJSON
	if s.compress {
		raw = s.enc.EncodeAll(raw, nil)
		codec = codecZstd
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO players (username, codec, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			codec = excluded.codec,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		data.Username, codec, raw, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save %s: %w", data.Username, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, username string) (*PlayerSaveData, error) {
	if err := checkUsername(username); err != nil {
		return nil, err
	}
	var (
		codec string
		raw   []byte
	)
	err := s.db.QueryRowContext(ctx, `SELECT codec, data FROM players WHERE username = ?`, username).Scan(&codec, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", username, err)
	}

	switch codec {
	case codecJSON:
	case codecZstd:
		if raw, err = s.dec.DecodeAll(raw, nil); err != nil {
			return nil, fmt.Errorf("decompress %s: %w", username, err)
		}
	default:
		return nil, fmt.Errorf("load %s: unknown codec %q", username, codec)
	}

	var data PlayerSaveData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", username, err)
	}
	return &data, nil
}

func (s *SQLiteStore) Close() error {
	s.enc.Close()
	s.dec.Close()
	return s.db.Close()
}
