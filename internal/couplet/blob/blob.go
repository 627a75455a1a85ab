// Package blob stores uploaded media in an embedded badger database and
// hands out public URLs for it.
package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound    = errors.New("blob: not found")
	ErrInvalidPath = errors.New("blob: invalid path")
)

const (
	metaPrefix = "blob:meta:"
	dataPrefix = "blob:data:"
)

// Options configures Open.
type Options struct {
	// Dir is the badger directory. Ignored when InMemory is set.
	Dir      string
	InMemory bool

	// PublicBaseURL prefixes paths in PublicURL, e.g.
	// "https://couplet.example/media".
	PublicBaseURL string

	Logger *slog.Logger
}

// Info describes a stored blob.
type Info struct {
	Path        string    `json:"path"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

type Store struct {
	db      *badger.DB
	baseURL string
	logger  *slog.Logger
}

func Open(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil
	bopts.SyncWrites = !opts.InMemory
	bopts.CompactL0OnClose = true

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Info("blob store opened", "dir", opts.Dir, "in_memory", opts.InMemory)

	return &Store{
		db:      db,
		baseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
		logger:  logger,
	}, nil
}

func (s *Store) Close() error {
	s.logger.Info("closing blob store")
	return s.db.Close()
}

// CleanPath normalises p to a relative slash path and rejects anything that
// would escape the store root.
func CleanPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" || strings.Contains(p, "\\") || strings.Contains(p, "\x00") {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", ErrInvalidPath
		}
	}
	clean := strings.TrimPrefix(path.Clean("/"+p), "/")
	if clean == "" {
		return "", ErrInvalidPath
	}
	return clean, nil
}

// Upload writes data at p, replacing any existing blob, and returns the
// cleaned path.
func (s *Store) Upload(ctx context.Context, p string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := CleanPath(p)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	meta, err := json.Marshal(Info{
		Path:        clean,
		ContentType: contentType,
		Size:        len(data),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal blob info: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(dataPrefix+clean), data); err != nil {
			return err
		}
		return txn.Set([]byte(metaPrefix+clean), meta)
	})
	if err != nil {
		return "", fmt.Errorf("store blob: %w", err)
	}

	s.logger.Debug("blob stored", "path", clean, "size", len(data), "content_type", contentType)
	return clean, nil
}

// Open returns the bytes and metadata stored at p.
func (s *Store) Open(ctx context.Context, p string) ([]byte, Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, Info{}, err
	}
	clean, err := CleanPath(p)
	if err != nil {
		return nil, Info{}, err
	}

	var (
		data []byte
		info Info
	)
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaPrefix + clean))
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &info)
		}); err != nil {
			return err
		}

		item, err = txn.Get([]byte(dataPrefix + clean))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, Info{}, ErrNotFound
		}
		return nil, Info{}, fmt.Errorf("read blob: %w", err)
	}
	return data, info, nil
}

// Delete removes the blob at p. Deleting a missing blob is not an error.
func (s *Store) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := CleanPath(p)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(dataPrefix + clean)); err != nil {
			return err
		}
		return txn.Delete([]byte(metaPrefix + clean))
	})
}

// PublicURL is where clients fetch the blob at p.
func (s *Store) PublicURL(p string) string {
	return s.baseURL + "/" + strings.TrimPrefix(p, "/")
}
