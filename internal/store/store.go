package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotExist is returned by Load when nothing has been persisted yet.
	ErrNotExist = errors.New("store: document does not exist")
	// ErrConflict is returned by Save when the document changed underneath
	// the caller since it was loaded.
	ErrConflict = errors.New("store: document was modified concurrently")
)

// Backend persists the whole document as a single unit.
type Backend interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
	Close() error
}

const maxConflictRetries = 3

// DB serialises every read-mutate-write cycle against a Backend so that
// concurrent requests never observe or overwrite each other's half-applied
// state.
type DB struct {
	mu      sync.Mutex
	backend Backend
}

func New(b Backend) *DB { return &DB{backend: b} }

// View loads the document and hands it to fn. Changes made by fn are
// discarded.
func (db *DB) View(ctx context.Context, fn func(*Document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	doc, err := db.load(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update loads the document, lets fn mutate it and saves it. When fn returns
// an error nothing is written.
func (db *DB) Update(ctx context.Context, fn func(*Document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for attempt := 0; ; attempt++ {
		doc, err := db.load(ctx)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
		err = db.backend.Save(ctx, doc)
		if errors.Is(err, ErrConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		return nil
	}
}

// Init prepares the store at startup: it creates the document when none
// exists, applies seed (which must be idempotent) and saves. An unreadable
// document is reported rather than replaced.
func (db *DB) Init(ctx context.Context, seed func(*Document) error) error {
	return db.Update(ctx, func(doc *Document) error {
		if seed == nil {
			return nil
		}
		return seed(doc)
	})
}

func (db *DB) Close() error { return db.backend.Close() }

func (db *DB) load(ctx context.Context) (*Document, error) {
	doc, err := db.backend.Load(ctx)
	if errors.Is(err, ErrNotExist) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return doc, nil
}
