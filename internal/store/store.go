package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"warung-pos/internal/models"
)

// Collection files under the data directory. Each one holds the full
// set of records for its entity and is rewritten as a unit.
const (
	productsFile     = "products.json"
	categoriesFile   = "categories.json"
	usersFile        = "users.json"
	transactionsFile = "transactions.json"
	draftsFile       = "pos-drafts.json"
	bannerFile       = "banners.json"
	qrisFile         = "qris.json"
)

// Store is the flat-file record store backing every collection.
// Policy: whole-file read, in-memory mutate, whole-file overwrite.
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open ensures the data directory exists and returns a store rooted there.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Mutate runs fn under the store-wide lock. Every read-modify-write
// cycle in the system goes through here, so two writers can never
// interleave their reads and writes and clobber each other's update.
// Plain reads stay lock-free; renamed writes keep them tear-free.
func (s *Store) Mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// readCollection loads a whole collection. A missing file is an empty
// collection, same as a shop that has not sold anything yet.
func readCollection[T any](s *Store, name string) ([]T, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return records, nil
}

// readSingleton loads a single-object config record. Legacy files that
// stored the object wrapped in an array are read by their first element.
func readSingleton[T any](s *Store, name string) (T, error) {
	var zero T
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("read %s: %w", name, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return zero, nil
	}
	if data[0] == '[' {
		var list []T
		if err := json.Unmarshal(data, &list); err != nil {
			return zero, fmt.Errorf("decode %s: %w", name, err)
		}
		if len(list) == 0 {
			return zero, nil
		}
		return list[0], nil
	}
	var record T
	if err := json.Unmarshal(data, &record); err != nil {
		return zero, fmt.Errorf("decode %s: %w", name, err)
	}
	return record, nil
}

// writeFile overwrites a collection file. The payload lands in a temp
// file first and is renamed into place so concurrent readers never see
// a half-written file.
func (s *Store) writeFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *Store) Products() ([]models.Product, error) {
	return readCollection[models.Product](s, productsFile)
}

func (s *Store) SaveProducts(products []models.Product) error {
	return s.writeFile(productsFile, products)
}

func (s *Store) Categories() ([]models.Category, error) {
	return readCollection[models.Category](s, categoriesFile)
}

func (s *Store) SaveCategories(categories []models.Category) error {
	return s.writeFile(categoriesFile, categories)
}

func (s *Store) Users() ([]models.User, error) {
	return readCollection[models.User](s, usersFile)
}

func (s *Store) SaveUsers(users []models.User) error {
	return s.writeFile(usersFile, users)
}

func (s *Store) Transactions() ([]models.Transaction, error) {
	return readCollection[models.Transaction](s, transactionsFile)
}

func (s *Store) SaveTransactions(transactions []models.Transaction) error {
	return s.writeFile(transactionsFile, transactions)
}

func (s *Store) Drafts() ([]models.Draft, error) {
	return readCollection[models.Draft](s, draftsFile)
}

func (s *Store) SaveDrafts(drafts []models.Draft) error {
	return s.writeFile(draftsFile, drafts)
}

func (s *Store) Banner() (models.Banner, error) {
	return readSingleton[models.Banner](s, bannerFile)
}

func (s *Store) SaveBanner(banner models.Banner) error {
	return s.writeFile(bannerFile, banner)
}

func (s *Store) QRIS() (models.QRIS, error) {
	return readSingleton[models.QRIS](s, qrisFile)
}

func (s *Store) SaveQRIS(qris models.QRIS) error {
	return s.writeFile(qrisFile, qris)
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NextID allocates a millisecond-epoch record ID. IDs handed out in the
// same millisecond are bumped forward so burst creation never collides.
func NextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
