// Package drafts parks unfinished carts so a cashier can resume an
// interrupted sale. Drafts carry no stock or price guarantees; the next
// checkout attempt revalidates everything.
package drafts

import (
	"errors"
	"strconv"
	"time"

	"warung-pos/internal/models"
	"warung-pos/internal/store"
)

var (
	ErrEmptyDraft    = errors.New("cannot save an empty draft")
	ErrDraftNotFound = errors.New("draft not found")
)

type Store struct {
	store *store.Store
}

func NewStore(s *store.Store) *Store {
	return &Store{store: s}
}

func (d *Store) List() ([]models.Draft, error) {
	return d.store.Drafts()
}

// Save snapshots the cart as a new draft.
func (d *Store) Save(items []models.DraftItem) (*models.Draft, error) {
	if len(items) == 0 {
		return nil, ErrEmptyDraft
	}
	draft := models.Draft{
		ID:        strconv.FormatInt(store.NextID(), 10),
		Items:     items,
		Timestamp: time.Now(),
	}
	err := d.store.Mutate(func() error {
		drafts, err := d.store.Drafts()
		if err != nil {
			return err
		}
		return d.store.SaveDrafts(append(drafts, draft))
	})
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// Load hands the draft's items back to seed a new cart and removes the
// draft in the same step.
func (d *Store) Load(id string) ([]models.DraftItem, error) {
	var items []models.DraftItem
	err := d.store.Mutate(func() error {
		drafts, err := d.store.Drafts()
		if err != nil {
			return err
		}
		for i := range drafts {
			if drafts[i].ID == id {
				items = drafts[i].Items
				drafts = append(drafts[:i], drafts[i+1:]...)
				return d.store.SaveDrafts(drafts)
			}
		}
		return ErrDraftNotFound
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (d *Store) Delete(id string) error {
	return d.store.Mutate(func() error {
		drafts, err := d.store.Drafts()
		if err != nil {
			return err
		}
		for i := range drafts {
			if drafts[i].ID == id {
				drafts = append(drafts[:i], drafts[i+1:]...)
				return d.store.SaveDrafts(drafts)
			}
		}
		return ErrDraftNotFound
	})
}
