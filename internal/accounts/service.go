package accounts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cleared-dev/mayores/internal/model"
)

var (
	// ErrInvalidClassification indicates a class other than Activo, Pasivo or Capital.
	ErrInvalidClassification = errors.New("accounts: invalid classification")
	// ErrBlankName indicates an empty account name.
	ErrBlankName = errors.New("accounts: account name is blank")
	// ErrUnknownAccount indicates the name is not in the catalog.
	ErrUnknownAccount = errors.New("accounts: account not in catalog")
)

// customDescription is stored with accounts created while entering data.
const customDescription = "Cuenta personalizada"

// Store persists catalog additions. Adding a name that already exists
// must succeed without creating a second entry.
type Store interface {
	Add(ctx context.Context, entry model.CatalogEntry) error
}

// updater is implemented by stores that support explicit reclassification.
type updater interface {
	Update(ctx context.Context, entry model.CatalogEntry) error
}

// Catalog is the chart of accounts keyed by case-insensitive name.
// It is safe for concurrent use; mutations are serialized.
type Catalog struct {
	mu      sync.RWMutex
	entries []model.CatalogEntry
	byName  map[string]int
	store   Store
}

// NewCatalog creates a Catalog from entries. Later duplicates of a name are dropped.
func NewCatalog(entries []model.CatalogEntry) *Catalog {
	c := &Catalog{byName: make(map[string]int, len(entries))}
	for _, e := range entries {
		key := nameKey(e.Name)
		if key == "" {
			continue
		}
		if _, dup := c.byName[key]; dup {
			continue
		}
		c.byName[key] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// SetStore attaches the store that receives committed accounts.
func (c *Catalog) SetStore(s Store) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = s
}

// Load reads a catalog CSV file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return NewCatalog(entries), nil
}

// Save writes the catalog to path, creating its directory.
func (c *Catalog) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating catalog dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating catalog file: %w", err)
	}
	defer f.Close()

	if err := WriteEntries(f, c.All()); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// All returns a copy of every entry in insertion order.
func (c *Catalog) All() []model.CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of accounts.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Get returns the entry for name.
func (c *Catalog) Get(name string) (model.CatalogEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byName[nameKey(name)]
	if !ok {
		return model.CatalogEntry{}, false
	}
	return c.entries[i], true
}

// Classify looks up name. A miss returns isNew=true and an empty
// classification; the caller must collect one before the account is used.
func (c *Catalog) Classify(name string) (class model.Classification, isNew bool) {
	e, ok := c.Get(name)
	if !ok {
		return model.ClassUnknown, true
	}
	return e.Classification, false
}

// Commit adds name with the given class unless the name is already present.
// It reports whether an entry was added. Re-adding an existing name is a no-op.
func (c *Catalog) Commit(ctx context.Context, name string, class model.Classification) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrBlankName
	}
	if !class.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidClassification, class)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := nameKey(name)
	if _, ok := c.byName[key]; ok {
		return false, nil
	}

	entry := model.CatalogEntry{Name: name, Classification: class, Description: customDescription}
	if c.store != nil {
		if err := c.store.Add(ctx, entry); err != nil {
			return false, fmt.Errorf("persisting account %q: %w", name, err)
		}
	}
	c.byName[key] = len(c.entries)
	c.entries = append(c.entries, entry)
	return true, nil
}

// Reclassify explicitly overwrites the class of an existing account.
func (c *Catalog) Reclassify(ctx context.Context, name string, class model.Classification) error {
	if !class.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidClassification, class)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.byName[nameKey(name)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAccount, name)
	}
	entry := c.entries[i]
	entry.Classification = class
	if u, ok := c.store.(updater); ok {
		if err := u.Update(ctx, entry); err != nil {
			return fmt.Errorf("persisting account %q: %w", entry.Name, err)
		}
	}
	c.entries[i] = entry
	return nil
}

// ByClassification returns all accounts of the given class.
func (c *Catalog) ByClassification(class model.Classification) []model.CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var result []model.CatalogEntry
	for _, e := range c.entries {
		if e.Classification == class {
			result = append(result, e)
		}
	}
	return result
}

// Custom returns the accounts that are not part of the starter set.
func (c *Catalog) Custom() []model.CatalogEntry {
	starter := make(map[string]bool)
	for _, e := range DefaultCatalog() {
		starter[nameKey(e.Name)] = true
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	var result []model.CatalogEntry
	for _, e := range c.entries {
		if !starter[nameKey(e.Name)] {
			result = append(result, e)
		}
	}
	return result
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
