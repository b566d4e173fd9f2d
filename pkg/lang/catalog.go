package lang

import "sync"

// Catalog holds the active reference table and supports hot reload.
// Resolution goes through the catalog so a reload swaps the table for
// every caller at once; the tables themselves stay immutable.
type Catalog struct {
	mu          sync.RWMutex
	table       *Table
	path        string
	encoding    string
	engineLangs []string
}

// NewCatalog creates a catalog backed by the CSV file at path, or by the
// embedded default table when path is empty. Load must be called before
// first use.
func NewCatalog(path, encoding string, engineLangs []string) *Catalog {
	return &Catalog{path: path, encoding: encoding, engineLangs: engineLangs}
}

// Load reads the table from its source and swaps it in.
func (c *Catalog) Load() error {
	var (
		t   *Table
		err error
	)
	if c.path == "" {
		t = Default()
		if c.engineLangs != nil {
			t = NewTable(t.entries, c.engineLangs)
		}
	} else {
		t, err = LoadTable(c.path, c.encoding, c.engineLangs)
		if err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.table = t
	c.mu.Unlock()
	return nil
}

// Reload re-reads the table from its source (hot reload).
func (c *Catalog) Reload() error {
	return c.Load()
}

// Table returns the active table.
func (c *Catalog) Table() *Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table
}

// Resolve resolves a code against the active table.
func (c *Catalog) Resolve(code string) Descriptor {
	return c.Table().Resolve(code)
}
