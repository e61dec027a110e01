package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/penquin/internal/games/penquin/levels/formats"
)

//go:embed data/*.yaml
var builtin embed.FS

// Entry is one level file. Map is nil when Err is set; content errors are
// kept per entry so a broken level does not hide the others.
type Entry struct {
	ID     int
	Name   string
	Source string
	Map    *Map
	Err    error
}

// Title returns a display name for the entry.
func (e Entry) Title() string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("Level %d", e.ID)
}

// Catalog is an ordered set of levels.
type Catalog struct {
	entries []Entry
}

// Builtin loads the levels embedded in the binary.
func Builtin(logger *log.Logger) (*Catalog, error) {
	return load(builtin, "data", logger)
}

// FromDir loads every .yaml, .yml and .toml file in dir.
func FromDir(dir string, logger *log.Logger) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("levels: %s is not a directory", dir)
	}
	return load(os.DirFS(dir), ".", logger)
}

// Load picks the level directory when set and the built-in levels otherwise.
func Load(dir string, logger *log.Logger) (*Catalog, error) {
	if dir != "" {
		return FromDir(dir, logger)
	}
	return Builtin(logger)
}

func load(fsys fs.FS, root string, logger *log.Logger) (*Catalog, error) {
	files, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot list %s: %w", root, err)
	}

	c := &Catalog{}
	for i, f := range files {
		if f.IsDir() || !formats.Supported(f.Name()) {
			continue
		}
		e := loadEntry(fsys, path.Join(root, f.Name()), f.Name())
		if e.ID == 0 {
			e.ID = i + 1
		}
		if e.Err != nil {
			if logger != nil {
				logger.Error("level content error", "file", f.Name(), "err", e.Err)
			}
		} else if logger != nil {
			for _, w := range e.Map.Warnings {
				logger.Warn("level content warning", "file", f.Name(), "warning", w)
			}
		}
		c.entries = append(c.entries, e)
	}

	sort.SliceStable(c.entries, func(i, j int) bool {
		return c.entries[i].ID < c.entries[j].ID
	})

	if len(c.entries) == 0 {
		return nil, fmt.Errorf("levels: no level files in %s", root)
	}
	return c, nil
}

func loadEntry(fsys fs.FS, p, base string) Entry {
	e := Entry{Source: base, ID: levelNumberFromName(base)}

	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		e.Err = fmt.Errorf("levels: read %s: %w", base, err)
		return e
	}
	dec, err := formats.ForPath(base)
	if err != nil {
		e.Err = err
		return e
	}
	doc, err := dec.Decode(data)
	if err != nil {
		e.Err = fmt.Errorf("levels: %s: %w", base, err)
		return e
	}
	if doc.ID != 0 {
		e.ID = doc.ID
	}
	e.Name = doc.Name

	m, err := Compile(base, doc)
	if err != nil {
		e.Err = err
		return e
	}
	if m.ID == 0 {
		m.ID = e.ID
	}
	e.Map = m
	return e
}

// Entries returns every level in id order.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Get returns the level with the given id.
func (c *Catalog) Get(id int) (Entry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Last returns the highest level id.
func (c *Catalog) Last() int {
	if len(c.entries) == 0 {
		return 0
	}
	return c.entries[len(c.entries)-1].ID
}
