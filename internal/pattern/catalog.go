package pattern

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxBBox is the largest pattern width or height accepted by default.
const DefaultMaxBBox = 10

// ErrCorpusUnavailable is returned when the corpus root cannot be read.
var ErrCorpusUnavailable = errors.New("pattern corpus unavailable")

// Collision records two different names that produced the same hash. Kept
// was inserted first and stays in the index.
type Collision struct {
	Hash    Hash
	Kept    string
	Dropped string
}

// Catalog maps canonical shape hashes to pattern names. It is immutable once
// built and safe for concurrent lookups.
type Catalog struct {
	maxBBox    int
	index      map[Hash]string
	defs       []Definition
	rejected   []string
	collisions []Collision
}

type options struct {
	maxBBox int
	workers int
	logger  *slog.Logger
}

// Option configures catalog construction.
type Option func(*options)

// WithMaxBBox sets the largest accepted width or height.
func WithMaxBBox(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBBox = n
		}
	}
}

// WithWorkers bounds the number of files parsed concurrently.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets the logger used for skipped files and collisions.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		maxBBox: DefaultMaxBBox,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New builds a catalog from in-memory definitions, inserted in order.
func New(defs []Definition, opts ...Option) *Catalog {
	o := buildOptions(opts)
	c := newCatalog(o.maxBBox)
	for _, def := range defs {
		c.add(def, o.logger)
	}
	return c
}

// Load reads every plaintext pattern in dir. Unreadable or malformed files
// are logged and skipped; an unreadable dir fails the whole load.
func Load(ctx context.Context, dir string, opts ...Option) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrCorpusUnavailable, dir)
	}
	return LoadFS(ctx, os.DirFS(dir), ".", opts...)
}

type parsed struct {
	file string
	def  Definition
	err  error
}

// LoadFS is Load over a file system. Files are parsed concurrently and
// inserted in lexical file-name order, so the first-loaded-wins collision
// rule is reproducible.
func LoadFS(ctx context.Context, fsys fs.FS, dir string, opts ...Option) (*Catalog, error) {
	o := buildOptions(opts)
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), PlaintextExt) {
			continue
		}
		files = append(files, e.Name())
	}
	slices.Sort(files)

	results := make([]parsed, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parseFile(fsys, path.Join(dir, name))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := newCatalog(o.maxBBox)
	for _, res := range results {
		switch {
		case errors.Is(res.err, ErrEmpty):
			o.logger.Debug("skipping empty pattern", "file", res.file)
		case res.err != nil:
			o.logger.Warn("skipping pattern file", "file", res.file, "err", res.err)
		default:
			c.add(res.def, o.logger)
		}
	}
	o.logger.Info("pattern catalog loaded",
		"patterns", c.Len(), "hashes", c.Entries(),
		"rejected", len(c.rejected), "collisions", len(c.collisions))
	return c, nil
}

func parseFile(fsys fs.FS, file string) parsed {
	f, err := fsys.Open(file)
	if err != nil {
		return parsed{file: file, err: err}
	}
	defer f.Close()
	def, err := ParsePlaintext(f, NameFromFile(file))
	if err != nil {
		return parsed{file: file, err: err}
	}
	def.Source = file
	return parsed{file: file, def: def}
}

func newCatalog(maxBBox int) *Catalog {
	if maxBBox <= 0 {
		maxBBox = DefaultMaxBBox
	}
	return &Catalog{maxBBox: maxBBox, index: make(map[Hash]string)}
}

func (c *Catalog) add(def Definition, logger *slog.Logger) {
	if def.Shape.Empty() {
		return
	}
	if def.Bounds().Exceeds(c.maxBBox) {
		c.rejected = append(c.rejected, def.Name)
		logger.Debug("pattern exceeds max bounding box", "pattern", def.Name,
			"width", def.Shape.Width(), "height", def.Shape.Height(), "max", c.maxBBox)
		return
	}
	c.defs = append(c.defs, def)
	for _, shape := range Orientations(def.Shape) {
		h := shape.Hash()
		existing, ok := c.index[h]
		if !ok {
			c.index[h] = def.Name
			continue
		}
		if existing == def.Name || c.collided(h, def.Name) {
			continue
		}
		c.collisions = append(c.collisions, Collision{Hash: h, Kept: existing, Dropped: def.Name})
		logger.Warn("pattern hash collision", "hash", h.Short(), "kept", existing, "dropped", def.Name)
	}
}

func (c *Catalog) collided(h Hash, name string) bool {
	for _, col := range c.collisions {
		if col.Hash == h && col.Dropped == name {
			return true
		}
	}
	return false
}

// Lookup returns the pattern name for a normalized shape.
func (c *Catalog) Lookup(s Shape) (string, bool) {
	if s.Empty() || s.Bounds().Exceeds(c.maxBBox) {
		return "", false
	}
	name, ok := c.index[s.Hash()]
	return name, ok
}

// LookupCells normalizes the set and looks it up.
func (c *Catalog) LookupCells(s CellSet) (string, bool) {
	return c.Lookup(Normalize(s))
}

// MaxBBox returns the largest accepted width or height.
func (c *Catalog) MaxBBox() int { return c.maxBBox }

// Len returns the number of accepted definitions.
func (c *Catalog) Len() int { return len(c.defs) }

// Entries returns the number of distinct hashes in the index.
func (c *Catalog) Entries() int { return len(c.index) }

// Definitions returns the accepted definitions in insertion order.
func (c *Catalog) Definitions() []Definition { return slices.Clone(c.defs) }

// Names returns the distinct names reachable through the index, sorted.
func (c *Catalog) Names() []string {
	seen := make(map[string]struct{}, len(c.defs))
	for _, name := range c.index {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Rejected returns the names dropped for exceeding the bounding box limit.
func (c *Catalog) Rejected() []string { return slices.Clone(c.rejected) }

// Collisions returns every recorded collision in insertion order.
func (c *Catalog) Collisions() []Collision { return slices.Clone(c.collisions) }
