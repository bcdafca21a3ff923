package navigation

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	// ErrRouteNotFound is returned when a path or name resolves to no route.
	ErrRouteNotFound = errors.New("route not found")

	// ErrDuplicateRoute is returned by NewTable when a path or name repeats.
	ErrDuplicateRoute = errors.New("duplicate route")

	// ErrInvalidRoute is returned by NewTable for a route without a path or name.
	ErrInvalidRoute = errors.New("invalid route")
)

// Table is the static route table. It is built once at startup and never mutated.
type Table struct {
	entries []entry
	byPath  map[string]int
	byName  map[string]int
}

type entry struct {
	path  string
	chain []*Route
}

// NewTable flattens the given routes (children are joined onto their parent path)
// and checks that every path and every name is unique.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		byPath: make(map[string]int),
		byName: make(map[string]int),
	}
	for i := range routes {
		if err := t.add(&routes[i], "", nil); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustTable is NewTable for static tables known to be valid.
func MustTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) add(r *Route, parentPath string, parents []*Route) error {
	if r.Path == "" {
		return fmt.Errorf("%w: route %q has no path", ErrInvalidRoute, r.Name)
	}
	full := joinPath(parentPath, r.Path)

	chain := make([]*Route, 0, len(parents)+1)
	chain = append(chain, parents...)
	chain = append(chain, r)

	// Routes without a name are allowed only as grouping parents.
	if r.Name == "" && len(r.Children) == 0 {
		return fmt.Errorf("%w: route %q has no name", ErrInvalidRoute, full)
	}
	if _, ok := t.byPath[full]; ok {
		return fmt.Errorf("%w: path %q", ErrDuplicateRoute, full)
	}
	if r.Name != "" {
		if _, ok := t.byName[r.Name]; ok {
			return fmt.Errorf("%w: name %q", ErrDuplicateRoute, r.Name)
		}
		t.byName[r.Name] = len(t.entries)
	}
	t.byPath[full] = len(t.entries)
	t.entries = append(t.entries, entry{path: full, chain: chain})

	for i := range r.Children {
		if err := t.add(&r.Children[i], full, chain); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(parent, p string) string {
	if strings.HasPrefix(p, "/") || parent == "" {
		return path.Clean("/" + p)
	}
	return path.Clean(parent + "/" + p)
}

// Match resolves a request path to a location.
func (t *Table) Match(p string) (*Location, bool) {
	if p == "" {
		p = "/"
	}
	idx, ok := t.byPath[path.Clean(p)]
	if !ok {
		return nil, false
	}
	return t.location(idx), true
}

// ByName resolves a route name to a location.
func (t *Table) ByName(name string) (*Location, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.location(idx), true
}

// Resolve accepts either a path (leading slash) or a route name.
func (t *Table) Resolve(target string) (*Location, error) {
	var (
		loc *Location
		ok  bool
	)
	if strings.HasPrefix(target, "/") {
		loc, ok = t.Match(target)
	} else {
		loc, ok = t.ByName(target)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRouteNotFound, target)
	}
	return loc, nil
}

// PathFor returns the full path of a named route.
func (t *Table) PathFor(name string) (string, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return "", false
	}
	return t.entries[idx].path, true
}

// Locations returns every resolvable location in declaration order.
func (t *Table) Locations() []*Location {
	out := make([]*Location, 0, len(t.entries))
	for i := range t.entries {
		out = append(out, t.location(i))
	}
	return out
}

func (t *Table) location(idx int) *Location {
	e := t.entries[idx]
	leaf := e.chain[len(e.chain)-1]
	matched := make([]*Route, len(e.chain))
	copy(matched, e.chain)
	return &Location{
		Path:    e.path,
		Name:    leaf.Name,
		Matched: matched,
		Meta:    mergeMeta(matched),
	}
}
