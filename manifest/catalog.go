package manifest

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// ErrCatalogPanic is returned if a catalog lookup panics internally.
var ErrCatalogPanic = errors.New("manifest: panic during catalog Lookup")

// MissingImplementationError is returned when a manifest references an
// implementation name the catalog does not provide.
type MissingImplementationError struct{ Name string }

// Error implements the error interface.
func (e MissingImplementationError) Error() string {
	// Example: manifest: catalog has no implementation "response.v9"
	return "manifest: catalog has no implementation " + strconv.Quote(e.Name)
}

// Catalog is a simple in-memory set of named implementations a manifest can
// bind operations to.
type Catalog struct {
	items map[string]any
}

func NewCatalog() *Catalog {
	return &Catalog{items: map[string]any{}}
}

// Provide stores an implementation under name and returns the catalog for chaining.
func (c *Catalog) Provide(name string, impl any) *Catalog {
	c.items[name] = impl
	return c
}

// Lookup returns the implementation for name, converting panics into ErrCatalogPanic.
func (c *Catalog) Lookup(name string) (impl any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			impl = nil
			err = fmt.Errorf("%w: %v", ErrCatalogPanic, rec)
		}
	}()

	v, ok := c.items[name]
	if !ok || isNil(v) {
		return nil, MissingImplementationError{Name: name}
	}
	return v, nil
}

// Get returns the implementation if present (no panic).
func (c *Catalog) Get(name string) (any, bool) {
	v, ok := c.items[name]
	return v, ok
}

// MustGet returns the implementation or panics with a helpful message.
func (c *Catalog) MustGet(name string) any {
	v, ok := c.items[name]
	if !ok {
		panic(MissingImplementationError{Name: name})
	}
	return v
}

// Names returns the provided names, sorted.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.items))
	for k := range c.items {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// isNil treats typed nil funcs, maps, pointers, slices, channels and
// interfaces as absent.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Map, reflect.Pointer, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
