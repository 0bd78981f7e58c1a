package chain

import (
	"errors"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
)

// layer is one registered version: its single predecessor plus the operations
// it overrides. A layer is never mutated after it is published in a snapshot.
type layer struct {
	tag         Tag
	predecessor Tag
	overrides   map[string]any
}

// snapshot is an immutable view of the whole ladder.
type snapshot struct {
	layers map[Tag]*layer
	order  []Tag // root first, head last
}

func (s *snapshot) root() Tag {
	if len(s.order) == 0 {
		return ""
	}
	return s.order[0]
}

func (s *snapshot) head() Tag {
	if len(s.order) == 0 {
		return ""
	}
	return s.order[len(s.order)-1]
}

// clone copies the layer index so a writer can replace entries without
// touching the published snapshot. Layers themselves are shared.
func (s *snapshot) clone() *snapshot {
	cp := &snapshot{
		layers: make(map[Tag]*layer, len(s.layers)+1),
		order:  make([]Tag, len(s.order), len(s.order)+1),
	}
	for k, v := range s.layers {
		cp.layers[k] = v
	}
	copy(cp.order, s.order)
	return cp
}

// Chain is a linear ladder of API versions where each version inherits every
// operation of its predecessor unless it overrides it.
//
// Register and Override are serialized by a single mutex and publish a fresh
// immutable snapshot. Resolve, Trace and the other readers never lock: they
// load the current snapshot and walk it, so they are safe for any number of
// concurrent callers.
type Chain struct {
	mu     sync.Mutex
	sealed bool
	snap   atomic.Pointer[snapshot]
}

// New returns an empty chain ready for registration.
func New() *Chain {
	c := &Chain{}
	c.snap.Store(&snapshot{layers: map[Tag]*layer{}})
	return c
}

func (c *Chain) load() *snapshot { return c.snap.Load() }

// Register declares version tag with its single predecessor.
//
// The root version is registered with an empty predecessor. Every other version
// must extend the current head with a tag that orders after it.
//
// Register fails with:
//   - InvalidTagError if tag (or a non-empty predecessor) is malformed
//   - DuplicateVersionError if tag is already registered
//   - UnknownVersionError if predecessor is not registered
//   - RootExistsError if predecessor is empty and a root already exists
//   - NonLinearChainError if predecessor is not the head or tag does not order after it
//   - ErrSealed after Seal
func (c *Chain) Register(tag, predecessor Tag) error {
	if !tag.Valid() {
		return InvalidTagError{Value: string(tag)}
	}
	if predecessor != "" && !predecessor.Valid() {
		return InvalidTagError{Value: string(predecessor)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sealed {
		return ErrSealed
	}

	cur := c.load()
	if _, exists := cur.layers[tag]; exists {
		return DuplicateVersionError{Tag: tag}
	}

	if predecessor == "" {
		if root := cur.root(); root != "" {
			return RootExistsError{Tag: tag, Root: root}
		}
	} else {
		if _, ok := cur.layers[predecessor]; !ok {
			return UnknownVersionError{Tag: predecessor}
		}
		head := cur.head()
		if predecessor != head || Compare(tag, head) <= 0 {
			return NonLinearChainError{Tag: tag, Predecessor: predecessor, Head: head}
		}
	}

	next := cur.clone()
	next.layers[tag] = &layer{tag: tag, predecessor: predecessor, overrides: map[string]any{}}
	next.order = append(next.order, tag)
	c.snap.Store(next)
	return nil
}

// Override attaches impl to version tag for operation op.
//
// Override fails with:
//   - ErrEmptyOperation if op is empty
//   - UnknownVersionError if tag is not registered
//   - NilImplementationError if impl is nil, including a typed nil func, map,
//     pointer, slice, channel or interface
//   - DuplicateOverrideError if (tag, op) already has an implementation
//   - ErrSealed after Seal
func (c *Chain) Override(tag Tag, op string, impl any) error {
	if op == "" {
		return ErrEmptyOperation
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sealed {
		return ErrSealed
	}

	cur := c.load()
	l, ok := cur.layers[tag]
	if !ok {
		return UnknownVersionError{Tag: tag}
	}
	if isNil(impl) {
		return NilImplementationError{Tag: tag, Operation: op}
	}
	if _, exists := l.overrides[op]; exists {
		return DuplicateOverrideError{Tag: tag, Operation: op}
	}

	replaced := &layer{
		tag:         l.tag,
		predecessor: l.predecessor,
		overrides:   make(map[string]any, len(l.overrides)+1),
	}
	for k, v := range l.overrides {
		replaced.overrides[k] = v
	}
	replaced.overrides[op] = impl

	next := cur.clone()
	next.layers[tag] = replaced
	c.snap.Store(next)
	return nil
}

// Seal freezes the chain. Subsequent Register and Override calls return ErrSealed.
// Sealing twice is a no-op.
func (c *Chain) Seal() {
	c.mu.Lock()
	c.sealed = true
	c.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (c *Chain) Sealed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sealed
}

// Resolve returns the implementation of op for version tag, walking from tag
// toward the root until a layer overrides op.
//
// It fails with UnknownVersionError if tag is not registered and with
// UnresolvedOperationError if no layer down to the root defines op.
func (c *Chain) Resolve(tag Tag, op string) (any, error) {
	r, err := c.Trace(tag, op)
	if err != nil {
		return nil, err
	}
	return r.Implementation, nil
}

// Resolution describes where an operation was found.
type Resolution struct {
	// Requested is the version the caller asked for.
	Requested Tag
	// Provider is the version whose override was selected.
	Provider Tag
	// Operation is the operation name.
	Operation string
	// Implementation is the selected value.
	Implementation any
	// Path lists the visited versions, Requested first and Provider last.
	Path []Tag
}

// Inherited reports whether the implementation came from an ancestor version.
func (r Resolution) Inherited() bool { return r.Provider != r.Requested }

// Trace performs the same walk as Resolve and reports the full resolution.
func (c *Chain) Trace(tag Tag, op string) (Resolution, error) {
	if op == "" {
		return Resolution{}, ErrEmptyOperation
	}

	s := c.load()
	l, ok := s.layers[tag]
	if !ok {
		return Resolution{}, UnknownVersionError{Tag: tag}
	}

	path := make([]Tag, 0, len(s.order))
	for {
		path = append(path, l.tag)
		if impl, ok := l.overrides[op]; ok {
			return Resolution{
				Requested:      tag,
				Provider:       l.tag,
				Operation:      op,
				Implementation: impl,
				Path:           path,
			}, nil
		}
		if l.predecessor == "" {
			return Resolution{}, UnresolvedOperationError{Tag: tag, Operation: op}
		}
		l = s.layers[l.predecessor]
	}
}

// Contract returns the fully resolved behavior contract of version tag: one
// Resolution per operation declared at tag or any of its ancestors.
func (c *Chain) Contract(tag Tag) (map[string]Resolution, error) {
	s := c.load()
	l, ok := s.layers[tag]
	if !ok {
		return nil, UnknownVersionError{Tag: tag}
	}

	out := map[string]Resolution{}
	var path []Tag
	for {
		path = append(path, l.tag)
		for op, impl := range l.overrides {
			if _, seen := out[op]; seen {
				continue
			}
			p := make([]Tag, len(path))
			copy(p, path)
			out[op] = Resolution{
				Requested:      tag,
				Provider:       l.tag,
				Operation:      op,
				Implementation: impl,
				Path:           p,
			}
		}
		if l.predecessor == "" {
			return out, nil
		}
		l = s.layers[l.predecessor]
	}
}

// Validate checks that every operation overridden anywhere in the chain is also
// defined at the root, so it resolves for every version. All offending
// operations are reported, joined with errors.Join, as UnresolvedOperationError
// values tagged with the root version.
func (c *Chain) Validate() error {
	s := c.load()
	root, ok := s.layers[s.root()]
	if !ok {
		return nil
	}

	missing := map[string]struct{}{}
	for _, t := range s.order[1:] {
		for op := range s.layers[t].overrides {
			if _, defined := root.overrides[op]; !defined {
				missing[op] = struct{}{}
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	ops := make([]string, 0, len(missing))
	for op := range missing {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	errs := make([]error, 0, len(ops))
	for _, op := range ops {
		errs = append(errs, UnresolvedOperationError{Tag: root.tag, Operation: op})
	}
	return errors.Join(errs...)
}

// Has reports whether tag is registered.
func (c *Chain) Has(tag Tag) bool {
	_, ok := c.load().layers[tag]
	return ok
}

// Versions returns the registered tags, root first.
func (c *Chain) Versions() []Tag {
	s := c.load()
	out := make([]Tag, len(s.order))
	copy(out, s.order)
	return out
}

// Root returns the root version, or "" for an empty chain.
func (c *Chain) Root() Tag { return c.load().root() }

// Head returns the latest version, or "" for an empty chain.
func (c *Chain) Head() Tag { return c.load().head() }

// Predecessor returns the version tag extends. ok is false if tag is unknown;
// the root reports ("", true).
func (c *Chain) Predecessor(tag Tag) (Tag, bool) {
	l, ok := c.load().layers[tag]
	if !ok {
		return "", false
	}
	return l.predecessor, true
}

// Overrides returns the sorted operation names version tag declares itself.
// A pass-through version returns an empty slice.
func (c *Chain) Overrides(tag Tag) ([]string, error) {
	l, ok := c.load().layers[tag]
	if !ok {
		return nil, UnknownVersionError{Tag: tag}
	}
	ops := make([]string, 0, len(l.overrides))
	for op := range l.overrides {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops, nil
}

// isNil reports whether v is nil or a typed nil that would panic when used.
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
