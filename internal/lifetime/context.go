package lifetime

import (
	"fmt"

	"fortio.org/safecast"

	"gaia/internal/source"
)

type edgeKey struct {
	from ID
	to   ID
}

// Context owns the lifetimes of one function or impl scope. It hands
// out identities, records outlives edges with set semantics and is
// reset (or rebuilt) on scope exit. One context belongs to the single
// pass analyzing its item; it is not safe for concurrent mutation.
type Context struct {
	strings      *source.Interner
	list         []Lifetime
	index        map[Lifetime]ID
	names        map[source.StringID]ID
	nextInferred uint32
	staticID     ID
	edges        []Edge
	edgeSeen     map[edgeKey]struct{}
}

// NewContext constructs a context with 'static pre-registered. A nil
// interner allocates a private one.
func NewContext(strings *source.Interner) *Context {
	if strings == nil {
		strings = source.NewInterner()
	}
	c := &Context{strings: strings}
	c.reset()
	return c
}

func (c *Context) reset() {
	c.list = make([]Lifetime, 1) // slot 0 reserved for NoID
	c.index = make(map[Lifetime]ID)
	c.names = make(map[source.StringID]ID)
	c.nextInferred = 0
	c.edges = nil
	c.edgeSeen = make(map[edgeKey]struct{})
	c.staticID = c.intern(Lifetime{Kind: KindStatic})
}

// Reset clears every registration and edge, for reuse across items.
func (c *Context) Reset() {
	c.reset()
}

func (c *Context) intern(l Lifetime) ID {
	if id, ok := c.index[l]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(c.list))
	if err != nil {
		panic(fmt.Errorf("lifetime arena overflow: %w", err))
	}
	id := ID(n)
	c.list = append(c.list, l)
	c.index[l] = id
	return id
}

// Static returns the 'static lifetime.
func (c *Context) Static() ID {
	return c.staticID
}

// Fresh allocates a new inferred lifetime from the monotonic counter.
func (c *Context) Fresh() ID {
	id := c.intern(Lifetime{Kind: KindInferred, Num: c.nextInferred})
	c.nextInferred++
	return id
}

// RegisterNamed registers a source-level lifetime parameter. Repeat
// calls with the same name return the existing identity, so every
// syntactic use of 'a shares one lifetime.
func (c *Context) RegisterNamed(name string) ID {
	if name == "static" {
		return c.staticID
	}
	sid := c.strings.Intern(name)
	if id, ok := c.names[sid]; ok {
		return id
	}
	id := c.intern(Lifetime{Kind: KindNamed, Name: sid})
	c.names[sid] = id
	return id
}

// LookupName finds an already-registered named lifetime.
func (c *Context) LookupName(name string) (ID, bool) {
	if name == "static" {
		return c.staticID, true
	}
	id, ok := c.names[c.strings.Intern(name)]
	return id, ok
}

// Get returns the descriptor for id.
func (c *Context) Get(id ID) (Lifetime, bool) {
	if id == NoID || int(id) >= len(c.list) {
		return Lifetime{}, false
	}
	return c.list[id], true
}

// Len returns the number of registered lifetimes.
func (c *Context) Len() int {
	return len(c.list) - 1
}

// String renders a lifetime for diagnostics.
func (c *Context) String(id ID) string {
	l, ok := c.Get(id)
	if !ok {
		return "'?"
	}
	switch l.Kind {
	case KindNamed:
		return "'" + c.strings.MustLookup(l.Name)
	case KindInferred:
		return fmt.Sprintf("'_%d", l.Num)
	case KindStatic:
		return "'static"
	default:
		return "'?"
	}
}

// AddOutlives records that lhs outlives rhs. Both sides must have
// been registered through RegisterNamed or Fresh. Duplicate edges are
// dropped, keeping the first reason. Reflexive edges are trivially
// true and dropped as well.
func (c *Context) AddOutlives(lhs, rhs ID, reason string) error {
	if _, ok := c.Get(lhs); !ok {
		return &UnregisteredLifetimeError{Name: c.describe(lhs)}
	}
	if _, ok := c.Get(rhs); !ok {
		return &UnregisteredLifetimeError{Name: c.describe(rhs)}
	}
	if lhs == rhs {
		return nil
	}
	key := edgeKey{from: lhs, to: rhs}
	if _, ok := c.edgeSeen[key]; ok {
		return nil
	}
	c.edgeSeen[key] = struct{}{}
	c.edges = append(c.edges, Edge{From: lhs, To: rhs, Reason: reason})
	return nil
}

// AddOutlivesNamed records an outlives edge between named lifetimes,
// failing when either side was never registered.
func (c *Context) AddOutlivesNamed(lhs, rhs, reason string) error {
	lid, ok := c.LookupName(lhs)
	if !ok {
		return &UnregisteredLifetimeError{Name: lhs}
	}
	rid, ok := c.LookupName(rhs)
	if !ok {
		return &UnregisteredLifetimeError{Name: rhs}
	}
	return c.AddOutlives(lid, rid, reason)
}

// Edges returns the recorded outlives constraints in insertion order.
// The slice aliases internal storage and must not be modified.
func (c *Context) Edges() []Edge {
	return c.edges
}

func (c *Context) describe(id ID) string {
	if l, ok := c.Get(id); ok && l.Kind == KindNamed {
		return c.strings.MustLookup(l.Name)
	}
	return fmt.Sprintf("#%d", id)
}
