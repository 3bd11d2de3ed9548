package meta

// Scope is the LOCAL or GLOBAL qualifier a value was written with.
type Scope uint8

const (
	ScopeNone Scope = iota
	ScopeLocal
	ScopeGlobal
)

// Slot is one stored value, the line it came from and the qualifier on that line.
type Slot[T any] struct {
	Value T
	Here  Where
	Scope Scope
}

// Cell holds a document-wide default and an optional local override.
// Reading a cell yields the override while one is active.
type Cell[T any] struct {
	Default  Slot[T]
	Override *Slot[T]
}

// Value returns the active value.
func (c *Cell[T]) Value() T {
	if c.Override != nil {
		return c.Override.Value
	}
	return c.Default.Value
}

// Here returns the location of the active value.
func (c *Cell[T]) Here() Where {
	if c.Override != nil {
		return c.Override.Here
	}
	return c.Default.Here
}

// Scope returns the qualifier the active value was written with.
func (c *Cell[T]) Scope() Scope {
	if c.Override != nil {
		return c.Override.Scope
	}
	return c.Default.Scope
}

// Overridden reports whether a local override is active.
func (c *Cell[T]) Overridden() bool {
	return c.Override != nil
}

// SetValue replaces the active value and keeps its location.
func (c *Cell[T]) SetValue(v T) {
	if c.Override != nil {
		c.Override.Value = v
		return
	}
	c.Default.Value = v
}

// Pop drops the override so the default is visible again.
func (c *Cell[T]) Pop() {
	c.Override = nil
}

// store writes the override when the line said LOCAL or an override is already
// active, and the default otherwise.
func (c *Cell[T]) store(v T, here Where, scope Scope) {
	if scope == ScopeLocal || c.Override != nil {
		c.Override = &Slot[T]{Value: v, Here: here, Scope: scope}
		return
	}
	c.Default = Slot[T]{Value: v, Here: here, Scope: scope}
}
