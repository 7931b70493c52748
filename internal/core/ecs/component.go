package ecs

import (
	"fmt"
	"reflect"
)

// Kind is a compile-time type token for a component type. Tokens are issued
// once per Go type via KindFor; an entity holds at most one component per
// kind. Registration happens during package init — no locks.
type Kind uint32

var (
	nextKind   Kind
	kindByType = make(map[reflect.Type]Kind, 64)
	kindNames  = make([]string, 0, 64)
)

// KindFor returns the token for component type T, issuing it on first use.
func KindFor[T any]() Kind {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if k, ok := kindByType[t]; ok {
		return k
	}
	k := nextKind
	nextKind++
	kindByType[t] = k
	kindNames = append(kindNames, t.Name())
	return k
}

// String returns the Go type name the kind was issued for.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint32(k))
}

// Component is a typed data unit attached to exactly one entity at a time.
// Implementations embed Base, which carries the enabled flag and the owner
// back-reference, and declare their kind token:
//
//	type Mineral struct {
//		ecs.Base
//		Amount int
//	}
//
//	func (*Mineral) Kind() ecs.Kind { return ecs.KindFor[Mineral]() }
type Component interface {
	Kind() Kind
	Enabled() bool
	SetEnabled(bool)
	Owner() *Entity
	bind(*Entity)
}

// Optional lifecycle hooks. The entity invokes them on attach/detach and
// enable/disable transitions.
type (
	Attacher interface{ OnAttached(*Entity) }
	Detacher interface{ OnDetached(*Entity) }
	Enabler  interface{ OnEnabled() }
	Disabler interface{ OnDisabled() }
)

// Base supplies the Component plumbing. The zero value is enabled and
// unowned. Owner is non-nil exactly while the component is attached.
type Base struct {
	owner    *Entity
	disabled bool
}

func (b *Base) Enabled() bool      { return !b.disabled }
func (b *Base) SetEnabled(on bool) { b.disabled = !on }
func (b *Base) Owner() *Entity     { return b.owner }
func (b *Base) bind(e *Entity)     { b.owner = e }
