package dpe

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// MaxHandles is the fixed capacity of the context table.
const MaxHandles = 24

// RootIndex marks a context with no parent.
const RootIndex = 0xFF

// HandleSize is the wire size of a context handle.
const HandleSize = 16

// ContextHandle is the opaque identifier callers use to reference a
// context slot. The all-zero handle is the default handle.
type ContextHandle [HandleSize]byte

// DefaultHandle references the default context of a locality.
var DefaultHandle = ContextHandle{}

// NewRandomContextHandle returns a fresh 16-byte random handle.
func NewRandomContextHandle() (ContextHandle, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return ContextHandle{}, ErrInternal
	}
	return ContextHandle(id), nil
}

func (h ContextHandle) IsDefault() bool {
	return h == DefaultHandle
}

func (h ContextHandle) Equal(other ContextHandle) bool {
	return h == other
}

func (h ContextHandle) String() string {
	return hex.EncodeToString(h[:])
}

// ContextState tracks the lifecycle of a context slot.
type ContextState uint8

const (
	// ContextStateInactive slots carry no data and may be claimed.
	ContextStateInactive ContextState = iota
	// ContextStateActive slots hold a live measurement position.
	ContextStateActive
	// ContextStateRetired slots have derived children but can no longer
	// be addressed directly.
	ContextStateRetired
)

func (s ContextState) String() string {
	switch s {
	case ContextStateInactive:
		return "inactive"
	case ContextStateActive:
		return "active"
	case ContextStateRetired:
		return "retired"
	default:
		return "unknown"
	}
}

// ContextType distinguishes measured contexts from simulation contexts.
type ContextType uint8

const (
	ContextTypeNormal ContextType = iota
	ContextTypeSimulation
)

// Context is one slot of the fixed context table.
type Context struct {
	Handle ContextHandle
	TCI    TciNodeData
	// Children is a bitmap over the context table marking direct
	// children of this slot.
	Children  uint32
	ParentIdx uint8
	State     ContextState
	Type      ContextType
	// Locality that created and may address this context.
	Locality uint32
}

// Activate claims the slot for a live context.
func (c *Context) Activate(handle ContextHandle, typ ContextType, locality uint32, parentIdx uint8) {
	c.Handle = handle
	c.TCI = TciNodeData{}
	c.Children = 0
	c.ParentIdx = parentIdx
	c.State = ContextStateActive
	c.Type = typ
	c.Locality = locality
}

// Destroy wipes the slot's measurement state and marks it inactive.
// Destroying an inactive slot is a no-op.
func (c *Context) Destroy() {
	c.TCI = TciNodeData{}
	c.State = ContextStateInactive
}
