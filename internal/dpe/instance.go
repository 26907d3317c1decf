package dpe

import (
	"math/bits"

	"github.com/sirupsen/logrus"
)

// Support describes the optional features an Instance was built with.
// Feature bits outside the covered command surface are carried so
// deployments can declare them in configuration.
type Support struct {
	Simulation    bool `yaml:"simulation"`
	AutoInit      bool `yaml:"autoInit"`
	RotateContext bool `yaml:"rotateContext"`
	InternalInfo  bool `yaml:"internalInfo"`
	InternalDice  bool `yaml:"internalDice"`
}

// Instance owns the fixed-capacity context table. The dispatcher runs
// one command at a time, so there is no internal locking.
type Instance struct {
	Contexts [MaxHandles]Context
	Support  Support

	log logrus.FieldLogger
}

// New returns an instance with an empty context table.
func New(support Support, log logrus.FieldLogger) *Instance {
	return &Instance{
		Support: support,
		log:     log,
	}
}

// InitializeContext activates a root context in the given locality and
// returns its slot index.
func (d *Instance) InitializeContext(handle ContextHandle, typ ContextType, locality uint32) (int, error) {
	return d.activate(handle, typ, locality, RootIndex)
}

// DeriveContext activates a child of the context at parentIdx and links
// it into the parent's children bitmap.
func (d *Instance) DeriveContext(parentIdx int, handle ContextHandle, locality uint32) (int, error) {
	if parentIdx < 0 || parentIdx >= MaxHandles {
		return 0, ErrInternal
	}
	parent := &d.Contexts[parentIdx]
	if parent.State == ContextStateInactive {
		return 0, ErrInvalidHandle
	}
	idx, err := d.activate(handle, parent.Type, locality, uint8(parentIdx))
	if err != nil {
		return 0, err
	}
	parent.Children |= 1 << idx
	return idx, nil
}

func (d *Instance) activate(handle ContextHandle, typ ContextType, locality uint32, parentIdx uint8) (int, error) {
	idx, err := d.nextInactiveContext()
	if err != nil {
		return 0, err
	}
	d.Contexts[idx].Activate(handle, typ, locality, parentIdx)
	if d.log != nil {
		d.log.WithFields(logrus.Fields{
			"slot":     idx,
			"locality": locality,
		}).Debug("activated context")
	}
	return idx, nil
}

func (d *Instance) nextInactiveContext() (int, error) {
	for i := range d.Contexts {
		if d.Contexts[i].State == ContextStateInactive {
			return i, nil
		}
	}
	return 0, ErrMaxTCIs
}

// GetActiveContextPos resolves a handle to its slot index. The default
// handle is per-locality, so lookups of it are scoped to the caller's
// locality; named handles resolve globally and commands enforce
// locality themselves.
func (d *Instance) GetActiveContextPos(handle ContextHandle, locality uint32) (int, error) {
	for i := range d.Contexts {
		c := &d.Contexts[i]
		if c.State != ContextStateActive || !c.Handle.Equal(handle) {
			continue
		}
		if handle.IsDefault() && c.Locality != locality {
			continue
		}
		return i, nil
	}
	return 0, ErrInvalidHandle
}

// GetDescendants returns the transitive descendant closure of ctx as a
// bitmap over the context table. The walk is iterative over children
// bitmaps; a bit index past the table bounds is a corrupted table.
func (d *Instance) GetDescendants(ctx *Context) (uint32, error) {
	if ctx.State == ContextStateInactive {
		return 0, ErrInvalidHandle
	}

	var descendants uint32
	pending := ctx.Children
	for pending != 0 {
		idx := bits.TrailingZeros32(pending)
		pending &^= 1 << idx
		if idx >= MaxHandles {
			return 0, ErrInternal
		}
		descendants |= 1 << idx
		pending |= d.Contexts[idx].Children &^ descendants
	}
	return descendants, nil
}
