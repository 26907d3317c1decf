package dpe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustHandle(t *testing.T) ContextHandle {
	t.Helper()
	handle, err := NewRandomContextHandle()
	require.NoError(t, err)
	return handle
}

func TestInitializeAndResolveContext(t *testing.T) {
	d := New(Support{}, nil)

	handle := mustHandle(t)
	idx, err := d.InitializeContext(handle, ContextTypeNormal, 1)
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Equal(t, ContextStateActive, d.Contexts[idx].State)
	require.Equal(t, uint8(RootIndex), d.Contexts[idx].ParentIdx)

	got, err := d.GetActiveContextPos(handle, 1)
	require.NoError(t, err)
	require.Equal(t, idx, got)

	_, err = d.GetActiveContextPos(mustHandle(t), 1)
	require.ErrorIs(t, err, ErrInvalidHandle)
}

func TestDefaultHandleIsPerLocality(t *testing.T) {
	d := New(Support{}, nil)

	idx0, err := d.InitializeContext(DefaultHandle, ContextTypeNormal, 0)
	require.NoError(t, err)
	idx1, err := d.InitializeContext(DefaultHandle, ContextTypeNormal, 1)
	require.NoError(t, err)

	got, err := d.GetActiveContextPos(DefaultHandle, 1)
	require.NoError(t, err)
	require.Equal(t, idx1, got)

	got, err = d.GetActiveContextPos(DefaultHandle, 0)
	require.NoError(t, err)
	require.Equal(t, idx0, got)
}

func TestDeriveContextLinksChildren(t *testing.T) {
	d := New(Support{}, nil)

	rootIdx, err := d.InitializeContext(mustHandle(t), ContextTypeNormal, 0)
	require.NoError(t, err)

	childIdx, err := d.DeriveContext(rootIdx, mustHandle(t), 0)
	require.NoError(t, err)
	require.Equal(t, uint32(1)<<childIdx, d.Contexts[rootIdx].Children)
	require.Equal(t, uint8(rootIdx), d.Contexts[childIdx].ParentIdx)

	_, err = d.DeriveContext(MaxHandles, mustHandle(t), 0)
	require.ErrorIs(t, err, ErrInternal)

	inactive := 5
	_, err = d.DeriveContext(inactive, mustHandle(t), 0)
	require.ErrorIs(t, err, ErrInvalidHandle)
}

func TestGetDescendants(t *testing.T) {
	d := New(Support{}, nil)

	root, err := d.InitializeContext(mustHandle(t), ContextTypeNormal, 0)
	require.NoError(t, err)
	c1, err := d.DeriveContext(root, mustHandle(t), 0)
	require.NoError(t, err)
	c2, err := d.DeriveContext(root, mustHandle(t), 0)
	require.NoError(t, err)
	g1, err := d.DeriveContext(c1, mustHandle(t), 0)
	require.NoError(t, err)

	descendants, err := d.GetDescendants(&d.Contexts[root])
	require.NoError(t, err)
	want := uint32(1)<<c1 | uint32(1)<<c2 | uint32(1)<<g1
	require.Equal(t, want, descendants)

	descendants, err = d.GetDescendants(&d.Contexts[g1])
	require.NoError(t, err)
	require.Zero(t, descendants)

	_, err = d.GetDescendants(&Context{})
	require.ErrorIs(t, err, ErrInvalidHandle)
}

func TestContextTableFillsUp(t *testing.T) {
	d := New(Support{}, nil)

	for i := 0; i < MaxHandles; i++ {
		_, err := d.InitializeContext(mustHandle(t), ContextTypeNormal, 0)
		require.NoError(t, err)
	}
	_, err := d.InitializeContext(mustHandle(t), ContextTypeNormal, 0)
	require.ErrorIs(t, err, ErrMaxTCIs)
}

func TestDestroyWipesMeasurements(t *testing.T) {
	d := New(Support{}, nil)

	idx, err := d.InitializeContext(mustHandle(t), ContextTypeNormal, 0)
	require.NoError(t, err)
	ctx := &d.Contexts[idx]
	ctx.TCI.TciType = 0x11223344
	ctx.TCI.TciCurrent[0] = 0xAB

	ctx.Destroy()
	require.Equal(t, ContextStateInactive, ctx.State)
	require.Equal(t, TciNodeData{}, ctx.TCI)

	// Destroying an inactive slot is a no-op.
	ctx.Destroy()
	require.Equal(t, ContextStateInactive, ctx.State)

	// The slot can be claimed again.
	_, err = d.InitializeContext(mustHandle(t), ContextTypeNormal, 0)
	require.NoError(t, err)
}

func TestErrorCodeText(t *testing.T) {
	require.Equal(t, "invalid context handle", ErrInvalidHandle.Error())
	require.Equal(t, NoError, CodeOf(nil))
	require.Equal(t, ErrInvalidLocality, CodeOf(ErrInvalidLocality))
}
