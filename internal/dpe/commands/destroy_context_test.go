package commands

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caliptra/dpe-go/internal/dpe"
	"github.com/caliptra/dpe-go/internal/profile"
)

func mustHandle(t *testing.T) dpe.ContextHandle {
	t.Helper()
	handle, err := dpe.NewRandomContextHandle()
	require.NoError(t, err)
	return handle
}

// buildTree populates an instance with a root, two children, and one
// grandchild under the first child, all in the given locality.
func buildTree(t *testing.T, d *dpe.Instance, locality uint32) (handles []dpe.ContextHandle, slots []int) {
	t.Helper()

	rootHandle := mustHandle(t)
	root, err := d.InitializeContext(rootHandle, dpe.ContextTypeNormal, locality)
	require.NoError(t, err)

	c1Handle := mustHandle(t)
	c1, err := d.DeriveContext(root, c1Handle, locality)
	require.NoError(t, err)

	c2Handle := mustHandle(t)
	c2, err := d.DeriveContext(root, c2Handle, locality)
	require.NoError(t, err)

	g1Handle := mustHandle(t)
	g1, err := d.DeriveContext(c1, g1Handle, locality)
	require.NoError(t, err)

	return []dpe.ContextHandle{rootHandle, c1Handle, c2Handle, g1Handle}, []int{root, c1, c2, g1}
}

func TestDestroySelf(t *testing.T) {
	d := dpe.New(dpe.Support{}, nil)
	handles, slots := buildTree(t, d, 3)

	cmd := &DestroyCtxCmd{Handle: handles[1]}
	resp, err := cmd.Execute(d, 3)
	require.NoError(t, err)
	require.Equal(t, uint32(dpe.NoError), resp.Hdr().Status)
	require.Equal(t, uint32(profile.Current), resp.Hdr().Profile)

	// Only the target became inactive.
	require.Equal(t, dpe.ContextStateInactive, d.Contexts[slots[1]].State)
	require.Equal(t, dpe.ContextStateActive, d.Contexts[slots[0]].State)
	require.Equal(t, dpe.ContextStateActive, d.Contexts[slots[2]].State)
	require.Equal(t, dpe.ContextStateActive, d.Contexts[slots[3]].State)
}

func TestDestroySubtree(t *testing.T) {
	d := dpe.New(dpe.Support{}, nil)
	handles, slots := buildTree(t, d, 0)

	cmd := &DestroyCtxCmd{Handle: handles[0], Flags: DestroyChildrenFlagMask}
	_, err := cmd.Execute(d, 0)
	require.NoError(t, err)

	for _, slot := range slots {
		require.Equal(t, dpe.ContextStateInactive, d.Contexts[slot].State)
	}
}

func TestDestroyChildSubtreeKeepsSiblings(t *testing.T) {
	d := dpe.New(dpe.Support{}, nil)
	handles, slots := buildTree(t, d, 0)

	cmd := &DestroyCtxCmd{Handle: handles[1], Flags: DestroyChildrenFlagMask}
	_, err := cmd.Execute(d, 0)
	require.NoError(t, err)

	require.Equal(t, dpe.ContextStateInactive, d.Contexts[slots[1]].State)
	require.Equal(t, dpe.ContextStateInactive, d.Contexts[slots[3]].State)
	require.Equal(t, dpe.ContextStateActive, d.Contexts[slots[0]].State)
	require.Equal(t, dpe.ContextStateActive, d.Contexts[slots[2]].State)
}

func TestDestroyWrongLocality(t *testing.T) {
	d := dpe.New(dpe.Support{}, nil)
	handles, slots := buildTree(t, d, 7)

	cmd := &DestroyCtxCmd{Handle: handles[0], Flags: DestroyChildrenFlagMask}
	_, err := cmd.Execute(d, 8)
	require.ErrorIs(t, err, dpe.ErrInvalidLocality)

	// Nothing was mutated.
	for _, slot := range slots {
		require.Equal(t, dpe.ContextStateActive, d.Contexts[slot].State)
	}
}

func TestDestroyUnknownHandle(t *testing.T) {
	d := dpe.New(dpe.Support{}, nil)
	buildTree(t, d, 0)

	cmd := &DestroyCtxCmd{Handle: mustHandle(t)}
	_, err := cmd.Execute(d, 0)
	require.ErrorIs(t, err, dpe.ErrInvalidHandle)
}

func TestDestroyIdempotentOverInactiveDescendants(t *testing.T) {
	d := dpe.New(dpe.Support{}, nil)
	handles, slots := buildTree(t, d, 0)

	// Destroy the grandchild first, then the whole subtree. The second
	// destroy must not care that part of the closure is already gone.
	_, err := (&DestroyCtxCmd{Handle: handles[3]}).Execute(d, 0)
	require.NoError(t, err)

	_, err = (&DestroyCtxCmd{Handle: handles[0], Flags: DestroyChildrenFlagMask}).Execute(d, 0)
	require.NoError(t, err)
	for _, slot := range slots {
		require.Equal(t, dpe.ContextStateInactive, d.Contexts[slot].State)
	}
}

func TestDestroyReservedFlagBitsIgnored(t *testing.T) {
	d := dpe.New(dpe.Support{}, nil)
	handles, slots := buildTree(t, d, 0)

	cmd := &DestroyCtxCmd{Handle: handles[2], Flags: DestroyCtxFlags(0x12345678)}
	_, err := cmd.Execute(d, 0)
	require.NoError(t, err)
	require.Equal(t, dpe.ContextStateInactive, d.Contexts[slots[2]].State)
	require.Equal(t, dpe.ContextStateActive, d.Contexts[slots[0]].State)
}

func TestParseCommandRoundTrip(t *testing.T) {
	want := &DestroyCtxCmd{
		Handle: mustHandle(t),
		Flags:  DestroyCtxFlags(0x12345678),
	}

	wire := append(NewCommandHdr(CommandDestroyContext).Bytes(), want.Bytes()...)
	parsed, err := ParseCommand(wire)
	require.NoError(t, err)
	require.Equal(t, want, parsed)
}

func TestParseCommandRejectsBadInput(t *testing.T) {
	valid := append(NewCommandHdr(CommandDestroyContext).Bytes(), (&DestroyCtxCmd{}).Bytes()...)

	_, err := ParseCommand(valid[:CommandHdrSize-1])
	require.ErrorIs(t, err, dpe.ErrInvalidCommand)

	badMagic := append([]byte{}, valid...)
	badMagic[0] ^= 0xFF
	_, err = ParseCommand(badMagic)
	require.ErrorIs(t, err, dpe.ErrInvalidCommand)

	badProfile := append([]byte{}, valid...)
	badProfile[8] ^= 0xFF
	_, err = ParseCommand(badProfile)
	require.ErrorIs(t, err, dpe.ErrInvalidArgument)

	unknown := append(NewCommandHdr(CommandCertifyKey).Bytes(), (&DestroyCtxCmd{}).Bytes()...)
	_, err = ParseCommand(unknown)
	require.ErrorIs(t, err, dpe.ErrInvalidCommand)

	short := append(NewCommandHdr(CommandDestroyContext).Bytes(), 0x01)
	_, err = ParseCommand(short)
	require.ErrorIs(t, err, dpe.ErrInvalidArgument)
}
