package commands

import (
	"encoding/binary"
	"math/bits"

	"github.com/caliptra/dpe-go/internal/dpe"
)

// DestroyCtxFlags is the flag word of a DestroyContext command. Bits
// 0-30 are reserved and not validated.
type DestroyCtxFlags uint32

// DestroyChildrenFlagMask selects destruction of the target's transitive
// descendants as well.
const DestroyChildrenFlagMask DestroyCtxFlags = 1 << 31

// DestroyCtxCmdSize is the wire size of the DestroyContext payload:
// a 16-byte handle followed by the 32-bit flag word, little-endian.
const DestroyCtxCmdSize = dpe.HandleSize + 4

// DestroyCtxCmd destroys a context and, optionally, every context
// derived from it.
type DestroyCtxCmd struct {
	Handle dpe.ContextHandle
	Flags  DestroyCtxFlags
}

func parseDestroyCtx(payload []byte) (*DestroyCtxCmd, error) {
	if len(payload) < DestroyCtxCmdSize {
		return nil, dpe.ErrInvalidArgument
	}
	cmd := &DestroyCtxCmd{}
	copy(cmd.Handle[:], payload[:dpe.HandleSize])
	cmd.Flags = DestroyCtxFlags(binary.LittleEndian.Uint32(payload[dpe.HandleSize:]))
	return cmd, nil
}

// Bytes serializes the payload in wire order.
func (c *DestroyCtxCmd) Bytes() []byte {
	var buf [DestroyCtxCmdSize]byte
	copy(buf[:], c.Handle[:])
	binary.LittleEndian.PutUint32(buf[dpe.HandleSize:], uint32(c.Flags))
	return buf[:]
}

func (c *DestroyCtxCmd) flagIsDestroyDescendants() bool {
	return c.Flags&DestroyChildrenFlagMask != 0
}

// Execute resolves the target context, checks the caller's locality, and
// destroys the target plus (if requested) its descendant closure. The
// walk is a bounded next-set-bit scan over the destroy bitmap; already
// inactive slots are untouched.
func (c *DestroyCtxCmd) Execute(d *dpe.Instance, locality uint32) (dpe.Response, error) {
	idx, err := d.GetActiveContextPos(c.Handle, locality)
	if err != nil {
		return nil, err
	}
	context := &d.Contexts[idx]
	// Make sure the command is coming from the right locality.
	if context.Locality != locality {
		return nil, dpe.ErrInvalidLocality
	}

	toDestroy := uint32(1) << idx
	if c.flagIsDestroyDescendants() {
		descendants, err := d.GetDescendants(context)
		if err != nil {
			return nil, err
		}
		toDestroy |= descendants
	}

	for mask := toDestroy; mask != 0; {
		i := bits.TrailingZeros32(mask)
		mask &^= 1 << i
		if i >= dpe.MaxHandles {
			break
		}
		if i >= len(d.Contexts) {
			return nil, dpe.ErrInternal
		}
		d.Contexts[i].Destroy()
	}

	return dpe.DestroyCtxResp{ResponseHdr: dpe.NewResponseHdr(dpe.NoError)}, nil
}
