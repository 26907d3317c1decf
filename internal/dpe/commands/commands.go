// Package commands parses and executes DPE command messages.
//
// Every command is a little-endian header followed by a fixed-layout
// payload. Dispatch is a single switch over the command ID; each payload
// type implements CommandExecution.
package commands

import (
	"encoding/binary"

	"github.com/caliptra/dpe-go/internal/dpe"
	"github.com/caliptra/dpe-go/internal/profile"
)

// CommandMagic is the marker at the start of every command ("DPEC").
const CommandMagic uint32 = 0x44504543

// Command IDs. Only DestroyContext carries an implementation here; the
// rest are part of the wire vocabulary and reject with ErrInvalidCommand
// until implemented.
const (
	CommandGetProfile          uint32 = 0x01
	CommandInitializeContext   uint32 = 0x07
	CommandDeriveChild         uint32 = 0x08
	CommandCertifyKey          uint32 = 0x09
	CommandSign                uint32 = 0x0A
	CommandRotateContextHandle uint32 = 0x0E
	CommandDestroyContext      uint32 = 0x0F
	CommandGetCertificateChain uint32 = 0x80
)

// CommandHdrSize is the wire size of CommandHdr.
const CommandHdrSize = 12

// CommandHdr prefixes every command message.
type CommandHdr struct {
	Magic   uint32
	CmdID   uint32
	Profile uint32
}

// NewCommandHdr builds a header for the active profile.
func NewCommandHdr(cmdID uint32) CommandHdr {
	return CommandHdr{
		Magic:   CommandMagic,
		CmdID:   cmdID,
		Profile: uint32(profile.Current),
	}
}

// Bytes serializes the header in wire order.
func (h CommandHdr) Bytes() []byte {
	var buf [CommandHdrSize]byte
	binary.LittleEndian.PutUint32(buf[0:], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:], h.CmdID)
	binary.LittleEndian.PutUint32(buf[8:], h.Profile)
	return buf[:]
}

// CommandExecution is implemented by every parsed command payload.
type CommandExecution interface {
	Execute(d *dpe.Instance, locality uint32) (dpe.Response, error)
}

// ParseCommand validates the header and deserializes the payload for
// the command it announces.
func ParseCommand(data []byte) (CommandExecution, error) {
	if len(data) < CommandHdrSize {
		return nil, dpe.ErrInvalidCommand
	}

	hdr := CommandHdr{
		Magic:   binary.LittleEndian.Uint32(data[0:]),
		CmdID:   binary.LittleEndian.Uint32(data[4:]),
		Profile: binary.LittleEndian.Uint32(data[8:]),
	}
	if hdr.Magic != CommandMagic {
		return nil, dpe.ErrInvalidCommand
	}
	if hdr.Profile != uint32(profile.Current) {
		return nil, dpe.ErrInvalidArgument
	}

	payload := data[CommandHdrSize:]
	switch hdr.CmdID {
	case CommandDestroyContext:
		return parseDestroyCtx(payload)
	default:
		return nil, dpe.ErrInvalidCommand
	}
}
