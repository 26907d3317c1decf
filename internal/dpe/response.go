package dpe

import "github.com/caliptra/dpe-go/internal/profile"

// ResponseMagic is the marker at the start of every response ("DPER").
const ResponseMagic uint32 = 0x44504552

// ResponseHdr prefixes every command response. Status carries the
// ErrorCode wire value; NoError means the command succeeded.
type ResponseHdr struct {
	Magic   uint32
	Status  uint32
	Profile uint32
}

// NewResponseHdr builds a response header for the active profile.
func NewResponseHdr(status ErrorCode) ResponseHdr {
	return ResponseHdr{
		Magic:   ResponseMagic,
		Status:  uint32(status),
		Profile: uint32(profile.Current),
	}
}

// Response is implemented by all command response payloads.
type Response interface {
	Hdr() ResponseHdr
}

// DestroyCtxResp is the (header-only) response to a DestroyContext
// command.
type DestroyCtxResp struct {
	ResponseHdr
}

func (r DestroyCtxResp) Hdr() ResponseHdr { return r.ResponseHdr }
