package dpe

import "github.com/caliptra/dpe-go/internal/profile"

// TciMeasurement is one measurement digest, sized by the active profile.
type TciMeasurement [profile.HashSize]byte

// TciNodeData flag bits.
const (
	// FlagInternal marks nodes extended by the DPE itself rather than by
	// a caller-supplied measurement.
	FlagInternal uint32 = 1 << 31
)

// TciNodeData is one measurement node of a context: the latest
// measurement, the running cumulative digest, and the caller-assigned
// type tag.
type TciNodeData struct {
	TciType       uint32
	TciCumulative TciMeasurement
	TciCurrent    TciMeasurement
	Flags         uint32
}

// FlagIsInternal reports whether the node was produced internally by the
// DPE. Internal nodes advertise vendor info "VNDR" in certificates,
// caller nodes advertise "USER".
func (t *TciNodeData) FlagIsInternal() bool {
	return t.Flags&FlagInternal != 0
}
