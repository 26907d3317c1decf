// Package profile selects the DPE algorithm suite at build time.
//
// The default build uses NIST P-256 with SHA-256. Building with the
// dpe_p384 tag switches the whole module to P-384 with SHA-384. The
// profile fixes the ECC integer width, the measurement digest width, and
// the DER object identifiers used by the certificate encoder.
package profile

import "fmt"

// Profile identifies an algorithm suite on the wire.
type Profile uint32

const (
	P256SHA256 Profile = 1
	P384SHA384 Profile = 2
)

func (p Profile) String() string {
	switch p {
	case P256SHA256:
		return "DPE_PROFILE_P256_SHA256"
	case P384SHA384:
		return "DPE_PROFILE_P384_SHA384"
	default:
		return fmt.Sprintf("DPE_PROFILE_UNKNOWN(%d)", uint32(p))
	}
}
