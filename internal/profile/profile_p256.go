//go:build !dpe_p384

package profile

// Active suite: NIST P-256 with SHA-256.
const (
	Current    = P256SHA256
	EccIntSize = 32
	HashSize   = 32
)

var (
	// ecdsa-with-SHA256 (1.2.840.10045.4.3.2)
	ECDSAOID = []byte{0x2A, 0x86, 0x48, 0xCE, 0x3D, 0x04, 0x03, 0x02}
	// prime256v1 (1.2.840.10045.3.1.7)
	CurveOID = []byte{0x2A, 0x86, 0x48, 0xCE, 0x3D, 0x03, 0x01, 0x07}
	// sha256 (2.16.840.1.101.3.4.2.1)
	HashOID = []byte{0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01}
)
