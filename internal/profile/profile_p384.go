//go:build dpe_p384

package profile

// Active suite: NIST P-384 with SHA-384.
const (
	Current    = P384SHA384
	EccIntSize = 48
	HashSize   = 48
)

var (
	// ecdsa-with-SHA384 (1.2.840.10045.4.3.3)
	ECDSAOID = []byte{0x2A, 0x86, 0x48, 0xCE, 0x3D, 0x04, 0x03, 0x03}
	// secp384r1 (1.3.132.0.34)
	CurveOID = []byte{0x2B, 0x81, 0x04, 0x00, 0x22}
	// sha384 (2.16.840.1.101.3.4.2.2)
	HashOID = []byte{0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02}
)
