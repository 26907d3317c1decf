package x509

import (
	"github.com/caliptra/dpe-go/internal/dpe"
	"github.com/caliptra/dpe-go/internal/profile"
)

// EcdsaSignature holds the two raw signature scalars, big-endian, sized
// by the active profile.
type EcdsaSignature struct {
	R [profile.EccIntSize]byte
	S [profile.EccIntSize]byte
}

// EcdsaPub is an uncompressed ECC public key: the two coordinates,
// big-endian, sized by the active profile.
type EcdsaPub struct {
	X [profile.EccIntSize]byte
	Y [profile.EccIntSize]byte
}

// Name is the pair of printable strings bound into a certificate
// subject or issuer RDN: a CommonName and a SerialNumber attribute.
type Name struct {
	CN     string
	Serial string
}

// MeasurementData is the ordered set of TCI nodes certified by one leaf
// certificate. TciNodes must not be empty.
type MeasurementData struct {
	Label    []byte
	TciNodes []*dpe.TciNodeData
}

const x509V3 uint64 = 2

var (
	rdnCommonNameOID   = []byte{0x55, 0x04, 0x03}
	rdnSerialNumberOID = []byte{0x55, 0x04, 0x05}

	// tcg-dice-MultiTcbInfo 2.23.133.5.4.5
	multiTcbInfoOID = []byte{0x67, 0x81, 0x05, 0x05, 0x04, 0x05}
)

// All DPE certs are valid from February 27th, 2023 00:00:00 until
// December 31st, 9999 23:59:59.
const (
	notBefore = "20230227000000Z"
	notAfter  = "99991231235959Z"
)
