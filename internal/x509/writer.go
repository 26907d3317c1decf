// Package x509 is a deterministic DER encoder for DPE attestation leaf
// certificates.
//
// The encoder writes a well-formed X.509v3 ECDSA certificate carrying a
// TCG DICE MultiTcbInfo extension into a caller-supplied buffer. It is
// two-pass without buffering: every structure has a size query and an
// emitter that agree byte-for-byte, so enclosing lengths are computed
// bottom-up and bytes are emitted top-down in a single forward pass.
// Nothing is heap-allocated and no byte is written twice.
package x509

import (
	"encoding/binary"

	"github.com/caliptra/dpe-go/internal/dpe"
)

// ASN.1 identifier octets used by the encoder.
const (
	boolTag            = 0x01
	integerTag         = 0x02
	bitStringTag       = 0x03
	octetStringTag     = 0x04
	oidTag             = 0x06
	printableStringTag = 0x13
	generalizeTimeTag  = 0x18
	sequenceTag        = 0x30
	sequenceOfTag      = 0x30
	setOfTag           = 0x31

	// contextSpecific marks implicit and explicit context tags;
	// constructed is OR-ed in for SET{OF} and SEQUENCE{OF} shaped
	// children.
	contextSpecific = 0x80
	constructed     = 0x20
)

// CertWriter is a cursor over a borrowed output buffer. The buffer is
// exclusively the writer's for the duration of one encode; after a
// successful encode the first N returned bytes are the DER artifact, and
// after a failed encode the contents are undefined.
type CertWriter struct {
	certificate []byte
	offset      int
}

// NewCertWriter borrows cert as the output buffer.
func NewCertWriter(cert []byte) *CertWriter {
	return &CertWriter{certificate: cert}
}

// Offset returns the number of bytes written so far.
func (w *CertWriter) Offset() int {
	return w.offset
}

// sizeWidth returns the number of octets the ASN.1 length field needs.
func sizeWidth(size int) (int, error) {
	switch {
	case size <= 127:
		return 1, nil
	case size <= 255:
		return 2, nil
	case size <= 65535:
		return 3, nil
	default:
		return 0, dpe.ErrInternal
	}
}

// structureSize returns the encoded size of a structure with dataSize
// content bytes. If tagged, the tag and length octets are included.
func structureSize(dataSize int, tagged bool) (int, error) {
	if !tagged {
		return dataSize, nil
	}
	width, err := sizeWidth(dataSize)
	if err != nil {
		return 0, err
	}
	return 1 + width + dataSize, nil
}

// integerBytesSize returns the encoded size of a big-endian byte buffer
// as an ASN.1 INTEGER: leading zeros are stripped (never the last byte),
// and one disambiguating zero is counted back in when the first retained
// byte has its high bit set.
func integerBytesSize(integer []byte, tagged bool) (int, error) {
	size := len(integer)
	for i, b := range integer {
		if b == 0 && i != len(integer)-1 {
			size--
		} else if b&0x80 != 0 {
			size++
			break
		} else {
			break
		}
	}
	return structureSize(size, tagged)
}

// integerSize returns the encoded size of integer as an ASN.1 INTEGER.
func integerSize(integer uint64, tagged bool) (int, error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], integer)
	return integerBytesSize(buf[:], tagged)
}

// bytesSize returns the encoded size of a raw bytes field: OCTET STRING,
// OID, PrintableString and friends.
func bytesSize(b []byte, tagged bool) (int, error) {
	return structureSize(len(b), tagged)
}

// remaining returns the unwritten capacity, saturating at zero.
func (w *CertWriter) remaining() int {
	if w.offset > len(w.certificate) {
		return 0
	}
	return len(w.certificate) - w.offset
}

// encodeBytes writes all of b to the output buffer.
func (w *CertWriter) encodeBytes(b []byte) (int, error) {
	size := len(b)
	if size > w.remaining() {
		return 0, dpe.ErrBufferOverflow
	}
	copy(w.certificate[w.offset:w.offset+size], b)
	w.offset += size
	return size, nil
}

// encodeString writes all of s to the output buffer without copying it
// through an intermediate allocation.
func (w *CertWriter) encodeString(s string) (int, error) {
	size := len(s)
	if size > w.remaining() {
		return 0, dpe.ErrBufferOverflow
	}
	copy(w.certificate[w.offset:w.offset+size], s)
	w.offset += size
	return size, nil
}

// encodeByte writes a single byte to the output buffer.
func (w *CertWriter) encodeByte(b byte) (int, error) {
	if w.offset >= len(w.certificate) {
		return 0, dpe.ErrBufferOverflow
	}
	w.certificate[w.offset] = b
	w.offset++
	return 1, nil
}

// encodeTagField DER-encodes the identifier octet of an ASN.1 type.
func (w *CertWriter) encodeTagField(tag byte) (int, error) {
	return w.encodeByte(tag)
}

// encodeSizeField DER-encodes the length octets of an ASN.1 type:
// short form up to 127, long form with one or two big-endian length
// bytes above that.
func (w *CertWriter) encodeSizeField(size int) (int, error) {
	width, err := sizeWidth(size)
	if err != nil {
		return 0, err
	}

	if width == 1 {
		if _, err := w.encodeByte(byte(size)); err != nil {
			return 0, err
		}
		return width, nil
	}

	rem := width - 1
	if _, err := w.encodeByte(0x80 | byte(rem)); err != nil {
		return 0, err
	}
	for i := rem - 1; i >= 0; i-- {
		if _, err := w.encodeByte(byte(size >> (i * 8))); err != nil {
			return 0, err
		}
	}
	return width, nil
}

// encodeIntegerBytes DER-encodes a big-endian byte buffer as an ASN.1
// INTEGER, canonicalizing per the same rule integerBytesSize counts by.
func (w *CertWriter) encodeIntegerBytes(integer []byte) (int, error) {
	bytesWritten, err := w.encodeTagField(integerTag)
	if err != nil {
		return bytesWritten, err
	}

	size, err := integerBytesSize(integer, false)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(size)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// Where to start reading from integer (strips leading zeros).
	start := len(integer) - size
	if start < 0 {
		start = 0
	}

	// If size grew past the input, a zero byte must be prepended.
	if size > len(integer) {
		n, err := w.encodeByte(0)
		bytesWritten += n
		if err != nil {
			return bytesWritten, err
		}
	}

	n, err = w.encodeBytes(integer[start:])
	bytesWritten += n
	return bytesWritten, err
}

// encodeInteger DER-encodes integer as an ASN.1 INTEGER.
func (w *CertWriter) encodeInteger(integer uint64) (int, error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], integer)
	return w.encodeIntegerBytes(buf[:])
}

// encodeOID DER-encodes a pre-encoded OID body.
func (w *CertWriter) encodeOID(oid []byte) (int, error) {
	bytesWritten, err := w.encodeTagField(oidTag)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(len(oid))
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeBytes(oid)
	bytesWritten += n
	return bytesWritten, err
}

// encodePrintableString DER-encodes s as a PrintableString.
func (w *CertWriter) encodePrintableString(s string) (int, error) {
	bytesWritten, err := w.encodeTagField(printableStringTag)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(len(s))
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeString(s)
	bytesWritten += n
	return bytesWritten, err
}
