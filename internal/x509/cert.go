package x509

import (
	"encoding/binary"

	"github.com/caliptra/dpe-go/internal/dpe"
	"github.com/caliptra/dpe-go/internal/profile"
)

// rdnSize returns the encoded size of a Name's RDN. If tagged, the
// outer SEQUENCE tag and length octets are included.
func rdnSize(name *Name, tagged bool) (int, error) {
	cnOIDSize, err := bytesSize(rdnCommonNameOID, true)
	if err != nil {
		return 0, err
	}
	cnValueSize, err := structureSize(len(name.CN), true)
	if err != nil {
		return 0, err
	}
	cnSeqSize, err := structureSize(cnOIDSize+cnValueSize, true)
	if err != nil {
		return 0, err
	}

	serialValueSize, err := structureSize(len(name.Serial), true)
	if err != nil {
		return 0, err
	}
	serialSeqSize, err := structureSize(cnOIDSize+serialValueSize, true)
	if err != nil {
		return 0, err
	}

	setLen, err := structureSize(cnSeqSize+serialSeqSize, true)
	if err != nil {
		return 0, err
	}
	return structureSize(setLen, tagged)
}

// eccAlgIDSize returns the encoded size of the profile's ECC
// AlgorithmIdentifier.
func eccAlgIDSize(tagged bool) (int, error) {
	ecdsaSize, err := bytesSize(profile.ECDSAOID, true)
	if err != nil {
		return 0, err
	}
	curveSize, err := bytesSize(profile.CurveOID, true)
	if err != nil {
		return 0, err
	}
	return structureSize(ecdsaSize+curveSize, tagged)
}

// validitySize returns the encoded size of the fixed Validity sequence.
func validitySize(tagged bool) (int, error) {
	nbSize, err := structureSize(len(notBefore), true)
	if err != nil {
		return 0, err
	}
	naSize, err := structureSize(len(notAfter), true)
	if err != nil {
		return 0, err
	}
	return structureSize(nbSize+naSize, tagged)
}

// ecdsaSubjectPubkeyInfoSize returns the encoded size of an ECC
// SubjectPublicKeyInfo.
func ecdsaSubjectPubkeyInfoSize(pubkey *EcdsaPub, tagged bool) (int, error) {
	pointSize := 1 + len(pubkey.X) + len(pubkey.Y)

	taggedPointSize, err := structureSize(pointSize, true)
	if err != nil {
		return 0, err
	}
	bitstringSize := 1 + taggedPointSize

	taggedBitstringSize, err := structureSize(bitstringSize, true)
	if err != nil {
		return 0, err
	}
	algIDSize, err := eccAlgIDSize(true)
	if err != nil {
		return 0, err
	}
	return structureSize(taggedBitstringSize+algIDSize, tagged)
}

// ecdsaSignatureSize returns the encoded size of the signatureValue BIT
// STRING holding the DER ECDSA-Sig-Value.
func ecdsaSignatureSize(sig *EcdsaSignature, tagged bool) (int, error) {
	rSize, err := integerBytesSize(sig.R[:], true)
	if err != nil {
		return 0, err
	}
	sSize, err := integerBytesSize(sig.S[:], true)
	if err != nil {
		return 0, err
	}
	seqSize, err := structureSize(rSize+sSize, true)
	if err != nil {
		return 0, err
	}

	// One extra byte for the unused-bits octet.
	return structureSize(1+seqSize, tagged)
}

// versionSize returns the encoded size of the EXPLICIT [0] version
// field.
func versionSize(tagged bool) (int, error) {
	intSize, err := integerSize(x509V3, true)
	if err != nil {
		return 0, err
	}
	return structureSize(intSize, tagged)
}

// fwidSize returns the encoded size of a DICE FWID structure for the
// given digest.
func fwidSize(digest []byte, tagged bool) (int, error) {
	hashOIDSize, err := structureSize(len(profile.HashOID), true)
	if err != nil {
		return 0, err
	}
	digestSize, err := structureSize(len(digest), true)
	if err != nil {
		return 0, err
	}
	return structureSize(hashOIDSize+digestSize, tagged)
}

// tcbInfoSize returns the encoded size of a tcg-dice-TcbInfo structure.
// Only the fields DPE emits are counted: fwids, vendorInfo, and type.
func tcbInfoSize(node *dpe.TciNodeData, tagged bool) (int, error) {
	singleFwidSize, err := fwidSize(node.TciCurrent[:], true)
	if err != nil {
		return 0, err
	}
	fwidsSize, err := structureSize(2*singleFwidSize, true)
	if err != nil {
		return 0, err
	}
	// vendorInfo and type are both 4-byte octet strings.
	wordSize, err := structureSize(4, true)
	if err != nil {
		return 0, err
	}
	return structureSize(fwidsSize+2*wordSize, tagged)
}

// multiTcbInfoSize returns the encoded size of the tcg-dice-MultiTcbInfo
// extension, including the extension OID and critical flag.
func multiTcbInfoSize(measurements *MeasurementData, tagged bool) (int, error) {
	if len(measurements.TciNodes) == 0 {
		return 0, dpe.ErrInternal
	}

	// All DPE TcbInfos are the same size.
	nodeSize, err := tcbInfoSize(measurements.TciNodes[0], true)
	if err != nil {
		return 0, err
	}
	tcbInfosSize := len(measurements.TciNodes) * nodeSize

	seqOfSize, err := structureSize(tcbInfosSize, true)
	if err != nil {
		return 0, err
	}

	oidSize, err := structureSize(len(multiTcbInfoOID), true)
	if err != nil {
		return 0, err
	}
	criticalSize, err := structureSize(1, true)
	if err != nil {
		return 0, err
	}
	valueSize, err := structureSize(seqOfSize, true)
	if err != nil {
		return 0, err
	}

	return structureSize(oidSize+criticalSize+valueSize, tagged)
}

// extensionsSize returns the encoded size of the TBS extensions field.
func extensionsSize(measurements *MeasurementData, tagged bool) (int, error) {
	size, err := multiTcbInfoSize(measurements, true)
	if err != nil {
		return 0, err
	}

	// Extensions is EXPLICIT, so the inner SEQUENCE OF keeps its own tag.
	size, err = structureSize(size, true)
	if err != nil {
		return 0, err
	}
	return structureSize(size, tagged)
}

// tbsSize returns the encoded size of the TBSCertificate.
func tbsSize(serialNumber []byte, issuerName, subjectName *Name, pubkey *EcdsaPub, measurements *MeasurementData, tagged bool) (int, error) {
	version, err := versionSize(true)
	if err != nil {
		return 0, err
	}
	serial, err := integerBytesSize(serialNumber, true)
	if err != nil {
		return 0, err
	}
	algID, err := eccAlgIDSize(true)
	if err != nil {
		return 0, err
	}
	issuer, err := rdnSize(issuerName, true)
	if err != nil {
		return 0, err
	}
	validity, err := validitySize(true)
	if err != nil {
		return 0, err
	}
	subject, err := rdnSize(subjectName, true)
	if err != nil {
		return 0, err
	}
	spki, err := ecdsaSubjectPubkeyInfoSize(pubkey, true)
	if err != nil {
		return 0, err
	}
	extensions, err := extensionsSize(measurements, true)
	if err != nil {
		return 0, err
	}

	return structureSize(version+serial+algID+issuer+validity+subject+spki+extensions, tagged)
}

// encodeRdn DER-encodes a Name as a RelativeDistinguishedName with
// CommonName and SerialNumber attributes.
//
//	RelativeDistinguishedName ::=
//	    SET SIZE (1..MAX) OF AttributeTypeAndValue
//
//	AttributeTypeAndValue ::= SEQUENCE {
//	    type     AttributeType,
//	    value    AttributeValue }
//
// Both values are PrintableStrings.
func (w *CertWriter) encodeRdn(name *Name) (int, error) {
	cnOIDSize, err := structureSize(len(rdnCommonNameOID), true)
	if err != nil {
		return 0, err
	}
	cnValueSize, err := structureSize(len(name.CN), true)
	if err != nil {
		return 0, err
	}
	cnSize := cnOIDSize + cnValueSize

	serialValueSize, err := structureSize(len(name.Serial), true)
	if err != nil {
		return 0, err
	}
	serialNumberSize := cnOIDSize + serialValueSize

	cnSeqSize, err := structureSize(cnSize, true)
	if err != nil {
		return 0, err
	}
	serialSeqSize, err := structureSize(serialNumberSize, true)
	if err != nil {
		return 0, err
	}
	rdnSetSize := cnSeqSize + serialSeqSize
	rdnSeqSize, err := structureSize(rdnSetSize, true)
	if err != nil {
		return 0, err
	}

	// RDN SEQUENCE OF
	bytesWritten, err := w.encodeTagField(sequenceOfTag)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(rdnSeqSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// RDN SET
	n, err = w.encodeTagField(setOfTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(rdnSetSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// CN SEQUENCE
	n, err = w.encodeTagField(sequenceTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(cnSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeOID(rdnCommonNameOID)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodePrintableString(name.CN)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// SERIALNUMBER SEQUENCE
	n, err = w.encodeTagField(sequenceTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(serialNumberSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeOID(rdnSerialNumberOID)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodePrintableString(name.Serial)
	bytesWritten += n
	return bytesWritten, err
}

// encodeEccAlgID DER-encodes the AlgorithmIdentifier for the active
// profile's signing suite.
//
//	AlgorithmIdentifier ::= SEQUENCE {
//	    algorithm   OBJECT IDENTIFIER,
//	    parameters  ECParameters }
//
//	ECParameters ::= CHOICE {
//	    namedCurve  OBJECT IDENTIFIER }
func (w *CertWriter) encodeEccAlgID() (int, error) {
	seqSize, err := eccAlgIDSize(false)
	if err != nil {
		return 0, err
	}

	bytesWritten, err := w.encodeTagField(sequenceTag)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(seqSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeOID(profile.ECDSAOID)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeOID(profile.CurveOID)
	bytesWritten += n
	return bytesWritten, err
}

// encodeValidity DER-encodes the fixed never-expiring Validity.
func (w *CertWriter) encodeValidity() (int, error) {
	seqSize, err := validitySize(false)
	if err != nil {
		return 0, err
	}

	bytesWritten, err := w.encodeTagField(sequenceTag)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(seqSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	n, err = w.encodeTagField(generalizeTimeTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(len(notBefore))
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeString(notBefore)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	n, err = w.encodeTagField(generalizeTimeTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(len(notAfter))
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeString(notAfter)
	bytesWritten += n
	return bytesWritten, err
}

// encodeEcdsaSubjectPubkeyInfo DER-encodes the SubjectPublicKeyInfo.
//
//	SubjectPublicKeyInfo ::= SEQUENCE {
//	    algorithm         AlgorithmIdentifier,
//	    subjectPublicKey  BIT STRING }
//
// The BIT STRING holds an OCTET STRING wrapping the uncompressed EC
// point. Consumers must accept that nesting as-is.
func (w *CertWriter) encodeEcdsaSubjectPubkeyInfo(pubkey *EcdsaPub) (int, error) {
	pointSize := 1 + len(pubkey.X) + len(pubkey.Y)
	taggedPointSize, err := structureSize(pointSize, true)
	if err != nil {
		return 0, err
	}
	bitstringSize := 1 + taggedPointSize

	taggedBitstringSize, err := structureSize(bitstringSize, true)
	if err != nil {
		return 0, err
	}
	algIDSize, err := eccAlgIDSize(true)
	if err != nil {
		return 0, err
	}
	seqSize := taggedBitstringSize + algIDSize

	bytesWritten, err := w.encodeTagField(sequenceTag)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(seqSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeEccAlgID()
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	n, err = w.encodeTagField(bitStringTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(bitstringSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	// All bits of the subject public key are used.
	n, err = w.encodeByte(0)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	n, err = w.encodeTagField(octetStringTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(pointSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeByte(0x4)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeBytes(pubkey.X[:])
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeBytes(pubkey.Y[:])
	bytesWritten += n
	return bytesWritten, err
}

// encodeEcdsaSignature DER-encodes the signatureValue BIT STRING.
//
//	ECDSA-Sig-Value ::= SEQUENCE {
//	    r  INTEGER,
//	    s  INTEGER }
func (w *CertWriter) encodeEcdsaSignature(sig *EcdsaSignature) (int, error) {
	rSize, err := integerBytesSize(sig.R[:], true)
	if err != nil {
		return 0, err
	}
	sSize, err := integerBytesSize(sig.S[:], true)
	if err != nil {
		return 0, err
	}
	seqSize := rSize + sSize

	bytesWritten, err := w.encodeTagField(bitStringTag)
	if err != nil {
		return bytesWritten, err
	}
	bitstringSize, err := structureSize(1+seqSize, true)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(bitstringSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	// Unused bits.
	n, err = w.encodeByte(0)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	n, err = w.encodeTagField(sequenceTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(seqSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeIntegerBytes(sig.R[:])
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeIntegerBytes(sig.S[:])
	bytesWritten += n
	return bytesWritten, err
}

// encodeVersion DER-encodes the EXPLICIT [0] X.509 v3 version field.
func (w *CertWriter) encodeVersion() (int, error) {
	bytesWritten, err := w.encodeByte(contextSpecific | constructed)
	if err != nil {
		return bytesWritten, err
	}
	intSize, err := integerSize(x509V3, true)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(intSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeInteger(x509V3)
	bytesWritten += n
	return bytesWritten, err
}

// encodeFwid DER-encodes one DICE FWID.
//
//	FWID ::= SEQUENCE {
//	    hashAlg  OBJECT IDENTIFIER,
//	    digest   OCTET STRING }
func (w *CertWriter) encodeFwid(tci *dpe.TciMeasurement) (int, error) {
	seqSize, err := fwidSize(tci[:], false)
	if err != nil {
		return 0, err
	}

	bytesWritten, err := w.encodeByte(sequenceTag)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(seqSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// hashAlg OID
	n, err = w.encodeByte(oidTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(len(profile.HashOID))
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeBytes(profile.HashOID)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// digest OCTET STRING
	n, err = w.encodeByte(octetStringTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(len(tci))
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeBytes(tci[:])
	bytesWritten += n
	return bytesWritten, err
}

// encodeTcbInfo DER-encodes a tcg-dice-TcbInfo structure.
//
// TcbInfo uses implicitly tagged optional fields: the identifier octet
// carries the context-specific bit and the field number, with the
// constructed bit OR-ed in for SEQUENCE-shaped fields. Only fwids [6],
// vendorInfo [8], and type [9] are emitted.
func (w *CertWriter) encodeTcbInfo(node *dpe.TciNodeData) (int, error) {
	seqSize, err := tcbInfoSize(node, false)
	if err != nil {
		return 0, err
	}

	bytesWritten, err := w.encodeByte(sequenceTag)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(seqSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// fwids SEQUENCE OF, IMPLICIT [6] constructed
	singleFwidSize, err := fwidSize(node.TciCurrent[:], true)
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeByte(contextSpecific | constructed | 0x06)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(singleFwidSize * 2)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// fwid[0] current measurement
	n, err = w.encodeFwid(&node.TciCurrent)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// fwid[1] journey measurement
	n, err = w.encodeFwid(&node.TciCumulative)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// vendorInfo OCTET STRING, IMPLICIT [8] primitive
	vinfo := "USER"
	if node.FlagIsInternal() {
		vinfo = "VNDR"
	}
	n, err = w.encodeByte(contextSpecific | 0x08)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(len(vinfo))
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeString(vinfo)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// type OCTET STRING, IMPLICIT [9] primitive
	var tciType [4]byte
	binary.BigEndian.PutUint32(tciType[:], node.TciType)
	n, err = w.encodeByte(contextSpecific | 0x09)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(len(tciType))
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeBytes(tciType[:])
	bytesWritten += n
	return bytesWritten, err
}

// encodeMultiTcbInfo DER-encodes the tcg-dice-MultiTcbInfo extension:
// the extension OID, the critical flag, and an OCTET STRING holding the
// SEQUENCE OF TcbInfo.
func (w *CertWriter) encodeMultiTcbInfo(measurements *MeasurementData) (int, error) {
	extSize, err := multiTcbInfoSize(measurements, false)
	if err != nil {
		return 0, err
	}

	// Extension SEQUENCE
	bytesWritten, err := w.encodeByte(sequenceTag)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(extSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeOID(multiTcbInfoOID)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// critical = TRUE
	n, err = w.encodeByte(boolTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(1)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeByte(0xFF)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	nodeSize, err := tcbInfoSize(measurements.TciNodes[0], true)
	if err != nil {
		return bytesWritten, err
	}
	tcbInfosSize := nodeSize * len(measurements.TciNodes)

	// extnValue OCTET STRING
	n, err = w.encodeByte(octetStringTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	seqOfSize, err := structureSize(tcbInfosSize, true)
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(seqOfSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// MultiTcbInfo SEQUENCE OF
	n, err = w.encodeByte(sequenceOfTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(tcbInfosSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	for _, node := range measurements.TciNodes {
		n, err = w.encodeTcbInfo(node)
		bytesWritten += n
		if err != nil {
			return bytesWritten, err
		}
	}

	return bytesWritten, nil
}

// encodeExtensions DER-encodes the EXPLICIT [3] extensions field
// holding the SEQUENCE OF Extension.
func (w *CertWriter) encodeExtensions(measurements *MeasurementData) (int, error) {
	bytesWritten, err := w.encodeByte(contextSpecific | constructed | 0x03)
	if err != nil {
		return bytesWritten, err
	}
	extSize, err := extensionsSize(measurements, false)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(extSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// SEQUENCE OF Extension
	n, err = w.encodeByte(sequenceOfTag)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	mtcbSize, err := multiTcbInfoSize(measurements, true)
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeSizeField(mtcbSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}
	n, err = w.encodeMultiTcbInfo(measurements)
	bytesWritten += n
	return bytesWritten, err
}

// EncodeECDSATBS DER-encodes the TBSCertificate. Callers that sign the
// TBS externally use this, then call EncodeECDSACertificate on a fresh
// writer with the resulting signature.
//
//	TBSCertificate ::= SEQUENCE {
//	    version         [0] EXPLICIT Version DEFAULT v1,
//	    serialNumber        CertificateSerialNumber,
//	    signature           AlgorithmIdentifier,
//	    issuer              Name,
//	    validity            Validity,
//	    subject             Name,
//	    subjectPublicKeyInfo SubjectPublicKeyInfo,
//	    extensions      [3] EXPLICIT Extensions OPTIONAL }
//
// Neither unique-identifier field is emitted.
func (w *CertWriter) EncodeECDSATBS(serialNumber []byte, issuerName, subjectName *Name, pubkey *EcdsaPub, measurements *MeasurementData) (int, error) {
	size, err := tbsSize(serialNumber, issuerName, subjectName, pubkey, measurements, false)
	if err != nil {
		return 0, err
	}

	// TBS SEQUENCE
	bytesWritten, err := w.encodeTagField(sequenceTag)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(size)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// version
	n, err = w.encodeVersion()
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// serialNumber
	n, err = w.encodeIntegerBytes(serialNumber)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// signature
	n, err = w.encodeEccAlgID()
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// issuer
	n, err = w.encodeRdn(issuerName)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// validity
	n, err = w.encodeValidity()
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// subject
	n, err = w.encodeRdn(subjectName)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// subjectPublicKeyInfo
	n, err = w.encodeEcdsaSubjectPubkeyInfo(pubkey)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// extensions
	n, err = w.encodeExtensions(measurements)
	bytesWritten += n
	return bytesWritten, err
}

// EncodeECDSACertificate DER-encodes a complete ECDSA X.509 certificate
// and returns the number of bytes written.
//
//	Certificate ::= SEQUENCE {
//	    tbsCertificate      TBSCertificate,
//	    signatureAlgorithm  AlgorithmIdentifier,
//	    signatureValue      BIT STRING }
func (w *CertWriter) EncodeECDSACertificate(serialNumber []byte, issuerName, subjectName *Name, pubkey *EcdsaPub, measurements *MeasurementData, sig *EcdsaSignature) (int, error) {
	tbs, err := tbsSize(serialNumber, issuerName, subjectName, pubkey, measurements, true)
	if err != nil {
		return 0, err
	}
	algID, err := eccAlgIDSize(true)
	if err != nil {
		return 0, err
	}
	sigSize, err := ecdsaSignatureSize(sig, true)
	if err != nil {
		return 0, err
	}
	certSize := tbs + algID + sigSize

	// Certificate SEQUENCE
	bytesWritten, err := w.encodeTagField(sequenceTag)
	if err != nil {
		return bytesWritten, err
	}
	n, err := w.encodeSizeField(certSize)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// TBS
	n, err = w.EncodeECDSATBS(serialNumber, issuerName, subjectName, pubkey, measurements)
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// Alg ID
	n, err = w.encodeEccAlgID()
	bytesWritten += n
	if err != nil {
		return bytesWritten, err
	}

	// Signature
	n, err = w.encodeEcdsaSignature(sig)
	bytesWritten += n
	return bytesWritten, err
}
