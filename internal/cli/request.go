package cli

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ccoveille/go-safecast"
	"gopkg.in/yaml.v3"

	"github.com/caliptra/dpe-go/internal/dpe"
	"github.com/caliptra/dpe-go/internal/profile"
	"github.com/caliptra/dpe-go/internal/x509"
)

// NameRequest is the YAML form of a certificate Name.
type NameRequest struct {
	CommonName   string `yaml:"commonName"`
	SerialNumber string `yaml:"serialNumber"`
}

// MeasurementRequest is the YAML form of one TCI node. Digest fields
// are hex strings of the profile hash length; tciType accepts decimal
// or 0x-prefixed hex.
type MeasurementRequest struct {
	TciType       string `yaml:"tciType"`
	TciCurrent    string `yaml:"tciCurrent"`
	TciCumulative string `yaml:"tciCumulative"`
	Internal      bool   `yaml:"internal"`
}

// PointRequest is the YAML form of the subject public key coordinates.
type PointRequest struct {
	X string `yaml:"x"`
	Y string `yaml:"y"`
}

// SignatureRequest is the YAML form of the certificate signature.
type SignatureRequest struct {
	R string `yaml:"r"`
	S string `yaml:"s"`
}

// CertRequest is the on-disk request format consumed by encode-cert.
type CertRequest struct {
	SerialNumber string               `yaml:"serialNumber"`
	Issuer       NameRequest          `yaml:"issuer"`
	Subject      NameRequest          `yaml:"subject"`
	PublicKey    PointRequest         `yaml:"publicKey"`
	Signature    SignatureRequest     `yaml:"signature"`
	Measurements []MeasurementRequest `yaml:"measurements"`
}

// LoadCertRequest reads and parses a YAML certificate request.
func LoadCertRequest(path string) (*CertRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	req := &CertRequest{}
	if err := yaml.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	return req, nil
}

func decodeHexField(field, value string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
	if err != nil {
		return nil, fmt.Errorf("field %s is not valid hex: %w", field, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("field %s must not be empty", field)
	}
	return b, nil
}

func decodeFixedHexField(field, value string, size int) ([]byte, error) {
	b, err := decodeHexField(field, value)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, fmt.Errorf("field %s must be %d bytes for %s, got %d", field, size, profile.Current, len(b))
	}
	return b, nil
}

func parseTciType(value string) (uint32, error) {
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(value, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing tciType %q: %w", value, err)
	}
	tciType, err := safecast.ToUint32(parsed)
	if err != nil {
		return 0, fmt.Errorf("tciType %q out of range: %w", value, err)
	}
	return tciType, nil
}

// EncoderInputs converts the request into the encoder's typed inputs.
type EncoderInputs struct {
	SerialNumber []byte
	Issuer       x509.Name
	Subject      x509.Name
	PublicKey    x509.EcdsaPub
	Signature    x509.EcdsaSignature
	Measurements x509.MeasurementData
	nodes        []dpe.TciNodeData
}

// Inputs validates the request and builds the encoder inputs.
func (r *CertRequest) Inputs() (*EncoderInputs, error) {
	in := &EncoderInputs{
		Issuer:  x509.Name{CN: r.Issuer.CommonName, Serial: r.Issuer.SerialNumber},
		Subject: x509.Name{CN: r.Subject.CommonName, Serial: r.Subject.SerialNumber},
	}

	serial, err := decodeHexField("serialNumber", r.SerialNumber)
	if err != nil {
		return nil, err
	}
	in.SerialNumber = serial

	x, err := decodeFixedHexField("publicKey.x", r.PublicKey.X, profile.EccIntSize)
	if err != nil {
		return nil, err
	}
	copy(in.PublicKey.X[:], x)
	y, err := decodeFixedHexField("publicKey.y", r.PublicKey.Y, profile.EccIntSize)
	if err != nil {
		return nil, err
	}
	copy(in.PublicKey.Y[:], y)

	sigR, err := decodeFixedHexField("signature.r", r.Signature.R, profile.EccIntSize)
	if err != nil {
		return nil, err
	}
	copy(in.Signature.R[:], sigR)
	sigS, err := decodeFixedHexField("signature.s", r.Signature.S, profile.EccIntSize)
	if err != nil {
		return nil, err
	}
	copy(in.Signature.S[:], sigS)

	if len(r.Measurements) == 0 {
		return nil, fmt.Errorf("at least one measurement is required")
	}
	in.nodes = make([]dpe.TciNodeData, len(r.Measurements))
	in.Measurements.TciNodes = make([]*dpe.TciNodeData, len(r.Measurements))
	for i, m := range r.Measurements {
		node := &in.nodes[i]

		node.TciType, err = parseTciType(m.TciType)
		if err != nil {
			return nil, err
		}
		current, err := decodeFixedHexField(fmt.Sprintf("measurements[%d].tciCurrent", i), m.TciCurrent, profile.HashSize)
		if err != nil {
			return nil, err
		}
		copy(node.TciCurrent[:], current)
		cumulative, err := decodeFixedHexField(fmt.Sprintf("measurements[%d].tciCumulative", i), m.TciCumulative, profile.HashSize)
		if err != nil {
			return nil, err
		}
		copy(node.TciCumulative[:], cumulative)
		if m.Internal {
			node.Flags |= dpe.FlagInternal
		}
		in.Measurements.TciNodes[i] = node
	}

	return in, nil
}
