package cli

import (
	stdx509 "crypto/x509"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caliptra/dpe-go/internal/profile"
)

func writeRequestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func validRequestYAML() string {
	digest := strings.Repeat("aa", profile.HashSize)
	coord := strings.Repeat("bb", profile.EccIntSize)
	return `
serialNumber: "1f1f1f1f1f1f1f1f1f1f1f1f1f1f1f1f1f1f1f1f"
issuer:
  commonName: "Caliptra Alias"
  serialNumber: "0x00000000"
subject:
  commonName: "DPE Leaf"
  serialNumber: "0x00000000"
publicKey:
  x: "` + coord + `"
  y: "` + coord + `"
signature:
  r: "` + coord + `"
  s: "` + coord + `"
measurements:
  - tciType: "0x11223344"
    tciCurrent: "` + digest + `"
    tciCumulative: "` + digest + `"
    internal: true
`
}

func TestLoadCertRequest(t *testing.T) {
	path := writeRequestFile(t, validRequestYAML())

	req, err := LoadCertRequest(path)
	require.NoError(t, err)
	require.Equal(t, "Caliptra Alias", req.Issuer.CommonName)
	require.Equal(t, "DPE Leaf", req.Subject.CommonName)
	require.Len(t, req.Measurements, 1)

	in, err := req.Inputs()
	require.NoError(t, err)
	require.Len(t, in.SerialNumber, 20)
	require.Equal(t, uint32(0x11223344), in.Measurements.TciNodes[0].TciType)
	require.True(t, in.Measurements.TciNodes[0].FlagIsInternal())
	require.Equal(t, byte(0xBB), in.PublicKey.X[0])
	require.Equal(t, byte(0xAA), in.Measurements.TciNodes[0].TciCurrent[0])
}

func TestCertRequestValidation(t *testing.T) {
	base := func() *CertRequest {
		req, err := LoadCertRequest(writeRequestFile(t, validRequestYAML()))
		require.NoError(t, err)
		return req
	}

	req := base()
	req.SerialNumber = "not-hex"
	_, err := req.Inputs()
	require.ErrorContains(t, err, "serialNumber")

	req = base()
	req.PublicKey.X = "aabb"
	_, err = req.Inputs()
	require.ErrorContains(t, err, "publicKey.x")

	req = base()
	req.Measurements = nil
	_, err = req.Inputs()
	require.ErrorContains(t, err, "measurement")

	req = base()
	req.Measurements[0].TciType = "0x1ffffffff"
	_, err = req.Inputs()
	require.ErrorContains(t, err, "out of range")

	req = base()
	req.Measurements[0].TciCurrent = "aabb"
	_, err = req.Inputs()
	require.ErrorContains(t, err, "tciCurrent")
}

func TestEncodeCertRunWritesParsableDER(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "leaf.der")

	o := DefaultEncodeCertOptions()
	o.RequestFile = writeRequestFile(t, validRequestYAML())
	o.Output = out
	require.NoError(t, o.Validate(nil))
	require.NoError(t, o.Run(nil))

	der, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NotEmpty(t, der)
	require.Equal(t, byte(0x30), der[0])

	parsed, err := stdx509.ParseCertificate(der)
	require.NoError(t, err)
	require.Equal(t, 3, parsed.Version)
}
