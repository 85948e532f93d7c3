package device

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/deploymenttheory/go-cryptstatus/internal/services"
	"github.com/deploymenttheory/go-cryptstatus/internal/types"
)

const testUUID = "f5c73c1a-7c90-4e4b-8f2e-6053a2f1c6f8"

const testMetadataJSON = `{
  "keyslots": {
    "0": {"type": "luks2", "key_size": 64}
  },
  "segments": {
    "0": {
      "type": "crypt",
      "offset": "16777216",
      "iv_tweak": "0",
      "size": "dynamic",
      "encryption": "aes-xts-plain64",
      "sector_size": 512
    }
  },
  "digests": {},
  "config": {"json_size": "12288", "keyslots_size": "0"}
}`

// createTestImage writes a synthetic LUKS2 image and returns its path.
func createTestImage(t *testing.T, mutate func(header []byte)) string {
	t.Helper()

	const hdrSize = 16384
	image := make([]byte, hdrSize)
	copy(image, luks2Magic)
	binary.BigEndian.PutUint16(image[luks2OffVersion:], 2)
	binary.BigEndian.PutUint64(image[luks2OffHdrSize:], hdrSize)
	copy(image[luks2OffLabel:], "testvol")
	copy(image[luks2OffUUID:], testUUID)
	copy(image[luks2BinaryHeaderSize:], testMetadataJSON)

	if mutate != nil {
		mutate(image)
	}

	path := filepath.Join(t.TempDir(), "test.img")
	require.NoError(t, os.WriteFile(path, image, 0o600))
	return path
}

func openTestDevice(t *testing.T, mutate func(header []byte)) (*LUKS2Device, *ProbeConfig) {
	t.Helper()

	cfg := DefaultProbeConfig()
	cfg.MapperDir = t.TempDir()

	dev, err := Open(createTestImage(t, mutate), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { dev.Close() })
	return dev, cfg
}

func TestOpenParsesHeader(t *testing.T) {
	dev, _ := openTestDevice(t, nil)

	assert.Equal(t, []byte("aes"), dev.Cipher())
	assert.Equal(t, []byte("xts-plain64"), dev.CipherMode())
	assert.Equal(t, []byte(testUUID), dev.UUID())
	assert.Nil(t, dev.MetadataDeviceName())
	assert.Equal(t, uint64(32768), dev.DataOffset())
	assert.Equal(t, uint64(0), dev.IVOffset())
	assert.Equal(t, 64, dev.VolumeKeySize())
	assert.Equal(t, 512, dev.SectorSize())
}

func TestOpenRejectsBadImages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(header []byte)
		errMsg string
	}{
		{
			name:   "bad magic",
			mutate: func(h []byte) { copy(h, "NOTLUKS") },
			errMsg: "bad magic",
		},
		{
			name:   "unsupported version",
			mutate: func(h []byte) { binary.BigEndian.PutUint16(h[luks2OffVersion:], 1) },
			errMsg: "unsupported LUKS version 1",
		},
		{
			name:   "implausible header size",
			mutate: func(h []byte) { binary.BigEndian.PutUint64(h[luks2OffHdrSize:], 1024) },
			errMsg: "implausible header size",
		},
		{
			name: "corrupt JSON metadata",
			mutate: func(h []byte) {
				copy(h[luks2BinaryHeaderSize:], "{not json")
			},
			errMsg: "JSON metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(createTestImage(t, tt.mutate), DefaultProbeConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestStatusChecksMapperDir(t *testing.T) {
	dev, cfg := openTestDevice(t, nil)

	assert.Equal(t, int(types.StatusInactive), dev.Status("cryptroot"))

	require.NoError(t, os.WriteFile(filepath.Join(cfg.MapperDir, "cryptroot"), nil, 0o600))
	assert.Equal(t, int(types.StatusActive), dev.Status("cryptroot"))

	assert.Equal(t, -int(unix.EINVAL), dev.Status(""))
}

func TestDumpOutput(t *testing.T) {
	dev, _ := openTestDevice(t, nil)

	var out bytes.Buffer
	require.Equal(t, 0, dev.Dump(&out))

	assert.Contains(t, out.String(), "Version:        2")
	assert.Contains(t, out.String(), "Label:          testvol")
	assert.Contains(t, out.String(), "cipher:       aes-xts-plain64")
	assert.Contains(t, out.String(), testUUID)
}

func TestVerityAndIntegrityUnsupported(t *testing.T) {
	dev, _ := openTestDevice(t, nil)

	var verity types.RawVerityParams
	assert.Equal(t, -int(unix.EINVAL), dev.VerityInfo(&verity))

	var integrity types.RawIntegrityParams
	assert.Equal(t, -int(unix.EINVAL), dev.IntegrityInfo(&integrity))
}

func TestFacadeOverProbedDevice(t *testing.T) {
	dev, _ := openTestDevice(t, nil)
	ds := services.NewDeviceStatus(dev, nil)

	id, err := ds.UUID()
	require.NoError(t, err)
	assert.Equal(t, testUUID, id.String())

	info, err := ds.CipherInfo()
	require.NoError(t, err)
	assert.Equal(t, "aes", info.Cipher)
	assert.Equal(t, "xts-plain64", info.CipherMode)

	_, ok, err := ds.MetadataDevicePath()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = ds.VerityInfo()
	var sysErr *types.SystemError
	require.ErrorAs(t, err, &sysErr)
	assert.Equal(t, int(unix.EINVAL), sysErr.Code())
}
