package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-cryptstatus/internal/types"
)

// createTestVerityRecord builds a raw verity record as the engine would
// populate it.
func createTestVerityRecord() *types.RawVerityParams {
	return &types.RawVerityParams{
		HashName:       []byte("sha256"),
		DataDevice:     []byte("/dev/sda1"),
		HashDevice:     []byte("/dev/sda2"),
		FECDevice:      nil,
		Salt:           []byte{0xde, 0xad, 0xbe, 0xef},
		SaltSize:       4,
		HashType:       1,
		DataBlockSize:  4096,
		HashBlockSize:  4096,
		DataSize:       1024,
		HashAreaOffset: 8,
		FECAreaOffset:  0,
		FECRoots:       0,
		Flags:          0,
	}
}

func TestDecodeVerityParams(t *testing.T) {
	raw := createTestVerityRecord()

	verity, err := DecodeVerityParams(raw)
	require.NoError(t, err)

	assert.Equal(t, "sha256", verity.HashName)
	assert.Equal(t, "/dev/sda1", verity.DataDevice)
	assert.Equal(t, "/dev/sda2", verity.HashDevice)
	assert.Nil(t, verity.FECDevice)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, verity.Salt)
	assert.Equal(t, uint32(1), verity.HashType)
	assert.Equal(t, uint32(4096), verity.DataBlockSize)
	assert.Equal(t, uint32(4096), verity.HashBlockSize)
	assert.Equal(t, uint64(1024), verity.DataSize)
	assert.Equal(t, uint64(8), verity.HashAreaOffset)
}

func TestDecodeVerityParamsFECDevice(t *testing.T) {
	raw := createTestVerityRecord()
	raw.FECDevice = []byte("/dev/sda3")
	raw.FECAreaOffset = 16
	raw.FECRoots = 2

	verity, err := DecodeVerityParams(raw)
	require.NoError(t, err)
	require.NotNil(t, verity.FECDevice)
	assert.Equal(t, "/dev/sda3", *verity.FECDevice)
	assert.Equal(t, uint32(2), verity.FECRoots)
}

func TestDecodeVerityParamsSalt(t *testing.T) {
	tests := []struct {
		name        string
		salt        []byte
		saltSize    uint32
		expectError bool
		expected    []byte
	}{
		{
			name:     "zero size with non-null buffer is an empty salt",
			salt:     []byte{},
			saltSize: 0,
			expected: []byte{},
		},
		{
			name:        "null buffer with nonzero size",
			salt:        nil,
			saltSize:    4,
			expectError: true,
		},
		{
			name:        "buffer length disagrees with size field",
			salt:        []byte{1, 2, 3},
			saltSize:    4,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := createTestVerityRecord()
			raw.Salt = tt.salt
			raw.SaltSize = tt.saltSize

			verity, err := DecodeVerityParams(raw)

			if tt.expectError {
				var decodeErr *types.DecodeError
				require.ErrorAs(t, err, &decodeErr)
				assert.Equal(t, "salt", decodeErr.Field)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, verity.Salt)
				assert.NotNil(t, verity.Salt)
			}
		})
	}
}

func TestDecodeVerityParamsMandatoryFields(t *testing.T) {
	t.Run("null hash name", func(t *testing.T) {
		raw := createTestVerityRecord()
		raw.HashName = nil

		_, err := DecodeVerityParams(raw)
		var decodeErr *types.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "hash_name", decodeErr.Field)
	})

	t.Run("null data device", func(t *testing.T) {
		raw := createTestVerityRecord()
		raw.DataDevice = nil

		_, err := DecodeVerityParams(raw)
		var decodeErr *types.DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})

	t.Run("invalid UTF-8 in hash name", func(t *testing.T) {
		raw := createTestVerityRecord()
		raw.HashName = []byte{0xff, 0xfe, 0xfd}

		_, err := DecodeVerityParams(raw)
		var decodeErr *types.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Contains(t, decodeErr.Reason, "UTF-8")
	})
}

func TestDecodeVerityParamsOwnsItsBuffers(t *testing.T) {
	raw := createTestVerityRecord()

	verity, err := DecodeVerityParams(raw)
	require.NoError(t, err)

	// Clobber the engine-owned memory after decoding; the decoded value
	// must be unaffected.
	raw.Salt[0] = 0x00
	raw.HashName[0] = 'x'

	assert.Equal(t, byte(0xde), verity.Salt[0])
	assert.Equal(t, "sha256", verity.HashName)
}
