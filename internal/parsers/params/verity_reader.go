package params

import (
	"github.com/deploymenttheory/go-cryptstatus/internal/types"
)

// DecodeVerityParams converts a raw verity record populated by the engine
// into an owned VerityParams value. Fixed-width numerics copy directly; text
// and buffer fields are copied out of the engine-owned memory before it can
// be invalidated by a subsequent call. Inconsistent raw data is always a hard
// failure, never retried: the record was filled by a single synchronous query
// and retrying cannot change it.
func DecodeVerityParams(raw *types.RawVerityParams) (*types.VerityParams, error) {
	hashName, err := mandatoryText("hash_name", raw.HashName)
	if err != nil {
		return nil, err
	}

	dataDevice, err := mandatoryText("data_device", raw.DataDevice)
	if err != nil {
		return nil, err
	}

	hashDevice, err := mandatoryText("hash_device", raw.HashDevice)
	if err != nil {
		return nil, err
	}

	// The FEC device is the one optional device reference: null means no
	// forward error correction is configured.
	fecDevice, err := optionalText("fec_device", raw.FECDevice)
	if err != nil {
		return nil, err
	}

	salt, err := sizedBuffer("salt", raw.Salt, raw.SaltSize)
	if err != nil {
		return nil, err
	}

	return &types.VerityParams{
		HashName:       hashName,
		DataDevice:     dataDevice,
		HashDevice:     hashDevice,
		FECDevice:      fecDevice,
		Salt:           salt,
		HashType:       raw.HashType,
		DataBlockSize:  raw.DataBlockSize,
		HashBlockSize:  raw.HashBlockSize,
		DataSize:       raw.DataSize,
		HashAreaOffset: raw.HashAreaOffset,
		FECAreaOffset:  raw.FECAreaOffset,
		FECRoots:       raw.FECRoots,
		Flags:          raw.Flags,
	}, nil
}
