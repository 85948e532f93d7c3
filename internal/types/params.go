package types

import "github.com/google/uuid"

// RawVerityParams mirrors the engine's verity parameter record field-for-field
// in ABI order. The caller allocates it zeroed and the engine populates it in
// place. Text and buffer fields hold engine-owned bytes valid only until the
// next engine call; a nil slice models a null pointer. Each sized buffer keeps
// its declared size separate from the slice so decoding can detect the two
// disagreeing.
type RawVerityParams struct {
	HashName       []byte
	DataDevice     []byte
	HashDevice     []byte
	FECDevice      []byte
	Salt           []byte
	SaltSize       uint32
	HashType       uint32
	DataBlockSize  uint32
	HashBlockSize  uint32
	DataSize       uint64
	HashAreaOffset uint64
	FECAreaOffset  uint64
	FECRoots       uint32
	Flags          uint32
}

// RawIntegrityParams mirrors the engine's integrity parameter record in ABI
// order, with the same engine-owned byte semantics as RawVerityParams.
type RawIntegrityParams struct {
	JournalSize             uint64
	JournalWatermark        uint32
	JournalCommitTime       uint32
	InterleaveSectors       uint32
	TagSize                 uint32
	SectorSize              uint32
	BufferSectors           uint32
	Integrity               []byte
	IntegrityKeySize        uint32
	JournalIntegrity        []byte
	JournalIntegrityKey     []byte
	JournalIntegrityKeySize uint32
	JournalCrypt            []byte
	JournalCryptKey         []byte
	JournalCryptKeySize     uint32
}

// VerityParams is the owned, validated form of a verity parameter record.
// Salt length always equals the size field the record declared.
type VerityParams struct {
	HashName   string
	DataDevice string
	HashDevice string
	// FECDevice is nil when no forward-error-correction device is configured.
	FECDevice      *string
	Salt           []byte
	HashType       uint32
	DataBlockSize  uint32
	HashBlockSize  uint32
	DataSize       uint64
	HashAreaOffset uint64
	FECAreaOffset  uint64
	FECRoots       uint32
	Flags          uint32
}

// JournalIntegrityParams is the journal encryption sub-record of an integrity
// configuration. Each algorithm name is nil when not configured, which is
// distinct from an algorithm configured with an empty name.
type JournalIntegrityParams struct {
	IntegrityAlg *string
	IntegrityKey []byte
	CryptAlg     *string
	CryptKey     []byte
}

// IntegrityParams is the owned, validated form of an integrity parameter
// record.
type IntegrityParams struct {
	JournalSize       uint64
	JournalWatermark  uint32
	JournalCommitTime uint32
	InterleaveSectors uint32
	TagSize           uint32
	SectorSize        uint32
	BufferSectors     uint32
	// Integrity is nil when no integrity algorithm is configured.
	Integrity        *string
	IntegrityKeySize uint32
	// Journal is nil when no journal encryption or journal integrity is
	// configured.
	Journal *JournalIntegrityParams
}

// CipherInfo is an owned snapshot of the device's cipher configuration.
type CipherInfo struct {
	Cipher     string
	CipherMode string
}

// DeviceIdentity is an owned snapshot of the device's identity.
// MetadataDevicePath is nil when metadata is co-located with data; the
// distinction from an empty path is preserved.
type DeviceIdentity struct {
	UUID               uuid.UUID
	DevicePath         string
	MetadataDevicePath *string
}

// Geometry holds the device's layout scalars. Offsets are in 512-byte
// sectors, sizes in bytes.
type Geometry struct {
	DataOffset    uint64
	IVOffset      uint64
	VolumeKeySize int
	SectorSize    int
}
