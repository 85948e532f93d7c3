package interfaces

import (
	"io"

	"github.com/deploymenttheory/go-cryptstatus/internal/types"
)

// DeviceEngine is the call surface of an open crypt device context. It models
// the engine's combined return channel directly: int-returning calls yield
// either a defined success value or a negated OS error number, and text
// getters return engine-owned bytes where nil models a null pointer. Returned
// bytes stay valid until the next engine call on the same context; callers
// that keep data longer must copy it first.
//
// Implementations are not required to be safe for concurrent use; the owner
// of a context serializes calls on it.
type DeviceEngine interface {
	// Status reports the runtime state of the named device-mapper device.
	Status(name string) int

	// Dump writes human-readable information about the device to w and
	// returns zero on success or a negated OS error number.
	Dump(w io.Writer) int

	// Cipher returns the cipher name, or nil if the engine has none.
	Cipher() []byte

	// CipherMode returns the cipher mode, or nil if the engine has none.
	CipherMode() []byte

	// UUID returns the device UUID text, or nil if the engine has none.
	UUID() []byte

	// DeviceName returns the path of the underlying device.
	DeviceName() []byte

	// MetadataDeviceName returns the path of the detached metadata device,
	// or nil when metadata is co-located with data. The nil case is an
	// expected configuration, not a failure.
	MetadataDeviceName() []byte

	// DataOffset returns the offset in 512-byte sectors where data begins.
	DataOffset() uint64

	// IVOffset returns the IV location offset in 512-byte sectors.
	IVOffset() uint64

	// VolumeKeySize returns the volume key size in bytes.
	VolumeKeySize() int

	// SectorSize returns the encryption sector size in bytes.
	SectorSize() int

	// VerityInfo populates the caller-allocated record in place and returns
	// zero on success or a negated OS error number.
	VerityInfo(params *types.RawVerityParams) int

	// IntegrityInfo populates the caller-allocated record in place and
	// returns zero on success or a negated OS error number.
	IntegrityInfo(params *types.RawIntegrityParams) int
}
