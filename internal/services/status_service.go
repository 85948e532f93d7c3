package services

import (
	"io"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/deploymenttheory/go-cryptstatus/internal/interfaces"
	"github.com/deploymenttheory/go-cryptstatus/internal/parsers/params"
	"github.com/deploymenttheory/go-cryptstatus/internal/types"
)

// DeviceStatus exposes the read-only status queries over an open crypt
// device context. It borrows the device for its lifetime and holds no state
// of its own: every call is an independent point-in-time snapshot, and two
// calls may observe different states if another actor changes the device in
// between. A DeviceStatus must not be shared between goroutines; callers
// needing consistency across calls serialize access themselves.
type DeviceStatus struct {
	device  interfaces.DeviceEngine
	logSink io.Writer
}

// NewDeviceStatus creates a DeviceStatus over an open device context. Dump
// output goes to logSink.
func NewDeviceStatus(device interfaces.DeviceEngine, logSink io.Writer) *DeviceStatus {
	if logSink == nil {
		logSink = io.Discard
	}
	return &DeviceStatus{
		device:  device,
		logSink: logSink,
	}
}

// Status reports the runtime state of the named device-mapper device.
func (ds *DeviceStatus) Status(name string) (types.StatusInfo, error) {
	return types.ParseStatusResult(ds.device.Status(name))
}

// Dump writes human-readable information about the device to the log sink.
// It is the only operation with an observable side effect.
func (ds *DeviceStatus) Dump() error {
	return types.CheckResult(ds.device.Dump(ds.logSink))
}

// Cipher returns the cipher used by the device, e.g. "aes".
func (ds *DeviceStatus) Cipher() (string, error) {
	return engineText(ds.device.Cipher())
}

// CipherMode returns the cipher mode used by the device, e.g. "xts-plain64".
func (ds *DeviceStatus) CipherMode() (string, error) {
	return engineText(ds.device.CipherMode())
}

// CipherInfo returns the cipher and cipher mode as one owned snapshot.
func (ds *DeviceStatus) CipherInfo() (*types.CipherInfo, error) {
	cipher, err := ds.Cipher()
	if err != nil {
		return nil, err
	}
	mode, err := ds.CipherMode()
	if err != nil {
		return nil, err
	}
	return &types.CipherInfo{Cipher: cipher, CipherMode: mode}, nil
}

// UUID returns the device UUID. Text that is not syntactically a UUID is a
// UUIDError, distinct from the engine failing to return text at all.
func (ds *DeviceStatus) UUID() (uuid.UUID, error) {
	text, err := engineText(ds.device.UUID())
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(text)
	if err != nil {
		return uuid.Nil, &types.UUIDError{Value: text, Err: err}
	}
	return id, nil
}

// DevicePath returns the path to the underlying device.
func (ds *DeviceStatus) DevicePath() (string, error) {
	return engineText(ds.device.DeviceName())
}

// MetadataDevicePath returns the path to the detached metadata device. ok is
// false when metadata is co-located with data; that case is an expected
// configuration and never an error.
func (ds *DeviceStatus) MetadataDevicePath() (path string, ok bool, err error) {
	b := ds.device.MetadataDeviceName()
	if b == nil {
		return "", false, nil
	}
	path, err = engineText(b)
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}

// Identity returns the UUID, device path and optional metadata device path
// as one owned snapshot.
func (ds *DeviceStatus) Identity() (*types.DeviceIdentity, error) {
	id, err := ds.UUID()
	if err != nil {
		return nil, err
	}
	devicePath, err := ds.DevicePath()
	if err != nil {
		return nil, err
	}
	identity := &types.DeviceIdentity{
		UUID:       id,
		DevicePath: devicePath,
	}
	metaPath, ok, err := ds.MetadataDevicePath()
	if err != nil {
		return nil, err
	}
	if ok {
		identity.MetadataDevicePath = &metaPath
	}
	return identity, nil
}

// DataOffset returns the offset in 512-byte sectors where real data starts.
func (ds *DeviceStatus) DataOffset() uint64 {
	return ds.device.DataOffset()
}

// IVOffset returns the IV location offset in 512-byte sectors.
func (ds *DeviceStatus) IVOffset() uint64 {
	return ds.device.IVOffset()
}

// VolumeKeySize returns the size in bytes of the volume key.
func (ds *DeviceStatus) VolumeKeySize() int {
	return ds.device.VolumeKeySize()
}

// SectorSize returns the size of encryption sectors in bytes.
func (ds *DeviceStatus) SectorSize() int {
	return ds.device.SectorSize()
}

// Geometry returns all layout scalars as one snapshot. The scalar reads have
// no failure mode; callers wanting to know whether the device is active check
// Status first.
func (ds *DeviceStatus) Geometry() types.Geometry {
	return types.Geometry{
		DataOffset:    ds.device.DataOffset(),
		IVOffset:      ds.device.IVOffset(),
		VolumeKeySize: ds.device.VolumeKeySize(),
		SectorSize:    ds.device.SectorSize(),
	}
}

// VerityInfo returns the device's verity parameters. The raw record is
// allocated here, populated in place by the engine, and decoded only after
// the engine reported success.
func (ds *DeviceStatus) VerityInfo() (*types.VerityParams, error) {
	var raw types.RawVerityParams
	if err := types.CheckResult(ds.device.VerityInfo(&raw)); err != nil {
		return nil, err
	}
	return params.DecodeVerityParams(&raw)
}

// IntegrityInfo returns the device's integrity parameters, following the
// same populate-then-decode shape as VerityInfo.
func (ds *DeviceStatus) IntegrityInfo() (*types.IntegrityParams, error) {
	var raw types.RawIntegrityParams
	if err := types.CheckResult(ds.device.IntegrityInfo(&raw)); err != nil {
		return nil, err
	}
	return params.DecodeIntegrityParams(&raw)
}

// engineText copies engine-owned text into an owned string. A null pointer
// on a mandatory field is treated defensively as a system error rather than
// a crash; undecodable bytes are reported the same way, since both mean the
// engine handed back something it never documents returning.
func engineText(b []byte) (string, error) {
	if b == nil {
		return "", &types.SystemError{Errno: unix.EINVAL}
	}
	if !utf8.Valid(b) {
		return "", &types.SystemError{Errno: unix.EILSEQ}
	}
	return string(b), nil
}
