// Package device provides a read-only engine over LUKS2 devices and disk
// images for offline status introspection. It never writes to the device.
package device

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/deploymenttheory/go-cryptstatus/internal/interfaces"
	"github.com/deploymenttheory/go-cryptstatus/internal/types"
)

const (
	// Binary header magics for the primary and secondary header copies.
	luks2Magic          = "LUKS\xba\xbe"
	luks2SecondaryMagic = "SKUL\xba\xbe"

	// The binary header occupies the first 4096 bytes; the JSON metadata
	// area follows it up to hdr_size.
	luks2BinaryHeaderSize = 4096

	luks2LabelLen = 48
	luks2UUIDLen  = 40
)

// Binary header field offsets. All integers are big-endian.
const (
	luks2OffVersion = 6
	luks2OffHdrSize = 8
	luks2OffSeqID   = 16
	luks2OffLabel   = 24
	luks2OffUUID    = 168
)

// JSON metadata area structures. Only the fields the status queries need are
// decoded; unknown fields are ignored.
type luks2Metadata struct {
	Keyslots map[int]luks2Keyslot `json:"keyslots"`
	Segments map[int]luks2Segment `json:"segments"`
	Config   luks2Config          `json:"config"`
}

type luks2Keyslot struct {
	Type    string `json:"type"`
	KeySize int    `json:"key_size"`
}

type luks2Segment struct {
	Type       string      `json:"type"`
	Offset     json.Number `json:"offset"`
	IVTweak    json.Number `json:"iv_tweak"`
	Size       string      `json:"size"`
	Encryption string      `json:"encryption"`
	SectorSize int         `json:"sector_size"`
}

type luks2Config struct {
	JSONSize     json.Number `json:"json_size"`
	KeyslotsSize json.Number `json:"keyslots_size"`
}

// LUKS2Device is an open LUKS2 device or image. It implements the engine
// call surface for status queries; the text getters return bytes owned by
// the device, valid until Close.
type LUKS2Device struct {
	file *os.File
	path string
	cfg  *ProbeConfig

	version    uint16
	hdrSize    uint64
	label      string
	uuid       []byte
	cipher     []byte
	cipherMode []byte
	dataOffset uint64
	ivOffset   uint64
	keySize    int
	sectorSize int
}

var _ interfaces.DeviceEngine = (*LUKS2Device)(nil)

// Open opens a LUKS2 device or image read-only and loads its metadata.
func Open(path string, cfg *ProbeConfig) (*LUKS2Device, error) {
	if cfg == nil {
		cfg = DefaultProbeConfig()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open device: %w", err)
	}

	dev := &LUKS2Device{
		file: file,
		path: path,
		cfg:  cfg,
	}
	if err := dev.load(); err != nil {
		file.Close()
		return nil, err
	}
	return dev, nil
}

// Close releases the underlying file. Bytes previously returned by the text
// getters stay valid; they are owned by the device value, not the file.
func (d *LUKS2Device) Close() error {
	return d.file.Close()
}

func (d *LUKS2Device) load() error {
	header, err := d.readBinaryHeader()
	if err != nil {
		return err
	}

	d.version = binary.BigEndian.Uint16(header[luks2OffVersion:])
	if d.version != 2 {
		return fmt.Errorf("unsupported LUKS version %d", d.version)
	}

	d.hdrSize = binary.BigEndian.Uint64(header[luks2OffHdrSize:])
	if d.hdrSize <= luks2BinaryHeaderSize || d.hdrSize > uint64(d.cfg.MaxMetadataSize) {
		return fmt.Errorf("implausible header size %d", d.hdrSize)
	}

	d.label = string(trimNul(header[luks2OffLabel : luks2OffLabel+luks2LabelLen]))
	d.uuid = trimNul(header[luks2OffUUID : luks2OffUUID+luks2UUIDLen])

	meta, err := d.readMetadata()
	if err != nil {
		return err
	}
	return d.applyMetadata(meta)
}

// readBinaryHeader returns the 4096-byte binary header, falling back to the
// secondary copy when the primary is damaged.
func (d *LUKS2Device) readBinaryHeader() ([]byte, error) {
	header := make([]byte, luks2BinaryHeaderSize)
	if _, err := d.file.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if bytes.Equal(header[:len(luks2Magic)], []byte(luks2Magic)) {
		return header, nil
	}

	if _, err := d.file.ReadAt(header, d.cfg.SecondaryOffset); err == nil {
		if bytes.Equal(header[:len(luks2SecondaryMagic)], []byte(luks2SecondaryMagic)) {
			return header, nil
		}
	}
	return nil, errors.New("not a LUKS2 device: bad magic")
}

func (d *LUKS2Device) readMetadata() (*luks2Metadata, error) {
	area := make([]byte, d.hdrSize-luks2BinaryHeaderSize)
	if _, err := d.file.ReadAt(area, luks2BinaryHeaderSize); err != nil {
		return nil, fmt.Errorf("failed to read JSON metadata area: %w", err)
	}

	// The JSON area is NUL-padded to hdr_size.
	area = bytes.TrimRight(area, "\x00")

	var meta luks2Metadata
	if err := json.Unmarshal(area, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse JSON metadata: %w", err)
	}
	return &meta, nil
}

func (d *LUKS2Device) applyMetadata(meta *luks2Metadata) error {
	seg, ok := firstSegment(meta)
	if !ok {
		return errors.New("metadata has no data segment")
	}

	cipher, mode, found := strings.Cut(seg.Encryption, "-")
	if !found {
		return fmt.Errorf("malformed segment encryption %q", seg.Encryption)
	}
	d.cipher = []byte(cipher)
	d.cipherMode = []byte(mode)

	offsetBytes, err := seg.Offset.Int64()
	if err != nil {
		return fmt.Errorf("malformed segment offset: %w", err)
	}
	d.dataOffset = uint64(offsetBytes) / 512

	if seg.IVTweak != "" {
		ivTweak, err := seg.IVTweak.Int64()
		if err != nil {
			return fmt.Errorf("malformed segment iv_tweak: %w", err)
		}
		d.ivOffset = uint64(ivTweak)
	}

	d.sectorSize = seg.SectorSize
	if d.sectorSize == 0 {
		d.sectorSize = 512
	}

	for _, slot := range meta.Keyslots {
		if slot.KeySize > 0 {
			d.keySize = slot.KeySize
			break
		}
	}
	return nil
}

func firstSegment(meta *luks2Metadata) (luks2Segment, bool) {
	if seg, ok := meta.Segments[0]; ok {
		return seg, true
	}
	for _, seg := range meta.Segments {
		return seg, true
	}
	return luks2Segment{}, false
}

// Status reports whether the named mapping exists under the configured
// device-mapper directory.
func (d *LUKS2Device) Status(name string) int {
	if name == "" {
		return -int(unix.EINVAL)
	}
	if _, err := os.Stat(filepath.Join(d.cfg.MapperDir, name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return int(types.StatusInactive)
		}
		return -int(errnoOf(err))
	}
	return int(types.StatusActive)
}

// Dump writes a human-readable summary of the header to w.
func (d *LUKS2Device) Dump(w io.Writer) int {
	if w == nil {
		w = io.Discard
	}
	fmt.Fprintf(w, "LUKS header information\n")
	fmt.Fprintf(w, "Version:        %d\n", d.version)
	fmt.Fprintf(w, "Label:          %s\n", d.label)
	fmt.Fprintf(w, "UUID:           %s\n", d.uuid)
	fmt.Fprintf(w, "Device:         %s\n", d.path)
	fmt.Fprintf(w, "Data segment:\n")
	fmt.Fprintf(w, "  cipher:       %s-%s\n", d.cipher, d.cipherMode)
	fmt.Fprintf(w, "  offset:       %d sectors\n", d.dataOffset)
	fmt.Fprintf(w, "  sector size:  %d bytes\n", d.sectorSize)
	fmt.Fprintf(w, "  key size:     %d bytes\n", d.keySize)
	return 0
}

func (d *LUKS2Device) Cipher() []byte     { return d.cipher }
func (d *LUKS2Device) CipherMode() []byte { return d.cipherMode }
func (d *LUKS2Device) UUID() []byte       { return d.uuid }

func (d *LUKS2Device) DeviceName() []byte { return []byte(d.path) }

// MetadataDeviceName always reports co-located metadata: the LUKS2 header
// lives on the data device itself.
func (d *LUKS2Device) MetadataDeviceName() []byte { return nil }

func (d *LUKS2Device) DataOffset() uint64 { return d.dataOffset }
func (d *LUKS2Device) IVOffset() uint64   { return d.ivOffset }
func (d *LUKS2Device) VolumeKeySize() int { return d.keySize }
func (d *LUKS2Device) SectorSize() int    { return d.sectorSize }

// VerityInfo reports EINVAL: a LUKS2 data device carries no verity parameter
// set.
func (d *LUKS2Device) VerityInfo(params *types.RawVerityParams) int {
	return -int(unix.EINVAL)
}

// IntegrityInfo reports EINVAL: a LUKS2 data device carries no standalone
// integrity parameter set.
func (d *LUKS2Device) IntegrityInfo(params *types.RawIntegrityParams) int {
	return -int(unix.EINVAL)
}

// trimNul cuts b at the first NUL and returns an owned copy, or nil for an
// empty field.
func trimNul(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func errnoOf(err error) unix.Errno {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return unix.EIO
}
