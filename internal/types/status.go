package types

// StatusInfo is the runtime state of a crypt device as reported by the
// underlying engine. The raw integer values are fixed by the engine ABI.
type StatusInfo int

const (
	// StatusInvalid means the engine could not determine device state.
	StatusInvalid StatusInfo = iota
	// StatusInactive means the device exists but is not activated.
	StatusInactive
	// StatusActive means the device is activated.
	StatusActive
	// StatusBusy means the device is activated and in use.
	StatusBusy
)

// String returns the status name used by the command line tools.
func (s StatusInfo) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusInactive:
		return "inactive"
	case StatusActive:
		return "active"
	case StatusBusy:
		return "busy"
	}
	return "unknown"
}

// ParseStatusInfo maps a raw engine status code to its StatusInfo value.
// Any value outside the four defined codes is a ConversionError, never a
// silent coercion.
func ParseStatusInfo(raw int) (StatusInfo, error) {
	switch s := StatusInfo(raw); s {
	case StatusInvalid, StatusInactive, StatusActive, StatusBusy:
		return s, nil
	}
	return StatusInvalid, &ConversionError{Raw: raw}
}

// ParseStatusResult decodes the combined return channel of the engine's
// status call: a negative value is a negated OS error number, anything else
// must be one of the defined status codes.
func ParseStatusResult(ret int) (StatusInfo, error) {
	if err := CheckResult(ret); err != nil {
		return StatusInvalid, err
	}
	return ParseStatusInfo(ret)
}
