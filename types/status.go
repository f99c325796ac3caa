package types

// TransmissionStatus tracks a single payload upload through its lifecycle.
// Verified is reachable only after both per-frame reconciliation and the
// whole-payload checksum agree. Closed is terminal.
type TransmissionStatus int32

const (
	StatusPlanned TransmissionStatus = iota
	StatusInitializing
	StatusWriting
	StatusReconciling
	StatusVerified
	StatusClosed
)

func (s TransmissionStatus) String() string {
	switch s {
	case StatusPlanned:
		return "planned"
	case StatusInitializing:
		return "initializing"
	case StatusWriting:
		return "writing"
	case StatusReconciling:
		return "reconciling"
	case StatusVerified:
		return "verified"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}
