package engine

import (
	"github.com/solbuf-labs/solship/utils/event"
)

// Event type keys
const (
	// EventTypeKey is a reserved composite key for event name.
	EventTypeKey = "upload.event"
)

// Event types
const (
	EventUploadSubmitted  = "UploadSubmitted"
	EventUploadReconciled = "UploadReconciled"
	EventUploadVerified   = "UploadVerified"
	EventUploadHealth     = "UploadHealth"
)

// Convenience objects

var (
	SubmittedEvents  = map[string][]string{EventTypeKey: {EventUploadSubmitted}}
	ReconciledEvents = map[string][]string{EventTypeKey: {EventUploadReconciled}}
	VerifiedEvents   = map[string][]string{EventTypeKey: {EventUploadVerified}}
	HealthEvents     = map[string][]string{EventTypeKey: {EventUploadHealth}}
)

// EventDataSubmitted is published after the broadcast phase completes.
type EventDataSubmitted struct {
	Frames    int
	Succeeded int
	Failed    int
}

// EventDataReconciled is published after each reconciliation pass.
type EventDataReconciled struct {
	Pass       int
	Mismatched int
}

// EventDataVerified is published once the whole-payload checksum matched.
type EventDataVerified struct {
	Buffer string
	Frames int
}

// EventDataHealth carries the error encountered by a health check; nil implies healthy.
type EventDataHealth struct {
	Error error
}

// Queries

var (
	EventQuerySubmitted  = event.QueryFor(EventTypeKey, EventUploadSubmitted)
	EventQueryReconciled = event.QueryFor(EventTypeKey, EventUploadReconciled)
	EventQueryVerified   = event.QueryFor(EventTypeKey, EventUploadVerified)
	EventQueryHealth     = event.QueryFor(EventTypeKey, EventUploadHealth)
)
