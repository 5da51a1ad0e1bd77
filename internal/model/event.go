package model

// EventKind names one transition of the update lifecycle as the UI layer
// consumes it.
type EventKind string

const (
	EventChecking      EventKind = "checking"
	EventAvailable     EventKind = "available"
	EventNotAvailable  EventKind = "not-available"
	EventProgress      EventKind = "progress"
	EventDownloaded    EventKind = "downloaded"
	EventError         EventKind = "error"
	EventCancelled     EventKind = "cancelled"
	EventLinuxDeb      EventKind = "linux-deb"
	EventLinuxAppImage EventKind = "linux-appimage"
)

// Event carries one lifecycle transition and its payload. Only the fields
// relevant to the Kind are set.
type Event struct {
	Kind     EventKind
	Info     *UpdateInfo
	Progress *UpdateProgress
	Path     string
	Message  string
}
