package domain

// EventKind tags the closed set of lifecycle events the garage simulator
// delivers over the webhook. Dispatch happens on the tag; there is no open
// extension point.
type EventKind string

const (
	EventEntry  EventKind = "ENTRY"
	EventParked EventKind = "PARKED"
	EventExit   EventKind = "EXIT"
)
