package usecase

// Notifier pushes real-time events to connected clients. Implementations
// must never block the caller.
type Notifier interface {
	Broadcast(event string, payload any)
}

const (
	EventRosterUpdated  = "roster_updated"
	EventProjectUpdated = "project_updated"
)
