package service

// Broadcaster pushes live-preview events to an open storefront connection
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
}
