// Package websocket provides WebSocket transport for the chain automa.
//
// The websocket package implements:
//   - Real-time push of automa state changes to observers
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting after each phase step
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub tracks a room
// of subscribers per session behind a read/write mutex. Each client
// connection gets a read and a write goroutine; all writes go through the
// client's buffered send channel, and a client that stops draining it is
// dropped rather than blocked on.
//
// Message Protocol:
//
// Updates are JSON-encoded. After every phase advance, input submission,
// or undo the full StateResponse for the session is pushed with the
// "state_update" event. Custom events can be published via BroadcastEvent.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// State updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
//
// Connection Lifecycle:
//
// 1. Client connects with session ID
// 2. Connection registered with hub
// 3. Client receives state updates as the automa advances
// 4. Disconnection triggers cleanup
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple observers can connect, disconnect, and receive updates
// simultaneously without blocking each other.
package websocket
