// Package api provides HTTP REST API handlers for the chain automa.
//
// The api package implements:
//   - RESTful endpoints for driving the automa phase machine
//   - Session management endpoints
//   - Configuration listing and creation
//   - Snapshot export and restore
//   - Quick mode shortcuts (card draw, direct track writes)
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional config_id in body)
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Automa Operations:
//   - GET /api/sessions/{id}/state - Get current state
//   - POST /api/sessions/{id}/advance - Run the next phase step
//   - POST /api/sessions/{id}/input - Answer a pending input request
//   - POST /api/sessions/{id}/undo - Roll back one commit point
//   - POST /api/sessions/{id}/bank-break - Record a bank break
//
// Persistence:
//   - GET /api/sessions/{id}/snapshot - Export full serializable state
//   - POST /api/sessions/{id}/restore - Replace state with a snapshot
//
// Quick Mode:
//   - POST /api/sessions/{id}/quick-draw - Draw the next action card
//   - POST /api/sessions/{id}/track - Set a track position directly
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Get a configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Input submissions carry the
// pending request kind plus a values map keyed by field name:
//
//	{
//	  "kind": "sold_items",
//	  "values": {"sold": {"burger": 2, "pizza": 1}}
//	}
//
// Error Handling:
//
// Errors are returned as JSON with status codes mapped from the engine
// sentinels: validation failures are 400, unknown sessions 404, and
// state conflicts (advancing while suspended, undo with no history,
// operating on a finished game) are 409:
//
//	{
//	  "error": "error message"
//	}
package api
