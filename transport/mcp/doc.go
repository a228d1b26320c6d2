// Package mcp provides a Model Context Protocol interface for the chain automa.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for every automa operation
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get the full automa state with tracks and inventory
//   - advance_phase: Run the next phase step of the turn
//   - submit_input: Answer a pending board-state question
//   - undo: Roll back one committed step
//   - bank_break: Record a bank break
//   - quick_draw: Draw the next action card (quick mode)
//   - set_track: Write a track position directly
//   - create_session: Create a new game with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available game configurations
//
// Architecture:
//
// The client is a thin proxy: every tool call is translated into a REST
// request against the API server, so the MCP surface and the HTTP surface
// always agree on behavior. Responses are rendered as compact text for
// the agent rather than raw JSON.
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: the REST API server it proxies can be remote
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to referee a solo game end to end:
// advance the automa, answer its demand and placement questions from a
// photo or description of the board, and correct mistakes with undo and
// set_track.
package mcp
