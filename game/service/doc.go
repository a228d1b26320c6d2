// Package service defines the game service layer and its contracts.
//
// GameService is the single interface every transport (REST, WebSocket,
// MCP) talks to. It owns no state of its own: sessions live in a
// SessionManager, configurations in a ConfigManager, and all game rules in
// the engine underneath. The implementation serializes access with a
// mutex, so one service instance is safe for concurrent transports.
//
// The response types (SessionInfo, StateResponse, AdvanceResponse) are the
// external JSON surface; they carry cloned state so callers can never
// mutate a live engine through a response.
package service
