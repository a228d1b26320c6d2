// Package session manages game session lifecycle and persistence.
//
// Manager keeps active sessions in memory behind a mutex, keyed by
// case-insensitive ID (fresh IDs are UUIDs). With a SessionPersistence
// attached, every session is written through to storage as a JSON file
// containing the engine's full snapshot, so a restarted server resumes
// exactly where each game stopped, deck orders included.
//
// FilePersistence is the file system implementation: one
// <session-id>.json per session, written atomically via a rename.
package session
