package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tablemind/chain-automa/game/engine"
	"github.com/tablemind/chain-automa/game/service"
)

// FilePersistence implements SessionPersistence using file system storage
type FilePersistence struct {
	sessionsDir string
	catalog     *engine.Catalog
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string, catalog *engine.Catalog) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir: sessionsDir,
		catalog:     catalog,
	}, nil
}

// Save persists a session to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	snapshot, err := engine.MarshalSnapshot(session.Engine.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to snapshot session: %w", err)
	}

	data := PersistedSessionData{
		ID:             session.ID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Snapshot:       snapshot,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	path := fp.sessionPath(session.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to finalize session file: %w", err)
	}
	return nil
}

// Load restores a session from its JSON file
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	raw, err := os.ReadFile(fp.sessionPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	snapshot, err := engine.UnmarshalSnapshot(data.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session snapshot: %w", err)
	}

	eng, err := engine.NewEngine(snapshot.Config, fp.catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild engine: %w", err)
	}
	if err := eng.RestoreSnapshot(snapshot); err != nil {
		return nil, fmt.Errorf("failed to restore session state: %w", err)
	}

	config := snapshot.Config
	return &service.Session{
		ID:             data.ID,
		Engine:         eng,
		Config:         &config,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	err := os.Remove(fp.sessionPath(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// ListAll returns the IDs of every persisted session
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return ids, nil
}

// Exists checks whether a session file is present
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.sessionPath(id))
	return err == nil
}

func (fp *FilePersistence) sessionPath(id string) string {
	return filepath.Join(fp.sessionsDir, strings.ToLower(id)+".json")
}
