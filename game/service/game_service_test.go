package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tablemind/chain-automa/game/engine"
)

// memSessions is a minimal in-memory SessionManager for service tests.
type memSessions struct {
	catalog  *engine.Catalog
	sessions map[string]*Session
}

func newMemSessions(t *testing.T) *memSessions {
	t.Helper()
	cat, err := engine.LoadCatalog()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return &memSessions{catalog: cat, sessions: make(map[string]*Session)}
}

func (m *memSessions) Create(id string, config *engine.GameConfig) (*Session, error) {
	if id == "" {
		id = "s1"
	}
	eng, err := engine.NewEngine(*config, m.catalog)
	if err != nil {
		return nil, err
	}
	s := &Session{ID: id, Engine: eng, Config: config, CreatedAt: time.Now(), LastAccessedAt: time.Now()}
	m.sessions[id] = s
	return s, nil
}

func (m *memSessions) Get(id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.New("session not found")
	}
	return s, nil
}

func (m *memSessions) GetOrCreate(id string, config *engine.GameConfig) (*Session, error) {
	if s, err := m.Get(id); err == nil {
		return s, nil
	}
	return m.Create(id, config)
}

func (m *memSessions) List() []*Session {
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

func (m *memSessions) Delete(id string) error {
	if _, ok := m.sessions[id]; !ok {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *memSessions) UpdateLastAccessed(id string) error { return nil }
func (m *memSessions) Save(id string) error               { return nil }

// memConfigs is a fixed-config ConfigManager.
type memConfigs struct {
	cfg engine.GameConfig
}

func (m *memConfigs) LoadConfig(name string) (*engine.GameConfig, error) {
	if name != "base" {
		return nil, errors.New("configuration not found")
	}
	cfg := m.cfg
	return &cfg, nil
}

func (m *memConfigs) ListConfigs() ([]*ConfigInfo, error) {
	return []*ConfigInfo{{Filename: "base.json", ConfigID: "base", Name: m.cfg.Name, Mode: string(m.cfg.Mode)}}, nil
}

func (m *memConfigs) GetDefault() *engine.GameConfig {
	cfg := m.cfg
	return &cfg
}

func (m *memConfigs) SaveConfig(name string, config *engine.GameConfig) error { return nil }

func newTestService(t *testing.T) GameService {
	t.Helper()
	return NewGameService(newMemSessions(t), &memConfigs{
		cfg: engine.GameConfig{Name: "base", Seed: 4, Mode: engine.ModeFull},
	})
}

func TestCreateSessionWithDefaultConfig(t *testing.T) {
	svc := newTestService(t)
	info, err := svc.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	if info.ID == "" {
		t.Error("expected a session ID")
	}
	if info.State == nil || info.State.Turn != 1 {
		t.Errorf("expected fresh state, got %+v", info.State)
	}
}

func TestCreateSessionUnknownConfig(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.CreateSession(context.Background(), "bogus"); err == nil {
		t.Error("expected an error for an unknown config")
	}
}

func TestAdvanceThroughService(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info, err := svc.CreateSession(ctx, "base")
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}

	resp, err := svc.Advance(ctx, info.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if resp.Result.CurrentCard == nil {
		t.Error("expected a drawn card after restructuring")
	}
	if resp.State.Phase != engine.PhaseRecruitTrain {
		t.Errorf("expected recruit_train, got %s", resp.State.Phase)
	}
}

func TestUndoThroughService(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "base")

	if _, err := svc.Undo(ctx, info.ID); !errors.Is(err, engine.ErrNoHistory) {
		t.Fatalf("expected ErrNoHistory, got %v", err)
	}
	if _, err := svc.Advance(ctx, info.ID); err != nil {
		t.Fatalf("advance: %v", err)
	}
	state, err := svc.Undo(ctx, info.ID)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if state.Phase != engine.PhaseRestructuring {
		t.Errorf("expected restructuring after undo, got %s", state.Phase)
	}
}

func TestSnapshotRestoreThroughService(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "base")
	svc.Advance(ctx, info.ID)

	snap, err := svc.GetSnapshot(ctx, info.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	state, err := svc.RestoreSnapshot(ctx, info.ID, snap)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if state.Turn != snap.Turn {
		t.Errorf("turn differs: %d vs %d", state.Turn, snap.Turn)
	}
}

func TestListAndDeleteSessions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "base")

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("deleting: %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("expected the session to be gone")
	}
}

func TestQuickModeThroughService(t *testing.T) {
	sessions := newMemSessions(t)
	svc := NewGameService(sessions, &memConfigs{
		cfg: engine.GameConfig{Name: "base", Seed: 4, Mode: engine.ModeQuick},
	})
	ctx := context.Background()
	info, err := svc.CreateSession(ctx, "base")
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}

	card, err := svc.QuickDraw(ctx, info.ID)
	if err != nil {
		t.Fatalf("quick draw: %v", err)
	}
	if card == nil {
		t.Fatal("expected a card")
	}

	state, err := svc.QuickSetTrack(ctx, info.ID, engine.TrackWaitresses, 2)
	if err != nil {
		t.Fatalf("set track: %v", err)
	}
	if state.Tracks.Waitresses != 2 {
		t.Errorf("expected 2 waitresses, got %d", state.Tracks.Waitresses)
	}
}
