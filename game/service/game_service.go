package service

import (
	"context"
	"time"

	"github.com/tablemind/chain-automa/game/engine"
)

// GameService defines all automa game operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Advance(ctx context.Context, sessionID string) (*AdvanceResponse, error)
	SubmitInput(ctx context.Context, sessionID string, input *engine.PlayerInput) (*AdvanceResponse, error)
	Undo(ctx context.Context, sessionID string) (*StateResponse, error)
	RecordBankBreak(ctx context.Context, sessionID string) (*AdvanceResponse, error)

	// Quick Mode
	QuickDraw(ctx context.Context, sessionID string) (*engine.Card, error)
	QuickSetTrack(ctx context.Context, sessionID string, track engine.TrackID, position int) (*StateResponse, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*StateResponse, error)
	GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	RestoreSnapshot(ctx context.Context, sessionID string, snapshot *engine.Snapshot) (*StateResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active automa session
type Session struct {
	ID             string
	Engine         *engine.Engine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
