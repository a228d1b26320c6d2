package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tablemind/chain-automa/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for
// consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return s.sessionInfo(session, configID), nil
}

func (s *gameServiceImpl) sessionInfo(session *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		State:          StateFromEngine(session.Engine),
		GameConfig:     session.Config,
	}
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(session, s.getConfigID(session.Config.Name)), nil
}

// ListSessions lists all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	infos := make([]*SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, s.sessionInfo(session, s.getConfigID(session.Config.Name)))
	}
	return infos, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Delete(sessionID)
}

// touch updates a session's last-accessed time and persists it.
func (s *gameServiceImpl) touch(session *Session) {
	session.LastAccessedAt = time.Now()
	_ = s.sessions.UpdateLastAccessed(session.ID)
	_ = s.sessions.Save(session.ID)
}

// Advance runs the current phase of the session's game
func (s *gameServiceImpl) Advance(ctx context.Context, sessionID string) (*AdvanceResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	result, err := session.Engine.Advance()
	if err != nil {
		return nil, err
	}
	s.touch(session)
	return &AdvanceResponse{Result: result, State: StateFromEngine(session.Engine)}, nil
}

// SubmitInput resumes a suspended phase with player data
func (s *gameServiceImpl) SubmitInput(ctx context.Context, sessionID string, input *engine.PlayerInput) (*AdvanceResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	result, err := session.Engine.SubmitInput(input)
	if err != nil {
		return nil, err
	}
	s.touch(session)
	return &AdvanceResponse{Result: result, State: StateFromEngine(session.Engine)}, nil
}

// Undo rolls the session's game back one commit point
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Engine.Undo(); err != nil {
		return nil, err
	}
	s.touch(session)
	return StateFromEngine(session.Engine), nil
}

// RecordBankBreak notes a bank break in the session's game
func (s *gameServiceImpl) RecordBankBreak(ctx context.Context, sessionID string) (*AdvanceResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	result, err := session.Engine.RecordBankBreak()
	if err != nil {
		return nil, err
	}
	s.touch(session)
	return &AdvanceResponse{Result: result, State: StateFromEngine(session.Engine)}, nil
}

// QuickDraw draws the next action card in quick mode
func (s *gameServiceImpl) QuickDraw(ctx context.Context, sessionID string) (*engine.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	card, err := session.Engine.QuickDraw()
	if err != nil {
		return nil, err
	}
	s.touch(session)
	return card, nil
}

// QuickSetTrack writes a track position directly
func (s *gameServiceImpl) QuickSetTrack(ctx context.Context, sessionID string, track engine.TrackID, position int) (*StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Engine.QuickSetTrack(track, position); err != nil {
		return nil, err
	}
	s.touch(session)
	return StateFromEngine(session.Engine), nil
}

// GetGameState returns the session's current state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*StateResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return StateFromEngine(session.Engine), nil
}

// GetSnapshot returns the session's full serializable state
func (s *gameServiceImpl) GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Engine.Snapshot(), nil
}

// RestoreSnapshot replaces the session's state wholesale
func (s *gameServiceImpl) RestoreSnapshot(ctx context.Context, sessionID string, snapshot *engine.Snapshot) (*StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Engine.RestoreSnapshot(snapshot); err != nil {
		return nil, err
	}
	s.touch(session)
	return StateFromEngine(session.Engine), nil
}

// ListConfigs lists available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a configuration by name
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig persists a configuration
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}
