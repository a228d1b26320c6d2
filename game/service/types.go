package service

import (
	"time"

	"github.com/tablemind/chain-automa/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	State          *StateResponse     `json:"state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// StateResponse is the externally visible game state of a session.
type StateResponse struct {
	Turn            int                   `json:"turn"`
	Phase           engine.Phase          `json:"phase"`
	Tracks          engine.Tracks         `json:"tracks"`
	Inventory       *engine.Inventory     `json:"inventory"`
	Marketeers      *engine.MarketeerPool `json:"marketeers"`
	Employees       *engine.EmployeePool  `json:"employees"`
	Restaurants     *engine.RestaurantSet `json:"restaurants"`
	Milestones      []string              `json:"milestones"`
	Cash            int                   `json:"cash"`
	BankBreaks      int                   `json:"bank_breaks"`
	MovieStar       string                `json:"movie_star,omitempty"`
	CurrentCard     *engine.Card          `json:"current_card,omitempty"`
	CompetitionCard *engine.Card          `json:"competition_card,omitempty"`
	InputRequest    *engine.InputRequest  `json:"input_request,omitempty"`
	GameOver        bool                  `json:"game_over"`
	GameOverReason  string                `json:"game_over_reason,omitempty"`
	ActionLog       []string              `json:"action_log,omitempty"`
}

// AdvanceResponse wraps an engine advance or input submission, paired with
// the resulting state.
type AdvanceResponse struct {
	Result *engine.AdvanceResult `json:"result"`
	State  *StateResponse        `json:"state"`
}

// ConfigInfo provides information about an available game configuration
type ConfigInfo struct {
	Filename string   `json:"filename"`
	ConfigID string   `json:"config_id"`
	Name     string   `json:"name"`
	Mode     string   `json:"mode"`
	Modules  []string `json:"modules,omitempty"`
}

// StateFromEngine builds the external view of an engine's current state.
func StateFromEngine(e *engine.Engine) *StateResponse {
	st := e.State()
	resp := &StateResponse{
		Turn:            st.Turn,
		Phase:           st.VisiblePhase(),
		Tracks:          *e.Tracks,
		Inventory:       e.Inventory.Clone(),
		Marketeers:      e.Marketeers.Clone(),
		Employees:       e.Employees.Clone(),
		Restaurants:     e.Restaurants.Clone(),
		Milestones:      append([]string(nil), e.Milestones.Claimed...),
		Cash:            st.Cash,
		BankBreaks:      st.BankBreaks,
		MovieStar:       st.MovieStar,
		CurrentCard:     st.CurrentCard,
		CompetitionCard: st.CompetitionCard,
		GameOver:        st.Over(),
		GameOverReason:  st.GameOverReason,
		ActionLog:       append([]string(nil), st.ActionLog...),
	}
	if st.Pending != nil {
		resp.InputRequest = st.Pending.Request
	}
	return resp
}
