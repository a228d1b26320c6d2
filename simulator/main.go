package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type ItemStock struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

type Inventory struct {
	Items map[string]*ItemStock `json:"items"`
}

type Tracks struct {
	Competition   int `json:"competition"`
	RecruitTrain  int `json:"recruit_train"`
	PriceDistance int `json:"price_distance"`
	Waitresses    int `json:"waitresses"`
}

type FieldSpec struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type InputRequest struct {
	Kind    string      `json:"kind"`
	Prompt  string      `json:"prompt"`
	Fields  []FieldSpec `json:"fields"`
	Options []string    `json:"options,omitempty"`
}

type GameState struct {
	Turn           int           `json:"turn"`
	Phase          string        `json:"phase"`
	Tracks         Tracks        `json:"tracks"`
	Inventory      *Inventory    `json:"inventory"`
	Cash           int           `json:"cash"`
	BankBreaks     int           `json:"bank_breaks"`
	InputRequest   *InputRequest `json:"input_request,omitempty"`
	GameOver       bool          `json:"game_over"`
	GameOverReason string        `json:"game_over_reason,omitempty"`
}

type SessionResponse struct {
	ID         string     `json:"id"`
	ConfigName string     `json:"config_name"`
	State      *GameState `json:"state"`
}

type AdvanceResponse struct {
	Result *struct {
		Phase  string   `json:"phase"`
		Turn   int      `json:"turn"`
		Events []string `json:"events,omitempty"`
	} `json:"result"`
	State *GameState `json:"state"`
}

type PlayerInput struct {
	Kind   string                 `json:"kind"`
	Values map[string]interface{} `json:"values"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configID string) (*GameState, error) {
	var reqBody []byte
	var err error

	if configID != "" {
		reqBody, err = json.Marshal(map[string]string{"config_id": configID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.State, nil
}

func (c *Client) GetState() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/state", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get state failed: %s - %s", resp.Status, string(body))
	}

	var state GameState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	return &state, nil
}

func (c *Client) Advance() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/advance", c.baseURL, c.sessionID)
	return c.executePost(url, nil)
}

func (c *Client) SubmitInput(input *PlayerInput) (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/input", c.baseURL, c.sessionID)
	return c.executePost(url, input)
}

func (c *Client) executePost(url string, payload interface{}) (*GameState, error) {
	var reqBody []byte
	var err error

	if payload != nil {
		reqBody, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
	}

	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("request failed (%d): %s", resp.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("request failed: %s - %s", resp.Status, string(body))
	}

	var advResp AdvanceResponse
	if err := json.Unmarshal(body, &advResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return advResp.State, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "", "Config ID to play (base, quick, all-modules)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	maxSteps := flag.Int("max-steps", 2000, "Maximum advance/input steps before giving up")
	seed := flag.Int64("seed", 0, "Strategy seed (0 = time-based)")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between steps in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var state *GameState
	var err error

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		// Use explicitly provided session
		savedSessionID = *continueSession
	} else {
		// Try to load saved session
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		// Resume existing session
		client.sessionID = savedSessionID
		log.Printf("🔄 Resuming session: %s", client.sessionID)
		state, err = client.GetState()
		if err != nil {
			log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = "" // Force create new
		} else {
			log.Printf("Session resumed - Turn: %d, Phase: %s, Cash: %d",
				state.Turn, state.Phase, state.Cash)
		}
	}

	if savedSessionID == "" {
		// Create new session
		state, err = client.CreateSession(*configID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("✨ Session created: %s", client.sessionID)
		log.Printf("Turn: %d, Phase: %s, Cash: %d", state.Turn, state.Phase, state.Cash)

		// Save session ID for next run
		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	strategy := NewTableStrategy(*seed)

	stepCount := 0
	for !state.GameOver && stepCount < *maxSteps {
		if *verbose && stepCount%25 == 0 {
			log.Printf("Turn: %d, Phase: %s, Cash: %d, Bank breaks: %d",
				state.Turn, state.Phase, state.Cash, state.BankBreaks)
		}

		var newState *GameState
		if state.InputRequest != nil {
			// The automa is suspended waiting for board information
			input := strategy.Answer(state)
			if *verbose {
				log.Printf("Answering %s input", input.Kind)
			}
			newState, err = client.SubmitInput(input)
		} else {
			newState, err = client.Advance()
		}

		if err != nil {
			log.Printf("Step failed: %v", err)
			// Re-fetch state in case a broadcast raced the response
			newState, err = client.GetState()
			if err != nil {
				log.Fatalf("Lost session: %v", err)
			}
		}
		state = newState
		stepCount++

		// Add delay if specified
		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	log.Printf("\nFinished after %d steps", stepCount)
	log.Printf("Turn: %d, Cash: %d, Bank breaks: %d", state.Turn, state.Cash, state.BankBreaks)
	log.Printf("Session: %s", client.sessionID)

	if state.GameOver {
		log.Printf("🏁 GAME OVER: %s", state.GameOverReason)
		os.Exit(0)
	}

	log.Printf("❌ Hit step limit before the game ended")
	os.Exit(1)
}
