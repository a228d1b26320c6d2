package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tablemind/chain-automa/game/engine"
	"github.com/tablemind/chain-automa/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Chain Automa",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Chain Automa - MCP Interface

This is a thin client that proxies all requests to the REST API server.

PURPOSE:
Drive the solo-mode automated opponent for a restaurant chain board game.
Each turn the automa runs through nine phases, drawing action and
competition cards and moving its board tracks. Some steps pause and ask
you to report what is physically on the board (demand, tile choices,
dinnertime sales); answer those with submit_input.

AVAILABLE TOOLS:
- create_session: Start a new automa game
- list_sessions / get_session: Manage running games
- game_state: Full automa state (tracks, inventory, marketeers, restaurants)
- advance_phase: Run the next phase step
- submit_input: Answer a pending input request
- undo: Roll back the last committed step
- bank_break: Record that the bank broke this round
- quick_draw: Draw the next action card (quick mode only)
- set_track: Write a track position directly (manual correction)
- list_configs: List available configurations

TYPICAL LOOP:
Call advance_phase until game_state shows an input_request, answer it
with submit_input, and keep advancing. The turn rolls over after the
cleanup phase.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new automa game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active automa sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Automa operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current automa state including tracks, inventory, marketeers and any pending input request",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "advance_phase",
		Description: "Run the next phase step of the automa turn. Fails with a conflict if the automa is waiting for input.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleAdvance)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "submit_input",
		Description: "Answer the automa's pending input request. The kind must match the pending request and values must fill its fields.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"kind": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"demand_info", "demand_tiebreak", "place_restaurant", "sold_items", "earnings"},
					"description": "Kind of the pending input request",
				},
				"values": map[string]interface{}{
					"type":        "object",
					"description": "Field values keyed by field name, e.g. {\"demand\": {\"burger\": 2}}",
				},
			},
			Required: []string{"session_id", "kind", "values"},
		},
	}, c.handleSubmitInput)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Roll the automa back one committed step",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bank_break",
		Description: "Record that the bank broke this round. The second bank break ends the game.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleBankBreak)

	// Quick mode
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "quick_draw",
		Description: "Draw the next action card without running the phase machine (quick mode sessions only)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleQuickDraw)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_track",
		Description: "Write a track position directly, bypassing the phase machine. Used for manual corrections.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"track": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"competition", "recruit_train", "price_distance", "waitresses"},
					"description": "Track to set",
				},
				"position": map[string]interface{}{
					"type":        "integer",
					"description": "Target position within the track bounds",
				},
			},
			Required: []string{"session_id", "track", "position"},
		},
	}, c.handleSetTrack)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatState(session.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Total    int                   `json:"total"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Total)
	for _, s := range response.Sessions {
		phase := ""
		if s.State != nil {
			phase = fmt.Sprintf(", Turn %d %s", s.State.Turn, s.State.Phase)
		}
		result += fmt.Sprintf("- %s (Config: %s%s, Created: %s)\n",
			s.ID, s.ConfigName, phase, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state service.StateResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleAdvance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var resp service.AdvanceResponse
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/advance", sessionID), nil, &resp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatAdvance(&resp)), nil
}

func (c *Client) handleSubmitInput(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	kind, _ := args["kind"].(string)
	values, _ := args["values"].(map[string]interface{})

	body := map[string]interface{}{
		"kind":   kind,
		"values": values,
	}

	var resp service.AdvanceResponse
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/input", sessionID), body, &resp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatAdvance(&resp)), nil
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string                 `json:"message"`
		State   *service.StateResponse `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/undo", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleBankBreak(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var resp service.AdvanceResponse
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bank-break", sessionID), nil, &resp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Bank break recorded (%d total)\n\n%s",
		resp.State.BankBreaks, formatState(resp.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleQuickDraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Card *engine.Card `json:"card"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/quick-draw", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCard(response.Card)), nil
}

func (c *Client) handleSetTrack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	track, _ := args["track"].(string)
	position := 0
	if p, ok := args["position"].(float64); ok {
		position = int(p)
	}

	body := map[string]interface{}{
		"track":    track,
		"position": position,
	}

	var response struct {
		Message string                 `json:"message"`
		State   *service.StateResponse `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/track", sessionID), body, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		modules := "none"
		if len(config.Modules) > 0 {
			modules = strings.Join(config.Modules, ", ")
		}
		result += fmt.Sprintf("• %s (%s)\n  Mode: %s, Modules: %s\n\n",
			config.ConfigID, config.Name, config.Mode, modules)
	}

	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatState(session.State))
}

func formatState(state *service.StateResponse) string {
	if state == nil {
		return "No state available"
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("Turn %d | Phase: %s | Cash: %d | Bank breaks: %d\n",
		state.Turn, state.Phase, state.Cash, state.BankBreaks))

	b.WriteString(fmt.Sprintf("Tracks: competition=%s recruit_train=%d price_distance=%d waitresses=%d\n",
		state.Tracks.Competition, state.Tracks.RecruitTrain,
		state.Tracks.PriceDistance, state.Tracks.Waitresses))

	if state.Inventory != nil {
		b.WriteString("Inventory:\n")
		for _, item := range engine.AllFoodItems {
			stock := state.Inventory.Items[item]
			if stock == nil || stock.Total() == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("  %s: fresh=%d aging=%d\n",
				item, stock.Top, stock.Bottom))
		}
	}

	if state.Restaurants != nil {
		b.WriteString(fmt.Sprintf("Restaurants: %d/%d placed",
			state.Restaurants.Count(), state.Restaurants.Cap))
		if state.Restaurants.Count() > 0 {
			tiles := make([]string, 0, state.Restaurants.Count())
			for _, r := range state.Restaurants.Restaurants {
				tiles = append(tiles, fmt.Sprintf("%d", r.Tile))
			}
			b.WriteString(fmt.Sprintf(" (tiles %s)", strings.Join(tiles, ", ")))
		}
		b.WriteString("\n")
	}

	if state.Marketeers != nil {
		for _, camp := range state.Marketeers.Campaigns {
			b.WriteString(fmt.Sprintf("Marketeer slot %d: %s for %s, %s turns left\n",
				camp.Slot, camp.Rank, camp.Item, formatDuration(camp.TurnsLeft)))
		}
	}

	if state.Employees != nil && state.Employees.Count() > 0 {
		b.WriteString(fmt.Sprintf("Employees: %s\n", strings.Join(state.Employees.Employees, ", ")))
	}

	if len(state.Milestones) > 0 {
		b.WriteString(fmt.Sprintf("Milestones: %s\n", strings.Join(state.Milestones, ", ")))
	}

	if state.CurrentCard != nil {
		b.WriteString(fmt.Sprintf("Current card: %s\n", cardRef(state.CurrentCard)))
	}
	if state.CompetitionCard != nil {
		b.WriteString(fmt.Sprintf("Competition card: %s\n", cardRef(state.CompetitionCard)))
	}

	if state.InputRequest != nil {
		b.WriteString("\n⏸ WAITING FOR INPUT\n")
		b.WriteString(formatInputRequest(state.InputRequest))
	}

	if state.GameOver {
		b.WriteString(fmt.Sprintf("\n🏁 GAME OVER: %s\n", state.GameOverReason))
	}

	if len(state.ActionLog) > 0 {
		b.WriteString("\nRecent actions:\n")
		log := state.ActionLog
		if len(log) > 8 {
			log = log[len(log)-8:]
		}
		for _, line := range log {
			b.WriteString("  " + line + "\n")
		}
	}

	return b.String()
}

func formatDuration(turns int) string {
	if turns < 0 {
		return "permanent"
	}
	return fmt.Sprintf("%d", turns)
}

func formatInputRequest(req *engine.InputRequest) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Kind: %s\n%s\n", req.Kind, req.Prompt))
	for _, f := range req.Fields {
		required := ""
		if f.Required {
			required = " (required)"
		}
		b.WriteString(fmt.Sprintf("  - %s: %s%s", f.Name, f.Type, required))
		if f.Description != "" {
			b.WriteString(" - " + f.Description)
		}
		b.WriteString("\n")
	}
	if len(req.Options) > 0 {
		opts := make([]string, 0, len(req.Options))
		for _, o := range req.Options {
			opts = append(opts, string(o))
		}
		b.WriteString(fmt.Sprintf("  Options: %s\n", strings.Join(opts, ", ")))
	}
	return b.String()
}

func formatAdvance(resp *service.AdvanceResponse) string {
	var b strings.Builder

	if resp.Result != nil {
		b.WriteString(fmt.Sprintf("Phase: %s (turn %d)\n", resp.Result.Phase, resp.Result.Turn))
		for _, event := range resp.Result.Events {
			b.WriteString("• " + event + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(formatState(resp.State))
	return b.String()
}

func cardRef(card *engine.Card) string {
	return fmt.Sprintf("%s #%d", card.Type, card.Number)
}

func formatCard(card *engine.Card) string {
	if card == nil {
		return "No card drawn"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Drew %s\n", cardRef(card)))

	if card.Front != nil {
		b.WriteString(fmt.Sprintf("Marker: %s (%+d)\n", card.Front.Marker.Symbol, card.Front.Marker.Delta))
		if card.Front.Marker.Event {
			b.WriteString("Event: draw a competition card\n")
		}
		if card.Front.MarketItem != "" {
			b.WriteString(fmt.Sprintf("Market: %s\n", card.Front.MarketItem))
		}
		for _, slot := range card.Front.Actions {
			star := ""
			if slot.Star {
				star = " ★"
			}
			b.WriteString(fmt.Sprintf("  Slot %d: %s %s%s\n", slot.Slot, slot.Type, slot.Target, star))
		}
	}

	return b.String()
}
