package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the HTTP client for the bot's admin API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new admin API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ReactionRole is one emoji to role mapping
type ReactionRole struct {
	Emoji  string `json:"emoji"`
	RoleID uint64 `json:"role_id"`
}

// Group is a reaction-role group as reported by the bot
type Group struct {
	MessageID         uint64         `json:"message_id"`
	MutuallyExclusive bool           `json:"mutually_exclusive"`
	Roles             []ReactionRole `json:"roles"`
}

// State is the bot's cached state
type State struct {
	Initialized bool    `json:"initialized"`
	Day         string  `json:"day"`
	LoadedAt    string  `json:"loaded_at,omitempty"`
	Groups      []Group `json:"groups"`
}

// ============ State ============

// GetState gets the cached state
func (c *Client) GetState() (*State, error) {
	var state State
	if err := c.get("/api/state", &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// ResetState reloads the configuration document
func (c *Client) ResetState() (*State, error) {
	var state State
	if err := c.post("/api/state/reset", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// ============ Cycles ============

// CycleDaily queues the daily notification
func (c *Client) CycleDaily() (string, error) {
	var result struct {
		Day string `json:"day"`
	}
	if err := c.post("/api/cycle/daily", nil, &result); err != nil {
		return "", err
	}
	return result.Day, nil
}

// CycleWeekly rotates the schedule
func (c *Client) CycleWeekly() error {
	return c.post("/api/cycle/weekly", nil, nil)
}

// ============ Queue ============

// Enqueue adds a message to the outbound queue and returns its row id.
// A zero guildID uses the bot's guild.
func (c *Client) Enqueue(guildID, channelID uint64, msg string, reactions []string) (int64, error) {
	body := map[string]interface{}{
		"guild_id":   guildID,
		"channel_id": channelID,
		"msg":        msg,
		"reactions":  reactions,
	}
	var result struct {
		ID int64 `json:"id"`
	}
	if err := c.post("/api/queue", body, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

// QueueDepth counts pending messages
func (c *Client) QueueDepth() (int64, error) {
	var result struct {
		Depth int64 `json:"depth"`
	}
	if err := c.get("/api/queue/depth", &result); err != nil {
		return 0, err
	}
	return result.Depth, nil
}

// ============ HTTP Helpers ============

func (c *Client) get(path string, result interface{}) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, result)
}

func (c *Client) post(path string, body interface{}, result interface{}) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", reader)
	if err != nil {
		return fmt.Errorf("HTTP POST failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, result)
}

func decodeResponse(resp *http.Response, result interface{}) error {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
