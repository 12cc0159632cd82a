package tournament

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient talks to the tournament backend over REST.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	token      string
}

// NewClient creates a new backend client.
func NewClient(baseURL, token string, timeout time.Duration) TournamentClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: timeout},
		BaseURL:    baseURL,
		token:      token,
	}
}

// Ensure APIClient implements the TournamentClient interface.
var _ TournamentClient = (*APIClient)(nil)

// GetCategory fetches the bracket payload of a single tournament category.
func (c *APIClient) GetCategory(ctx context.Context, categoryID string) (*CategoryPayload, error) {
	endpoint := fmt.Sprintf("%s/categories/%s", c.BaseURL, url.PathEscape(categoryID))
	var payload CategoryPayload
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, fmt.Errorf("error fetching category %s: %w", categoryID, err)
	}
	log.Info("Fetched category payload", "categoryID", categoryID, "groups", len(payload.Groups), "phases", len(payload.Elimination.Keys))
	return &payload, nil
}

// StoreSetScore submits one set's score for a game.
func (c *APIClient) StoreSetScore(ctx context.Context, score SetScore) error {
	body, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("failed to encode set score: %w", err)
	}
	endpoint := c.BaseURL + "/games/sets"
	if err := c.do(ctx, http.MethodPost, endpoint, body, nil); err != nil {
		return fmt.Errorf("error storing set %d of game %d: %w", score.SetNumber, score.GameID, err)
	}
	log.Debug("Stored set score", "gameID", score.GameID, "set", score.SetNumber, "score_1", score.Score1, "score_2", score.Score2)
	return nil
}

// GetGameDetail fetches the canonical sets, winner and status of a game.
func (c *APIClient) GetGameDetail(ctx context.Context, gameID int) (*GameDetail, error) {
	endpoint := c.BaseURL + "/games/" + strconv.Itoa(gameID)
	var detail GameDetail
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &detail); err != nil {
		return nil, fmt.Errorf("error fetching game %d: %w", gameID, err)
	}
	return &detail, nil
}

func (c *APIClient) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug("Requesting tournament backend", "method", method, "url", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from tournament backend", "status", resp.StatusCode, "body", string(respBody))
		return fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
