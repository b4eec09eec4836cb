package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"twenty48/game"
)

type remoteAgent struct {
	url    string
	client *http.Client
}

// NewRemoteAgent returns an agent that asks the server at baseURL for every
// move. A nil client means http.DefaultClient.
func NewRemoteAgent(baseURL string, client *http.Client) Agent {
	if client == nil {
		client = http.DefaultClient
	}
	return &remoteAgent{url: strings.TrimSuffix(baseURL, "/") + "/findmove", client: client}
}

func (a *remoteAgent) FindMove(ctx context.Context, board *game.Board) (Decision, error) {
	body, err := json.Marshal(findMoveRequest{Cells: board.Cells()})
	if err != nil {
		return Decision{}, fmt.Errorf("failed to encode board: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return Decision{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var payload findMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Decision{}, fmt.Errorf("failed to decode move: %w", err)
	}
	if payload.Move == nil {
		return Decision{}, nil
	}
	return Decision{Move: *payload.Move, HasMove: true}, nil
}
