// Package dialer starts outbound survey calls through a telephony dispatch
// API: one request registers the voice agent for a room, a second bridges
// the callee into that room over a SIP trunk.
package dialer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPDoer abstracts HTTP clients used by the dialer.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CallRequest describes one outbound survey call.
type CallRequest struct {
	Room        string
	AgentName   string
	PhoneNumber string
	RowIndex    int
	TrunkID     string
}

// Call identifies a dispatched call.
type Call struct {
	DispatchID    string
	ParticipantID string
	Room          string
}

// CallMetadata is attached to the dispatch so the agent worker can find its
// sheet row when the call connects.
type CallMetadata struct {
	PhoneNumber string `json:"phone_number"`
	RowIndex    int    `json:"row_index"`
}

// Dialer places outbound calls.
type Dialer interface {
	StartCall(ctx context.Context, request CallRequest) (Call, error)
}

// Client is a Dialer over the dispatch HTTP API.
type Client struct {
	BaseURL  string
	APIToken string
	Client   HTTPDoer
}

// NewClient constructs a dispatch API client with explicit settings.
func NewClient(baseURL, apiToken string, client HTTPDoer) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if strings.TrimSpace(apiToken) == "" {
		return nil, fmt.Errorf("api token is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		APIToken: apiToken,
		Client:   client,
	}, nil
}

type dispatchRequest struct {
	AgentName string `json:"agent_name"`
	Room      string `json:"room"`
	Metadata  string `json:"metadata"`
}

type dispatchResponse struct {
	ID string `json:"id"`
}

type sipParticipantRequest struct {
	Room                string `json:"room_name"`
	TrunkID             string `json:"sip_trunk_id"`
	CallTo              string `json:"sip_call_to"`
	ParticipantIdentity string `json:"participant_identity"`
}

type sipParticipantResponse struct {
	ID string `json:"participant_id"`
}

// StartCall registers an agent dispatch for the room, then dials the callee
// into it as a SIP participant.
func (c *Client) StartCall(ctx context.Context, request CallRequest) (Call, error) {
	if request.PhoneNumber == "" {
		return Call{}, fmt.Errorf("phone number is required")
	}
	if request.TrunkID == "" {
		return Call{}, fmt.Errorf("trunk id is required")
	}

	metadata, err := json.Marshal(CallMetadata{
		PhoneNumber: request.PhoneNumber,
		RowIndex:    request.RowIndex,
	})
	if err != nil {
		return Call{}, fmt.Errorf("marshal call metadata: %w", err)
	}

	var dispatch dispatchResponse
	err = c.post(ctx, "/v1/agent-dispatches", dispatchRequest{
		AgentName: request.AgentName,
		Room:      request.Room,
		Metadata:  string(metadata),
	}, &dispatch)
	if err != nil {
		return Call{}, fmt.Errorf("create dispatch: %w", err)
	}

	var participant sipParticipantResponse
	err = c.post(ctx, "/v1/sip-participants", sipParticipantRequest{
		Room:                request.Room,
		TrunkID:             request.TrunkID,
		CallTo:              request.PhoneNumber,
		ParticipantIdentity: "phone_user",
	}, &participant)
	if err != nil {
		return Call{}, fmt.Errorf("create sip participant: %w", err)
	}

	return Call{
		DispatchID:    dispatch.ID,
		ParticipantID: participant.ID,
		Room:          request.Room,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("dispatch api error: %s", strings.TrimSpace(string(responseBody)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
