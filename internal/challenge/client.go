// Package challenge is the HTTP client for the competition API. All private
// endpoints are SigV4-signed against the execute-api service; the leaderboard
// is public and goes unsigned.
package challenge

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/logger"
)

const (
	signingService = "execute-api"
	requestTimeout = 120 * time.Second
)

// Config selects the API endpoints and signing region.
type Config struct {
	BaseURL       string
	PublicBaseURL string
	Region        string
}

// Client performs signed requests against the challenge API.
type Client struct {
	http    *http.Client
	signer  *v4.Signer
	creds   aws.CredentialsProvider
	baseURL string
	public  string
	region  string
	logger  *zap.Logger
}

// New resolves AWS credentials from the default chain and builds a client.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("challenge base url is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		return nil, fmt.Errorf("aws credentials not found (configure with aws configure): %w", err)
	}

	return &Client{
		http:    &http.Client{Timeout: requestTimeout},
		signer:  v4.NewSigner(),
		creds:   awsCfg.Credentials,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		public:  strings.TrimRight(cfg.PublicBaseURL, "/"),
		region:  awsCfg.Region,
		logger:  logger,
	}, nil
}

// ChatReply is one turn of the persona simulator.
type ChatReply struct {
	Response          string `mapstructure:"response"`
	ConversationID    string `mapstructure:"conversation_id"`
	ConversationCount int    `mapstructure:"conversation_count_week"`
}

// Chat sends one message to a simulated persona. An empty conversation id
// starts a new conversation.
func (c *Client) Chat(ctx context.Context, personaID, message, conversationID string) (*ChatReply, error) {
	payload := map[string]any{
		"persona_id": personaID,
		"message":    message,
	}
	if conversationID != "" {
		payload["conversation_id"] = conversationID
	} else {
		payload["conversation_id"] = nil
	}

	body, err := c.signedRequest(ctx, http.MethodPost, "chat", payload)
	if err != nil {
		return nil, err
	}

	var reply ChatReply
	if err := decodeBody(body, &reply); err != nil {
		return nil, fmt.Errorf("parse chat response: %w", err)
	}
	if reply.Response == "" || reply.ConversationID == "" {
		return nil, fmt.Errorf("chat response missing required fields")
	}
	return &reply, nil
}

// SubmitReceipt is the acknowledgement returned for an accepted batch.
type SubmitReceipt struct {
	Message         string `mapstructure:"message"`
	SubmissionID    string `mapstructure:"submission_id"`
	SubmissionCount int    `mapstructure:"submission_count"`
}

// Submit posts a full suggestion batch for scoring.
func (c *Client) Submit(ctx context.Context, results any) (*SubmitReceipt, error) {
	body, err := c.signedRequest(ctx, http.MethodPost, "submit", map[string]any{"submission": results})
	if err != nil {
		return nil, err
	}

	receipt := &SubmitReceipt{}
	if len(body) > 0 {
		if err := decodeBody(body, receipt); err != nil {
			c.logger.Warn("submission accepted but response body was not parseable", zap.Error(err))
		}
	}
	return receipt, nil
}

// ScoredSubmission is one entry of the server-side submission history.
type ScoredSubmission struct {
	Date  string  `json:"date" mapstructure:"CreatedAt"`
	Score float64 `json:"score" mapstructure:"Score"`
}

// Submissions fetches the scored submission history.
func (c *Client) Submissions(ctx context.Context) ([]ScoredSubmission, error) {
	body, err := c.signedRequest(ctx, http.MethodGet, "submit", nil)
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse submissions list: %w", err)
	}
	entries := make([]ScoredSubmission, 0, len(raw))
	for _, item := range raw {
		var entry ScoredSubmission
		if err := mapstructure.WeakDecode(item, &entry); err != nil {
			return nil, fmt.Errorf("decode submission entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Health probes the signed health endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.signedRequest(ctx, http.MethodGet, "health", nil)
	return err
}

// BaseURL exposes the configured endpoint for status output.
func (c *Client) BaseURL() string { return c.baseURL }

// LeaderboardEntry is one row of the public leaderboard.
type LeaderboardEntry struct {
	Date     string  `mapstructure:"CreatedAt"`
	Score    float64 `mapstructure:"Score"`
	TeamName string  `mapstructure:"TeamName"`
}

// Leaderboard fetches the public leaderboard. No signing involved.
func (c *Client) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	if c.public == "" {
		return nil, fmt.Errorf("public base url is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.public+"/human_eval/leaderboard", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req, "leaderboard")
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse leaderboard: %w", err)
	}
	entries := make([]LeaderboardEntry, 0, len(raw))
	for _, item := range raw {
		var entry LeaderboardEntry
		if err := mapstructure.WeakDecode(item, &entry); err != nil {
			return nil, fmt.Errorf("decode leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *Client) signedRequest(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("serialize payload for %s: %w", path, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	hash := sha256.Sum256(body)
	creds, err := c.creds.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieve aws credentials: %w", err)
	}
	if err := c.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(hash[:]), signingService, c.region, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("sign request to %s: %w", path, err)
	}

	return c.do(req, path)
}

func (c *Client) do(req *http.Request, path string) ([]byte, error) {
	c.logger.Debug("challenge api request",
		zap.String("method", req.Method),
		zap.String("path", path),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during request to %q: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %q: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		preview := logger.TruncateForLog(string(body), 300)
		return nil, fmt.Errorf("api call %q failed: status=%d body=%s", path, resp.StatusCode, preview)
	}
	return body, nil
}

func decodeBody(body []byte, out any) error {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return err
	}
	return mapstructure.WeakDecode(raw, out)
}
