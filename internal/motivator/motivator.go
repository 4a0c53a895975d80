package motivator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"reminder_webapp/internal/domain"
	"reminder_webapp/internal/logger"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// fallbacks are served whenever the upstream call fails; the user never
// sees a remote error, only a canned nudge.
var fallbacks = []string{
	"Deadlines don't wait. Neither should you — %s is still on your list.",
	"One small push on %q now beats a big regret later.",
	"%s slipped past its deadline. Reclaim it today.",
	"You planned %q for a reason. Get back on it.",
	"Overdue is not over. Finish %s and keep the streak alive.",
}

// Client calls a chat-completion endpoint to produce a short motivational
// message for an overdue task.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client

	randMu sync.Mutex
	rand   *rand.Rand
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// New builds a client. An empty baseURL disables remote calls entirely;
// Message then always serves a local template.
func New(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Message returns a short motivational string for taskTitle. It never
// fails: any upstream problem degrades to a local template.
func (c *Client) Message(ctx context.Context, taskTitle string) string {
	if c.baseURL == "" {
		return c.fallback(taskTitle)
	}

	msg, err := c.remote(ctx, taskTitle)
	if err != nil {
		logger.Warn("motivator upstream failed, using fallback", "err", err)
		return c.fallback(taskTitle)
	}
	return msg
}

func (c *Client) remote(ctx context.Context, taskTitle string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You write one short, punchy motivational sentence for someone whose task is overdue. No preamble, no quotes."},
			{Role: "user", Content: "The overdue task is: " + taskTitle},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", domain.ErrRemoteUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode: %v", domain.ErrRemoteUnavailable, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrRemoteUnavailable)
	}

	msg := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if msg == "" {
		return "", fmt.Errorf("%w: empty message", domain.ErrRemoteUnavailable)
	}
	return msg, nil
}

func (c *Client) fallback(taskTitle string) string {
	c.randMu.Lock()
	tpl := fallbacks[c.rand.Intn(len(fallbacks))]
	c.randMu.Unlock()
	if strings.Contains(tpl, "%") {
		return fmt.Sprintf(tpl, taskTitle)
	}
	return tpl
}
