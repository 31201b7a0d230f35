package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jask/creatordir/internal/directory"
)

// maxBody bounds the response size; embedded photos make payloads large.
const maxBody = 64 << 20

// Client fetches the participant directory from the remote API. It performs
// exactly one request per call: retries belong to the caller and timeouts to
// the injected *http.Client.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
	maxBody int64
}

// New creates a client for the API rooted at baseURL (e.g. http://host/api).
func New(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    httpClient,
		log:     log.With().Str("component", "remote").Logger(),
		maxBody: maxBody,
	}
}

// FetchAll returns the full participant collection in server order.
func (c *Client) FetchAll(ctx context.Context) ([]directory.Participant, error) {
	url := c.baseURL + "/participants"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build participants request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("participants request failed")
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read participants response: %w", err)}
	}
	truncated := int64(len(body)) > c.maxBody
	if truncated {
		c.log.Warn().Int64("limit", c.maxBody).Int("status", resp.StatusCode).Msg("participants response exceeds size limit")
		body = body[:c.maxBody]
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(body)
		c.log.Warn().Int("status", resp.StatusCode).Str("error", msg).Msg("participants request rejected")
		return nil, &RemoteError{Status: resp.StatusCode, Message: msg}
	}

	if truncated {
		return nil, &RemoteError{Status: resp.StatusCode, Message: InvalidPayloadMessage}
	}
	res, err := directory.DecodeList(body)
	if err != nil {
		c.log.Warn().Err(err).Int("status", resp.StatusCode).Msg("undecodable participants payload")
		return nil, &RemoteError{Status: resp.StatusCode, Message: InvalidPayloadMessage}
	}
	if len(res.Skipped) > 0 {
		c.log.Warn().Ints("positions", res.Skipped).Msg("skipped malformed participant records")
	}
	c.log.Debug().Int("count", len(res.Participants)).Msg("participants fetched")
	return res.Participants, nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
	}
	return DefaultErrorMessage
}
