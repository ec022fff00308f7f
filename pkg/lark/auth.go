package lark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// TenantAccessToken exchanges app credentials for a short-lived tenant token.
// Single attempt; any transport failure or non-zero code wraps ErrAuth.
//
// The token field sits at the top level of the response, outside the usual
// data envelope.
func (c *Client) TenantAccessToken(ctx context.Context, appID, appSecret string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	payload, err := json.Marshal(map[string]string{
		"app_id":     appID,
		"app_secret": appSecret,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal credentials: %v", ErrAuth, err)
	}

	u := c.base + "/open-apis/auth/v3/tenant_access_token/internal"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	var body struct {
		Code              int    `json:"code"`
		Msg               string `json:"msg"`
		TenantAccessToken string `json:"tenant_access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrAuth, err)
	}
	if body.Code != 0 {
		return "", fmt.Errorf("%w: code=%d msg=%q", ErrAuth, body.Code, body.Msg)
	}
	if body.TenantAccessToken == "" {
		return "", fmt.Errorf("%w: empty token in response", ErrAuth)
	}

	c.log.Debug().Msg("acquired tenant access token")
	return body.TenantAccessToken, nil
}
