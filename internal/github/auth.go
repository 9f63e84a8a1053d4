package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// User is the authenticated-user response subset we care about.
type User struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

// CheckAuth verifies the configured token against GET /user.
// Returns ErrNoToken without touching the network when no token is set,
// and ErrAuthInvalid when GitHub rejects the credentials.
func (c *Client) CheckAuth(ctx context.Context) (*User, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}

	body, err := c.get(ctx, c.apiBase+"/user", acceptJSON, true)
	if err != nil {
		// A 404 here means the token lacks scopes or is malformed.
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAuthInvalid
		}
		return nil, err
	}

	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("%w: decoding user: %v", ErrAPIError, err)
	}
	return &u, nil
}
