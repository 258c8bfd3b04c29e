package client

import (
	"context"
	"fmt"

	"github.com/air846/personal-blog-system/pkg/domain"
)

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Nickname string `json:"nickname,omitempty"`
}

// LoginRequest carries credentials for Login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest changes the caller's display fields.
type UpdateUserRequest struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
}

// ChangePasswordRequest changes the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Register creates a new account. It does not log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if err := c.post(ctx, "/user/register", req, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	var token string
	if err := c.post(ctx, "/user/login", req, &token); err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	return token, nil
}

// GetUserInfo returns the authenticated user's profile.
func (c *Client) GetUserInfo(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.get(ctx, "/user/info", nil, &profile); err != nil {
		return nil, fmt.Errorf("client.GetUserInfo: %w", err)
	}
	return &profile, nil
}

// UpdateUserInfo updates the authenticated user's nickname and avatar.
func (c *Client) UpdateUserInfo(ctx context.Context, req UpdateUserRequest) error {
	if err := c.put(ctx, "/user/info", req, nil); err != nil {
		return fmt.Errorf("client.UpdateUserInfo: %w", err)
	}
	return nil
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if err := c.put(ctx, "/user/password", req, nil); err != nil {
		return fmt.Errorf("client.ChangePassword: %w", err)
	}
	return nil
}
