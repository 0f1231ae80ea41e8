/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/session"

	"go.uber.org/zap"
)

var _ session.Authenticator = (*Client)(nil)

// Login exchanges a phone/password pair for a principal and token. The
// session credential is never attached to this request.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	var raw json.RawMessage
	err := c.mutate(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   req,
		token:  explicitToken(""),
	}, &raw, TagOf(ResourceUser))
	if err != nil {
		return nil, err
	}
	return parseAuth(raw, "/auth/login")
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	var raw json.RawMessage
	err := c.mutate(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   req,
		token:  explicitToken(""),
	}, &raw, TagOf(ResourceUser))
	if err != nil {
		return nil, err
	}
	return parseAuth(raw, "/auth/register")
}

// Logout tells the backend the session is over. Failures are logged and
// returned but callers clear local state regardless.
func (c *Client) Logout(ctx context.Context) error {
	err := c.mutate(ctx, request{method: http.MethodPost, path: "/auth/logout"}, nil, TagOf(ResourceUser))
	if err != nil {
		zap.L().Debug("Remote logout failed", zap.Error(err))
	}
	return err
}

// WhoAmI resolves the principal owning token, bypassing the cache and the
// session credential.
func (c *Client) WhoAmI(ctx context.Context, token string) (*models.Principal, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/auth/me",
		token:  explicitToken(token),
	}, &raw); err != nil {
		return nil, err
	}
	return parseUser(raw, "/auth/me")
}

// Me returns the current session's principal.
func (c *Client) Me(ctx context.Context) (*models.Principal, error) {
	return cached(ctx, c, "auth/me", func(ctx context.Context) (*models.Principal, []Tag, error) {
		var raw json.RawMessage
		if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me"}, &raw); err != nil {
			return nil, nil, err
		}
		p, err := parseUser(raw, "/auth/me")
		if err != nil {
			return nil, nil, err
		}
		return p, []Tag{TagOf(ResourceUser), TagFor(ResourceUser, p.Id)}, nil
	})
}

// UpdateProfile returns the updated principal, or nil when the response body
// does not carry one.
func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.Principal, error) {
	var raw json.RawMessage
	if err := c.mutate(ctx, request{
		method: http.MethodPut,
		path:   "/auth/profile",
		body:   req,
	}, &raw, TagOf(ResourceUser)); err != nil {
		return nil, err
	}
	return acceptedUser(raw, "/auth/profile"), nil
}

func (c *Client) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return c.mutate(ctx, request{
		method: http.MethodPut,
		path:   "/auth/password",
		body:   req,
	}, nil, TagOf(ResourceUser))
}

func (c *Client) AdminUpdateUser(ctx context.Context, id string, req models.AdminUpdateUserRequest) (*models.Principal, error) {
	path := "/admin/user/" + url.PathEscape(id)
	var raw json.RawMessage
	if err := c.mutate(ctx, request{
		method: http.MethodPut,
		path:   path,
		body:   req,
	}, &raw, TagFor(ResourceUser, id), TagFor(ResourceAgent, id)); err != nil {
		return nil, err
	}
	return acceptedUser(raw, path), nil
}

func (c *Client) AdminChangeUserPassword(ctx context.Context, id, newPassword string) error {
	return c.mutate(ctx, request{
		method: http.MethodPut,
		path:   "/admin/user/" + url.PathEscape(id) + "/password",
		body:   models.ChangePasswordRequest{NewPassword: newPassword},
	}, nil, TagFor(ResourceUser, id))
}

func acceptedUser(raw json.RawMessage, path string) *models.Principal {
	p, err := parseUser(raw, path)
	if err != nil {
		unparsedResult(path, err)
		return nil
	}
	return p
}
