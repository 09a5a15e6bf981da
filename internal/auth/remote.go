package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

// RemoteAuthProvider talks to the hosted identity provider over its REST
// surface. A failed session fetch is reported as an error and the caller
// treats it the same as no session.
type RemoteAuthProvider struct {
	BaseURL    string
	AnonKey    string
	HTTPClient *http.Client
	logger     internal.Logger
}

func NewRemoteAuthProvider(baseURL, anonKey string, logger internal.Logger) *RemoteAuthProvider {
	return &RemoteAuthProvider{
		BaseURL:    baseURL,
		AnonKey:    anonKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	User        struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			AvatarURL string `json:"avatar_url"`
		} `json:"user_metadata"`
	} `json:"user"`
}

type providerError struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

func (a *RemoteAuthProvider) SignUp(ctx context.Context, email, password string) (*internal.Session, error) {
	return a.tokenCall(ctx, a.BaseURL+"/auth/v1/signup", email, password)
}

func (a *RemoteAuthProvider) SignIn(ctx context.Context, email, password string) (*internal.Session, error) {
	return a.tokenCall(ctx, a.BaseURL+"/auth/v1/token?grant_type=password", email, password)
}

func (a *RemoteAuthProvider) OAuthURL(provider, redirectTo string) (string, error) {
	if provider == "" {
		return "", errors.New("oauth provider is required")
	}
	q := url.Values{}
	q.Set("provider", provider)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	return a.BaseURL + "/auth/v1/authorize?" + q.Encode(), nil
}

func (a *RemoteAuthProvider) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, "POST", a.BaseURL+"/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	a.setHeaders(req, accessToken)
	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		a.logger.Errorf("failed to call identity provider: %v", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		a.logger.Errorf("identity provider logout returned %d", resp.StatusCode)
		return errors.New("sign out failed")
	}
	return nil
}

func (a *RemoteAuthProvider) GetSession(ctx context.Context, accessToken string) (*internal.Session, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", a.BaseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	a.setHeaders(req, accessToken)
	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		a.logger.Errorf("failed to fetch session: %v", err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("no active session")
	}

	var body struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			AvatarURL string `json:"avatar_url"`
		} `json:"user_metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		a.logger.Errorf("failed to decode session response: %v", err)
		return nil, err
	}
	return &internal.Session{
		AccessToken: accessToken,
		UserID:      body.ID,
		Email:       body.Email,
		AvatarURL:   body.UserMetadata.AvatarURL,
	}, nil
}

func (a *RemoteAuthProvider) tokenCall(ctx context.Context, endpoint, email, password string) (*internal.Session, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	a.setHeaders(req, "")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		a.logger.Errorf("failed to call identity provider: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		var perr providerError
		if json.Unmarshal(raw, &perr) == nil {
			if perr.ErrorDescription != "" {
				return nil, errors.New(perr.ErrorDescription)
			}
			if perr.Message != "" {
				return nil, errors.New(perr.Message)
			}
		}
		return nil, ErrInvalidCredentials
	}

	var tok tokenResponse
	if err := json.Unmarshal(raw, &tok); err != nil {
		a.logger.Errorf("failed to decode token response: %v", err)
		return nil, err
	}
	return &internal.Session{
		AccessToken: tok.AccessToken,
		UserID:      tok.User.ID,
		Email:       tok.User.Email,
		AvatarURL:   tok.User.UserMetadata.AvatarURL,
		ExpiresAt:   tok.ExpiresAt,
	}, nil
}

func (a *RemoteAuthProvider) setHeaders(req *http.Request, accessToken string) {
	req.Header.Set("apikey", a.AnonKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
}
