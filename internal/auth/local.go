package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

// LocalAuthProvider is the development stand-in for the hosted identity
// provider. Users live in memory and sessions are signed HS256 tokens.
type LocalAuthProvider struct {
	secret  []byte
	mu      sync.RWMutex
	users   map[string]*localUser // email -> user
	revoked map[string]struct{}   // token -> revoked
	logger  internal.Logger
}

type localUser struct {
	ID           string
	Email        string
	PasswordHash string
	AvatarURL    string
}

func NewLocalAuthProvider(secret string, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{
		secret:  []byte(secret),
		users:   make(map[string]*localUser),
		revoked: make(map[string]struct{}),
		logger:  logger,
	}
}

func (a *LocalAuthProvider) SignUp(ctx context.Context, email, password string) (*internal.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	a.mu.Lock()
	if _, exists := a.users[email]; exists {
		a.mu.Unlock()
		return nil, errors.New("user already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		a.mu.Unlock()
		return nil, err
	}
	u := &localUser{ID: uuid.NewString(), Email: email, PasswordHash: string(hash)}
	a.users[email] = u
	a.mu.Unlock()

	return a.issueSession(u)
}

func (a *LocalAuthProvider) SignIn(ctx context.Context, email, password string) (*internal.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	a.mu.RLock()
	u, ok := a.users[email]
	a.mu.RUnlock()
	if !ok {
		a.logger.Warnf("sign-in for unknown user %s", email)
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return a.issueSession(u)
}

func (a *LocalAuthProvider) OAuthURL(provider, redirectTo string) (string, error) {
	return "", errors.New("OAuth sign-in is not available in local mode")
}

func (a *LocalAuthProvider) SignOut(ctx context.Context, accessToken string) error {
	a.mu.Lock()
	a.revoked[accessToken] = struct{}{}
	a.mu.Unlock()
	return nil
}

func (a *LocalAuthProvider) GetSession(ctx context.Context, accessToken string) (*internal.Session, error) {
	a.mu.RLock()
	_, revoked := a.revoked[accessToken]
	a.mu.RUnlock()
	if revoked {
		return nil, errors.New("session revoked")
	}

	token, err := jwt.Parse(accessToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	avatar, _ := claims["avatar_url"].(string)
	exp, _ := claims["exp"].(float64)

	return &internal.Session{
		AccessToken: accessToken,
		UserID:      sub,
		Email:       email,
		AvatarURL:   avatar,
		ExpiresAt:   int64(exp),
	}, nil
}

func (a *LocalAuthProvider) issueSession(u *localUser) (*internal.Session, error) {
	expiresAt := time.Now().Add(time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        u.ID,
		"email":      u.Email,
		"avatar_url": u.AvatarURL,
		"exp":        expiresAt.Unix(),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return nil, err
	}
	return &internal.Session{
		AccessToken: signed,
		UserID:      u.ID,
		Email:       u.Email,
		AvatarURL:   u.AvatarURL,
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}
