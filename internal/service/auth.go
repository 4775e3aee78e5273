package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	apperrors "github.com/DimpleKundu/incubyte-sweet-shop/internal/errors"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/ports"
	"github.com/google/uuid"
)

const defaultSessionTTL = time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API      ports.AccountAPI   // Required: remote account endpoints
	Sessions ports.SessionStore // Required: session persistence
	Config   AuthConfig
}

// AuthConfig holds session behavior for AuthService.
type AuthConfig struct {
	// SessionTTL is how long a signed-in session lasts; it should not outlive the API token.
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// AuthService signs visitors in and out against the remote API and keeps
// their bearer token in a server-side session.
type AuthService struct {
	api      ports.AccountAPI
	sessions ports.SessionStore
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.API == nil {
		panic("AccountAPI is required")
	}
	if opts.Sessions == nil {
		panic("SessionStore is required")
	}
	ttl := opts.Config.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		api:      opts.API,
		sessions: opts.Sessions,
		ttl:      ttl,
		logger:   logger.With("component", "auth_service"),
		now:      time.Now,
	}
}

// normalizeCredentials trims the email and checks both fields are present.
func normalizeCredentials(creds domainauth.Credentials) (domainauth.Credentials, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" {
		return creds, apperrors.ValidationField("email", "Email is required.")
	}
	if _, err := mail.ParseAddress(creds.Email); err != nil {
		return creds, apperrors.ValidationField("email", "Enter a valid email address.")
	}
	if creds.Password == "" {
		return creds, apperrors.ValidationField("password", "Password is required.")
	}
	return creds, nil
}

// Register creates an account with the API. The visitor still has to log in afterwards.
func (s *AuthService) Register(ctx context.Context, creds domainauth.Credentials) error {
	creds, err := normalizeCredentials(creds)
	if err != nil {
		return err
	}
	if err := s.api.Register(ctx, creds); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	s.logger.InfoContext(ctx, "account registered", "email", creds.Email)
	return nil
}

// LoginResult contains the session created by a successful login.
type LoginResult struct {
	Session domainauth.Session
}

// Login exchanges credentials for a bearer token, looks up the user's role,
// and persists a new session holding both.
func (s *AuthService) Login(ctx context.Context, creds domainauth.Credentials) (*LoginResult, error) {
	creds, err := normalizeCredentials(creds)
	if err != nil {
		return nil, err
	}

	token, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	user, err := s.api.Me(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch current user: %w", err)
	}

	email := user.Email
	if email == "" {
		email = creds.Email
	}

	session := domainauth.Session{
		ID:        generateSessionID(),
		Email:     email,
		Token:     token,
		Role:      user.Role(),
		ExpiresAt: s.now().Add(s.ttl),
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	s.logger.InfoContext(ctx, "user logged in", "email", session.Email, "role", session.Role)
	return &LoginResult{Session: session}, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(s.now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// SyncRole stores role on the session when the API reports a different one
// than the session was created with.
func (s *AuthService) SyncRole(ctx context.Context, sess domainauth.Session, role domainauth.Role) (domainauth.Session, error) {
	if sess.Role == role {
		return sess, nil
	}
	sess.Role = role
	if err := s.sessions.Save(ctx, sess); err != nil {
		return sess, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// generateSessionID creates a random URL-safe session ID.
func generateSessionID() string {
	return uuid.New().String()
}
