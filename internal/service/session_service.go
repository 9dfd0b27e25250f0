package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"argynix-connect/internal/domain"
	"argynix-connect/internal/store"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// nullUUID is what ThingsBoard puts in customerId for tenant level users.
const nullUUID = "13814000-1dd2-11b2-8080-808080808080"

var ErrTokenExpired = errors.New("token expired")

// tokenClaims ThingsBoard access token claims.
type tokenClaims struct {
	jwt.RegisteredClaims
	Scopes     []string `json:"scopes,omitempty"`
	UserID     string   `json:"userId,omitempty"`
	TenantID   string   `json:"tenantId,omitempty"`
	CustomerID string   `json:"customerId,omitempty"`
}

// OpenRequest either credentials or an existing token.
type OpenRequest struct {
	InstanceURL string `json:"instanceUrl" validate:"omitempty,url"`
	Username    string `json:"username" validate:"required_without=Token"`
	Password    string `json:"password" validate:"required_with=Username"`
	Token       string `json:"token" validate:"required_without=Username"`
	CustomerID  string `json:"customerId"`
}

type SessionService struct {
	sessions   *store.SessionStore
	clients    ClientFactory
	defaultURL string
	logger     *zap.Logger
	now        func() time.Time
}

func NewSessionService(sessions *store.SessionStore, clients ClientFactory, defaultURL string, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions:   sessions,
		clients:    clients,
		defaultURL: defaultURL,
		logger:     logger,
		now:        time.Now,
	}
}

// Open logs in when credentials are given, then stores a session for the token.
func (s *SessionService) Open(ctx context.Context, req OpenRequest) (*domain.Session, error) {
	if err := ValidateForm(&req); err != nil {
		return nil, err
	}
	instanceURL := strings.TrimRight(req.InstanceURL, "/")
	if instanceURL == "" {
		instanceURL = s.defaultURL
	}

	token := req.Token
	if req.Username != "" {
		resp, err := s.clients(instanceURL, "").Login(ctx, req.Username, req.Password)
		if err != nil {
			return nil, err
		}
		if resp == nil || resp.Token == "" {
			return nil, errors.New("login returned no token")
		}
		token = resp.Token
	}

	sess, err := s.newSession(instanceURL, token, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Session opened",
		zap.String("session_id", sess.ID),
		zap.String("instance_url", sess.InstanceURL),
		zap.String("user_id", sess.UserID),
	)
	return sess, nil
}

// newSession annotates the session from the unverified token claims. The
// session never outlives the token.
func (s *SessionService) newSession(instanceURL, token, customerID string) (*domain.Session, error) {
	now := s.now().UTC()
	sess := &domain.Session{
		ID:          uuid.NewString(),
		Token:       token,
		InstanceURL: instanceURL,
		CustomerID:  customerID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.sessions.TTL()),
	}

	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		s.logger.Debug("Token is not a readable JWT, keeping defaults", zap.Error(err))
		return sess, nil
	}

	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time.UTC()
		if !exp.After(now) {
			return nil, ErrTokenExpired
		}
		if exp.Before(sess.ExpiresAt) {
			sess.ExpiresAt = exp
		}
	}
	sess.Email = claims.Subject
	sess.Scopes = claims.Scopes
	sess.UserID = claims.UserID
	sess.TenantID = claims.TenantID
	if sess.CustomerID == "" && claims.CustomerID != nullUUID {
		sess.CustomerID = claims.CustomerID
	}
	return sess, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

func (s *SessionService) Close(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}
