package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/noah-isme/orbit-api/pkg/config"
	appErrors "github.com/noah-isme/orbit-api/pkg/errors"
)

const oauthStateIssuer = "orbit-api"

type stateRegistry interface {
	Consume(ctx context.Context, id string, ttl time.Duration) (bool, error)
}

// OAuthService builds the Google consent redirect and validates its callback.
// Token exchange is left to the client; the callback only confirms the round trip.
type OAuthService struct {
	oauth   *oauth2.Config
	cfg     config.OAuthConfig
	states  stateRegistry
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewOAuthService constructs the service. A nil registry skips replay checks.
func NewOAuthService(cfg config.OAuthConfig, states stateRegistry, logger *zap.Logger) *OAuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OAuthService{
		oauth: &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURI,
			Scopes:      []string{calendar.CalendarEventsScope},
			Endpoint:    endpoints.Google,
		},
		cfg:     cfg,
		states:  states,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// AuthURL returns the consent screen URL with a signed, expiring state.
func (s *OAuthService) AuthURL() (string, error) {
	state, err := s.issueState()
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue oauth state")
	}
	return s.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

// Callback verifies the returned state and gives the path to redirect the browser to.
// It is stricter than a bare redirect: a missing code or a forged or expired state
// is rejected with 400, and a state seen before is rejected with 409 when a
// registry is configured.
func (s *OAuthService) Callback(ctx context.Context, code, state string) (string, error) {
	if code == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "missing authorization code")
	}

	claims, err := s.parseState(state)
	if err != nil {
		s.logger.Warn("rejected oauth callback", zap.Error(err))
		return "", appErrors.Wrap(err, appErrors.ErrInvalidState.Code, appErrors.ErrInvalidState.Status, appErrors.ErrInvalidState.Message)
	}

	if s.states != nil {
		ttl := claims.ExpiresAt.Time.Sub(s.nowFunc())
		if ttl <= 0 {
			ttl = time.Second
		}
		fresh, err := s.states.Consume(ctx, claims.ID, ttl)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to record oauth state")
		}
		if !fresh {
			return "", appErrors.Clone(appErrors.ErrStateReused, appErrors.ErrStateReused.Message)
		}
	}

	return s.cfg.SuccessPath, nil
}

func (s *OAuthService) issueState() (string, error) {
	issuedAt := s.nowFunc().UTC()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    oauthStateIssuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.cfg.StateTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.StateSecret))
}

func (s *OAuthService) parseState(state string) (*jwt.RegisteredClaims, error) {
	if state == "" {
		return nil, fmt.Errorf("missing state")
	}
	token, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.StateSecret), nil
	},
		jwt.WithIssuer(oauthStateIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.nowFunc),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, fmt.Errorf("invalid state claims")
	}
	return claims, nil
}
