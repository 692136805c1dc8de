package auth

import (
	"context"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/config"
	"jan-server/catalog-api/internal/utils/platformerrors"
)

// SubjectKey is the gin context key holding the authenticated subject.
const SubjectKey = "auth_subject"

// Validator validates JWTs using JWKS.
type Validator struct {
	cfg     *config.Config
	log     zerolog.Logger
	keyfunc jwt.Keyfunc
}

// NewValidator initializes JWKS fetching when auth is enabled.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	logger := log.With().Str("component", "auth").Logger()
	if !cfg.AuthEnabled {
		return &Validator{cfg: cfg, log: logger}, nil
	}

	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Error().Err(err).Msg("jwks refresh error")
		},
	})
	if err != nil {
		return nil, err
	}
	return NewValidatorWithKeyfunc(cfg, jwks.Keyfunc, logger), nil
}

// NewValidatorWithKeyfunc builds a validator around an existing key lookup.
func NewValidatorWithKeyfunc(cfg *config.Config, kf jwt.Keyfunc, log zerolog.Logger) *Validator {
	return &Validator{cfg: cfg, log: log, keyfunc: kf}
}

// Middleware enforces JWT auth when enabled.
func (v *Validator) Middleware() gin.HandlerFunc {
	if v == nil || !v.cfg.AuthEnabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	options := []jwt.ParserOption{
		jwt.WithIssuer(v.cfg.AuthIssuer),
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
	}
	if v.cfg.AuthAudience != "" {
		options = append(options, jwt.WithAudience(v.cfg.AuthAudience))
	}

	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			platformerrors.WriteUnauthorized(c, "missing bearer token")
			return
		}

		token, err := jwt.Parse(tokenString, v.keyfunc, options...)
		if err != nil || !token.Valid {
			v.log.Debug().Err(err).Msg("rejected token")
			platformerrors.WriteUnauthorized(c, "invalid token")
			return
		}

		if subject, err := token.Claims.GetSubject(); err == nil && subject != "" {
			c.Set(SubjectKey, subject)
		}
		c.Set("auth_token", token)
		c.Next()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
