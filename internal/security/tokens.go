package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/configs"
	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// IssueToken mints the session JWT returned by login/signup. The role
// claim carries the normalized enum value, so the authz middleware
// never sees a legacy role spelling.
func IssueToken(cfg configs.Config, userID string, role domain.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  cfg.Security.Issuer,
		"aud":  cfg.Security.Audience,
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"exp":  now.Add(cfg.Security.TTL).Unix(),
		"sub":  userID,
		"role": string(role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Security.JWTSecret))
}
