package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/workspace-notifier/internal/api/respond"
)

// ctxMemberID is the gin context key the authenticated member ID is stored
// under.
const ctxMemberID = "member_id"

// Claims is the token payload issued by the identity service. Identity
// resolution itself happens there; this middleware only verifies the
// signature and transports the resolved member ID into the request context.
type Claims struct {
	jwt.RegisteredClaims
	MemberID int64 `json:"member_id"`
}

// Auth verifies the Bearer token and stores the member ID in the context.
// Requests without a valid token are rejected with 401.
func Auth(secret string) func(c *ginext.Context) {
	return func(c *ginext.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("authorization header required"))
			c.Abort()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("invalid authorization format"))
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			zlog.Logger.Warn().Err(err).Msg("invalid access token")
			respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("invalid token"))
			c.Abort()
			return
		}

		c.Set(ctxMemberID, claims.MemberID)
		c.Next()
	}
}

// MemberID returns the authenticated member ID set by Auth, 0 if absent.
func MemberID(c *ginext.Context) int64 {
	v, ok := c.Get(ctxMemberID)
	if !ok {
		return 0
	}

	id, _ := v.(int64)
	return id
}
