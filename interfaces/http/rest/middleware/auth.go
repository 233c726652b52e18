package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"wikicollector-backend/pkg/auth"

	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"go.uber.org/zap"
)

// Authenticate resolves the caller's user id. Behind an HTTP API authorizer
// the verified sub claim is taken from the request context;
// otherwise the bearer token is validated locally. A nil validator only
// accepts authorizer-verified requests.
func Authenticate(validator *auth.JWTValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID := authorizerSubject(r); userID != "" {
				next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
				return
			}

			if validator == nil {
				respondUnauthorized(w, "Request not authorized by API Gateway")
				return
			}

			claims, err := validator.ValidateToken(r.Header.Get("Authorization"))
			if err != nil {
				logger.Debug("Token rejected", zap.Error(err))
				switch {
				case errors.Is(err, auth.ErrMissingToken):
					respondUnauthorized(w, "Missing authorization header")
				case errors.Is(err, auth.ErrExpiredToken):
					respondUnauthorized(w, "Token has expired")
				case errors.Is(err, auth.ErrInvalidSignature):
					respondUnauthorized(w, "Invalid token signature")
				default:
					respondUnauthorized(w, "Invalid token")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), claims.UserID)))
		})
	}
}

// authorizerSubject reads sub from a Lambda or JWT authorizer result
func authorizerSubject(r *http.Request) string {
	proxyCtx, ok := core.GetAPIGatewayV2ContextFromContext(r.Context())
	if !ok || proxyCtx.Authorizer == nil {
		return ""
	}
	if sub, ok := proxyCtx.Authorizer.Lambda["sub"].(string); ok && sub != "" {
		return sub
	}
	if proxyCtx.Authorizer.JWT != nil {
		return proxyCtx.Authorizer.JWT.Claims["sub"]
	}
	return ""
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    http.StatusUnauthorized,
	})
}
