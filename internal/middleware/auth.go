package middleware

import (
	"net/http"
	"os"

	"printshop-be/internal/auth"
	"printshop-be/internal/utils"
)

// AuthMiddleware resolves the customer identity from the access token.
// Requests without a token pass through anonymously; a token that is present
// but invalid is rejected so clients never act on a silently-expired session.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ParseToken(tokenStr, []byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := utils.SetCustomerContext(r.Context(), claims.CustomerID, claims.Email, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCustomer guards endpoints that only make sense for an identified
// customer, like checkout mutations.
func RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetCustomerIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
