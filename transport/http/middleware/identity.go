package middleware

import (
	"context"
	"gearshare/shared/constant"
	"gearshare/shared/failure"
	"gearshare/transport/http/response"
	"net/http"
	"strconv"
)

// Identity resolves the acting user from the X-Sharer-User-Id header and
// stores the id on the request context. The header must carry a positive
// integer; whether that user actually exists is the services' concern.
func (a *appMiddleware) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(constant.RequestHeaderSharerUserID)
		if raw == "" {
			response.WithError(w, failure.Validation(constant.RequestHeaderSharerUserID+" header is required"))

			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			response.WithError(w, failure.Validationf("invalid %s header: %s", constant.RequestHeaderSharerUserID, raw))

			return
		}

		ctx := context.WithValue(r.Context(), constant.ContextKeyUserID, userID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID reads the id the Identity middleware stored on the context.
func UserID(ctx context.Context) int64 {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	return userID
}
