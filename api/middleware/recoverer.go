package middleware

import (
	"fmt"
	"net/http"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/responses"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/logger"
)

// Recoverer converts handler panics into 500 responses.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("panic: %v", rec))
					responses.WriteError(r.Context(), logg, w, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
