package controllers

import (
	"context"
	"net/http"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/responses"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness only.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, "alive", "status", "ok")
	}
}

// HealthReady checks the backing stores before declaring readiness.
func HealthReady(database, cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := database.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}
		if err := cache.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
			return
		}

		responses.WriteSuccess(w, "ready", "status", "ok")
	}
}
