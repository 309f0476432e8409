package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// AdminLoader loads the admin dashboard.
type AdminLoader interface {
	Load(ctx context.Context) (*models.AdminView, error)
}

// NewAdminHandler returns an HTTP handler for the admin dashboard.
// @Summary Admin dashboard
// @Description List all users and transactions. Each listing may fail on its own and is then named in failures. Non-admin sessions are redirected to /dashboard.
// @Tags admin
// @Produce json
// @Success 200 {object} models.AdminView "Admin state"
// @Success 303 "Not an admin, redirected to /dashboard"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Router /admin [get]
func NewAdminHandler(svc AdminLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Load(r.Context())
		if errors.Is(err, models.ErrForbidden) {
			logger.Log.Warnw("non-admin session on admin dashboard, redirecting")
			http.Redirect(w, r, models.RoleUser.HomeRoute(), http.StatusSeeOther)
			return
		}
		if err != nil {
			writeError(w, "admin", err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
