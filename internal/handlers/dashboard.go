package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-bank-client/internal/middlewares"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// DashboardViewModel is the user dashboard state.
type DashboardViewModel interface {
	Open(user models.User)
	Close()
	Snapshot() models.DashboardView
}

// DashboardLoader refreshes the dashboard.
type DashboardLoader interface {
	Load(ctx context.Context) (*models.LoadResult, error)
}

// BusyChecker reports whether an action is in flight for an account.
type BusyChecker interface {
	Busy(account string) bool
}

// NewDashboardHandler returns an HTTP handler that loads the user dashboard.
// @Summary User dashboard
// @Description Fetch account details, balance and history concurrently. Parts that failed are listed in failures; the others are returned.
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardView "Dashboard state"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Router /dashboard [get]
func NewDashboardHandler(vm DashboardViewModel, loader DashboardLoader, busy BusyChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFromContext(r.Context())
		if !ok || session.User == nil {
			writeError(w, "dashboard", models.NewValidationError("dashboard", "", models.ErrNotAuthenticated))
			return
		}

		vm.Open(*session.User)
		if _, err := loader.Load(r.Context()); err != nil {
			writeError(w, "dashboard", err)
			return
		}

		view := vm.Snapshot()
		view.Busy = busy.Busy(session.AccountNumber())
		writeJSON(w, http.StatusOK, view)
	}
}

// NewLeaveDashboardHandler returns an HTTP handler that closes the dashboard.
// Actions still in flight finish on the backend but no longer touch the
// cached state.
// @Summary Leave dashboard
// @Tags dashboard
// @Success 204 "Dashboard closed"
// @Router /dashboard/leave [post]
func NewLeaveDashboardHandler(vm DashboardViewModel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm.Close()
		w.WriteHeader(http.StatusNoContent)
	}
}
