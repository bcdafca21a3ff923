package middleware

import (
	"net/http"
	"net/url"

	"github.com/upb/talent-portal/navigation"
	"github.com/upb/talent-portal/utils"
	"go.uber.org/zap"
)

// DecisionRecorder counts guard outcomes
type DecisionRecorder interface {
	RecordGuardDecision(outcome, target string)
}

// GuardMiddleware runs the navigation guard in front of every view.
// It should be mounted after LoadSession.
type GuardMiddleware struct {
	table    *navigation.Table
	recorder DecisionRecorder
	logger   *zap.Logger
}

// NewGuardMiddleware creates a new GuardMiddleware. recorder may be nil.
func NewGuardMiddleware(table *navigation.Table, recorder DecisionRecorder, logger *zap.Logger) *GuardMiddleware {
	return &GuardMiddleware{
		table:    table,
		recorder: recorder,
		logger:   logger,
	}
}

// Guard returns the middleware protecting the view at loc.
func (m *GuardMiddleware) Guard(loc *navigation.Location) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			var guard *navigation.Guard
			if h := GetSessionFromContext(ctx); h != nil {
				guard = navigation.NewGuard(h.State)
			} else {
				guard = navigation.NewGuard(nil)
			}

			decision, resolved := navigation.Proceed(), false
			guard.BeforeEach(loc, m.referrer(r), func(d navigation.Decision) {
				if resolved {
					return
				}
				decision, resolved = d, true
			})

			if decision.IsProceed() {
				m.record("proceed", loc.Name)
				m.logger.Debug("navigation allowed",
					zap.String("request_id", requestID),
					zap.String("route", loc.Name))
				next.ServeHTTP(w, r.WithContext(WithLocation(ctx, loc)))
				return
			}

			m.record("redirect", decision.Redirect)

			target, ok := m.table.PathFor(decision.Redirect)
			if !ok {
				m.logger.Error("redirect target route missing",
					zap.String("request_id", requestID),
					zap.String("route", loc.Name),
					zap.String("redirect", decision.Redirect))
				_ = utils.WriteInternalServerError(w, "Navigation failed")
				return
			}

			m.logger.Info("navigation redirected",
				zap.String("request_id", requestID),
				zap.String("route", loc.Name),
				zap.String("redirect", decision.Redirect))

			if utils.IsHTMX(r) {
				utils.SetHXRedirect(w, target)
				w.WriteHeader(http.StatusOK)
				return
			}
			http.Redirect(w, r, target, http.StatusFound)
		})
	}
}

// referrer resolves the Referer header to the route the browser came from.
// Cross-origin and unknown referrers yield nil.
func (m *GuardMiddleware) referrer(r *http.Request) *navigation.Location {
	raw := r.Header.Get("Referer")
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	if u.Host != "" && u.Host != r.Host {
		return nil
	}
	loc, ok := m.table.Match(u.Path)
	if !ok {
		return nil
	}
	return loc
}

func (m *GuardMiddleware) record(outcome, target string) {
	if m.recorder != nil {
		m.recorder.RecordGuardDecision(outcome, target)
	}
}
