package session

import (
	"context"

	"github.com/upb/talent-portal/navigation"
	"go.uber.org/zap"
)

// LogoutTarget is the path every logout ends on.
const LogoutTarget = navigation.CareerPagePath

// Navigator performs an in-app navigation to a path.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// LogoutObserver is notified of every logout with the remote call outcome.
type LogoutObserver interface {
	ObserveLogout(remoteOK bool)
}

// LogoutResult tells the caller where logout lands and how.
// When Reload is set the caller must perform a full-page redirect to Target.
type LogoutResult struct {
	Target   string
	Reload   bool
	RemoteOK bool
}

// Logouter ends sessions: remote termination first, then the local state.
type Logouter struct {
	remote   RemoteTerminator
	observer LogoutObserver
	logger   *zap.Logger
}

// NewLogouter creates a Logouter. observer may be nil.
func NewLogouter(remote RemoteTerminator, observer LogoutObserver, logger *zap.Logger) *Logouter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logouter{remote: remote, observer: observer, logger: logger}
}

// Logout terminates the remote session, clears st no matter how that went,
// then navigates to the career page. nav is optional: without it, or when it
// fails, the result asks for a full-page redirect. Remote errors are logged
// and never returned.
func (l *Logouter) Logout(ctx context.Context, st *State, nav Navigator) LogoutResult {
	res := LogoutResult{Target: LogoutTarget, RemoteOK: true}

	if l.remote != nil {
		if err := l.remote.Terminate(ctx); err != nil {
			res.RemoteOK = false
			l.logger.Error("failed to log out", zap.Error(err))
		}
	}
	if l.observer != nil {
		l.observer.ObserveLogout(res.RemoteOK)
	}

	if st != nil {
		st.Clear()
	}

	if nav == nil {
		res.Reload = true
		return res
	}
	if err := nav.Navigate(ctx, LogoutTarget); err != nil {
		l.logger.Warn("in-app navigation after logout failed, falling back to reload",
			zap.String("target", LogoutTarget),
			zap.Error(err))
		res.Reload = true
	}
	return res
}
