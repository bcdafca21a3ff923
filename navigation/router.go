package navigation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// maxRedirects bounds how many guard redirects a single push may follow.
const maxRedirects = 10

var (
	// ErrRedirectLoop is returned when hooks keep redirecting past maxRedirects.
	ErrRedirectLoop = errors.New("navigation redirect loop")

	// ErrNavigationAborted is returned when a hook returns without resolving.
	ErrNavigationAborted = errors.New("navigation aborted")
)

// Router is an in-process navigation context: it resolves targets against the
// table, runs before-hooks and tracks the current location.
type Router struct {
	table  *Table
	logger *zap.Logger

	mu      sync.Mutex
	hooks   []BeforeHook
	current *Location
}

// NewRouter creates a router positioned at no location.
func NewRouter(table *Table, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{table: table, logger: logger}
}

// Table returns the router's route table.
func (r *Router) Table() *Table { return r.table }

// BeforeEach registers a hook; hooks run in registration order.
func (r *Router) BeforeEach(hook BeforeHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

// Current returns the committed location, or nil before the first push.
func (r *Router) Current() *Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Push navigates to a path or route name. Redirects issued by hooks are followed.
// On error the current location is left unchanged.
func (r *Router) Push(ctx context.Context, target string) (*Location, error) {
	r.mu.Lock()
	hooks := append([]BeforeHook(nil), r.hooks...)
	from := r.current
	r.mu.Unlock()

	to, err := r.table.Resolve(target)
	if err != nil {
		return nil, err
	}

	for redirects := 0; ; redirects++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		decision, err := r.runHooks(hooks, to, from)
		if err != nil {
			return nil, err
		}
		if decision.IsProceed() {
			break
		}
		if redirects >= maxRedirects {
			return nil, fmt.Errorf("%w: last target %q", ErrRedirectLoop, decision.Redirect)
		}

		r.logger.Debug("navigation redirected",
			zap.String("from", to.Name),
			zap.String("redirect", decision.Redirect))

		next, err := r.table.Resolve(decision.Redirect)
		if err != nil {
			return nil, fmt.Errorf("redirect from %q: %w", to.Name, err)
		}
		to = next
	}

	r.mu.Lock()
	r.current = to
	r.mu.Unlock()
	return to, nil
}

// Navigate implements the in-app navigation capability used by logout.
func (r *Router) Navigate(ctx context.Context, path string) error {
	_, err := r.Push(ctx, path)
	return err
}

// runHooks evaluates hooks in order; the first redirect wins.
func (r *Router) runHooks(hooks []BeforeHook, to, from *Location) (Decision, error) {
	for i, hook := range hooks {
		var (
			decision Decision
			calls    int
		)
		hook(to, from, func(d Decision) {
			calls++
			if calls > 1 {
				r.logger.Warn("navigation hook resolved more than once",
					zap.Int("hook", i),
					zap.String("route", to.Name))
				return
			}
			decision = d
		})
		if calls == 0 {
			return Decision{}, fmt.Errorf("%w: hook %d did not resolve for %q", ErrNavigationAborted, i, to.Name)
		}
		if !decision.IsProceed() {
			return decision, nil
		}
	}
	return Proceed(), nil
}
