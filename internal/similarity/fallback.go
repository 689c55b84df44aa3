package similarity

import (
	"context"
	"log/slog"
)

// Fallback wraps the remote strategy and transparently answers through the
// local lexical strategy whenever the remote call fails. A remote outage must
// never abort match generation, so errors from the remote side are logged and
// recovered here rather than surfaced to callers.
type Fallback struct {
	remote Strategy
	local  *Lexical
}

// NewFallback decorates the remote strategy with a local fallback.
func NewFallback(remote Strategy, local *Lexical) *Fallback {
	return &Fallback{remote: remote, local: local}
}

// Similarity delegates to the remote strategy, falling back locally on error.
func (f *Fallback) Similarity(ctx context.Context, a, b string) (float64, error) {
	sim, err := f.remote.Similarity(ctx, a, b)
	if err != nil {
		slog.Warn("remote similarity unavailable, using lexical fallback",
			"skill_a", a, "skill_b", b, "error", err)
		return f.local.Similarity(ctx, a, b)
	}
	return sim, nil
}

// Related delegates to the remote strategy, falling back locally on error.
func (f *Fallback) Related(ctx context.Context, a, b string) (bool, error) {
	related, err := f.remote.Related(ctx, a, b)
	if err != nil {
		slog.Warn("remote relatedness unavailable, using lexical fallback",
			"skill_a", a, "skill_b", b, "error", err)
		return f.local.Related(ctx, a, b)
	}
	return related, nil
}
