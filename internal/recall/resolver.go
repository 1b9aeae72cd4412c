package recall

import (
	"github.com/histkit/recall/internal/config"
	"github.com/histkit/recall/internal/dispatch"
	"github.com/histkit/recall/internal/editor"
)

// ResolveHistory picks the input-history sequence to offer for the
// current invocation. Rules apply in strict priority order and the
// first that matches wins:
//
//  1. The previous action was a repeat of a complex command: offer the
//     logged command strings so the user can pick a past command.
//  2. The editing context is a prompt: offer the active prompt
//     session's own history. A prompt with no live session or no
//     history resolves to nothing; later rules are not consulted.
//  3. Otherwise the first configured (kind, store) pair whose kind
//     matches the context and whose store is bound supplies its items.
//  4. Nothing matched: resolve to nil.
//
// Sequences come back most recent first. Callers must treat the
// result as read-only.
func ResolveHistory(ctx *dispatch.Context, cfg *config.Config) []string {
	if ctx == nil || cfg == nil {
		return nil
	}

	if ctx.Editor != nil && ctx.Editor.LastAction == dispatch.ActionRepeatComplex {
		if ctx.Commands == nil {
			return nil
		}
		return ctx.Commands.Items()
	}

	if ctx.Editor != nil && ctx.Editor.Kind == editor.KindPrompt {
		// The session is queried here, not at dispatch time: a
		// resolver running under a nested prompt must see the
		// session that is live now.
		if session := ctx.ActivePrompt(); session != nil {
			return session.History()
		}
		return nil
	}

	if ctx.Editor == nil || ctx.Stores == nil {
		return nil
	}
	kind := ctx.Editor.Kind.String()
	for _, ring := range cfg.Rings {
		if ring.Kind != kind {
			continue
		}
		if !ctx.Stores.Bound(ring.Store) {
			continue
		}
		return ctx.Stores.Items(ring.Store)
	}
	return nil
}
