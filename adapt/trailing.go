package adapt

import (
	"github.com/broady/shimgen/ir"
)

// Trailing returns the expression that re-derives the original trailing
// callback from its replacement parameter. A runnable becomes a callback
// ignoring its argument; a consumer becomes a delegating callback adapter,
// or null when the consumer is null.
//
// The deferred form has no surface replacement: the deferred abstraction
// supplies the callback, so Trailing returns the replacement's identifier.
func (e *Engine) Trailing(tc *ir.TrailingCallback, scope *Scope) (ir.Expr, error) {
	x := ir.Id(tc.Replacement.Name)
	switch tc.Form {
	case ir.TrailingRunnable:
		return e.runnableHandler(x, scope), nil
	case ir.TrailingConsumer:
		h, err := e.consumerHandler(x, tc.Item, scope)
		if err != nil {
			return nil, err
		}
		return &ir.NilGuard{X: x, Then: h}, nil
	case ir.TrailingDeferred:
		return x, nil
	}
	return nil, ir.Gap(tc.Original.Original, "unknown trailing form %s", tc.Form)
}
