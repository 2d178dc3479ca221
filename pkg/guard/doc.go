// Package guard decides, on every navigation, whether the visitor may see
// the requested view or must be redirected.
//
// The decision is a function of a state machine over
// {pending, authenticated, anonymous}, derived from the session store:
//
//   - pending: suspend with a neutral loading affordance, never redirect
//   - authenticated on a guest-only route: redirect to the landing route
//   - anonymous off the guest-only routes: redirect to the login route
//   - everything else: allow
//
// Evaluate is the pure decision table; Middleware adapts it to an HTTP
// router, reading the session snapshot and request path at evaluation time.
// Redirect targets are fixed points of the rule, verified at construction,
// so applying a decision and re-evaluating can never yield a second
// redirect.
package guard
