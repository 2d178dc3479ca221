// Package apiclient implements the backend collaborators the shell consumes:
// session fetch, price catalog fetch, logout, payment submission, paginated
// usage history and the account endpoints (login, signup, change-password,
// Google sign-in).
//
// The Client satisfies session.Client, session.CatalogSource and
// payment.Submitter. All network-boundary errors are converted at the call
// site into the error kinds the core packages define; nothing propagates as
// an untyped failure to the rendering layer.
package apiclient
