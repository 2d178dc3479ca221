// Package shell mounts the application shell over HTTP: the route guard
// gates every view, the session store backs the rendered state, and the
// checkout handler drives the payment orchestrator. Handlers emit minimal
// JSON; real presentation lives elsewhere.
package shell
