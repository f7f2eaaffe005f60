// Package search implements the query controller behind the search box.
//
// The controller turns a rapidly changing query into at most one request
// per typing pause and reconciles responses that may come back in any
// order. Every query change bumps an epoch; a response only reaches the
// suggestion list when its epoch is still the current one, and only
// reaches the result list when no later-dispatched request has already
// written it. Superseded requests are not cancelled on the wire, their
// results are simply ignored.
//
// All state lives on the owner's event loop. The debounce timer and the
// fetch goroutines never touch it; they post Due and Settled messages
// through the Post sink and the owner hands them back to Handle.
package search
