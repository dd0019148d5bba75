// Package cli implements the interactive console: a line based REPL over the
// user collection cache with login, paging, search, sort, edit and delete.
//
// Output meant for the user goes to stdout; diagnostics go through the
// structured logger to stderr.
package cli
