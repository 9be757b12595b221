// Package cli provides the interactive blog command-line client.
//
// It wires configuration, the local session store, the API services and a
// REPL. The session (tokens, role, email) survives restarts; an expired
// access token is refreshed transparently once per command.
//
// Anyone can list and read posts. Admin sessions additionally create, edit
// and delete posts and upload cover images; for other sessions those
// commands print "admin only".
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
