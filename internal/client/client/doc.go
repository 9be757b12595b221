// Package client contains the client-side building blocks of the blog CLI.
//
// # Overview
//
//  1. The Client interface: the blog REST API as seen by the CLI (auth,
//     posts, image upload targets, health).
//  2. HTTPClient, its net/http implementation. It maps error responses to
//     sentinel errors and never stores tokens itself.
//  3. InitDatabase and RunMigrations, which open the local SQLite session
//     store and apply the embedded goose migrations.
//
// # Error Handling
//
// Callers match with errors.Is: ErrUnavailable, ErrUnauthorized,
// ErrForbidden, ErrNotFound, ErrConflict, ErrBadRequest. An expired access
// token additionally matches common.ErrTokenExpired.
package client
