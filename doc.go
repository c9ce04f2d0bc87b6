// Package auth implements a minimal bearer-token authentication service:
// user signup with username uniqueness, credential login that mints signed
// JWTs, and a request guard that resolves tokens back to live users.
//
// The package carries the whole domain: the user model and its bun
// repository, credential validation, the token service, the HTTP guard
// middleware, and the controller exposing the signup/login/user endpoints.
// Every failure leaving the system goes through Map, which translates
// internal errors into the stable client-facing contract
// {"error": {"code", "message"}}.
package auth
