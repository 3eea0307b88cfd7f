package handlers

import "expvar"

// Published on /api/debug/vars when the debug module is enabled.
var (
	registeredUsers = expvar.NewInt("users_registered_total")
	issuedTokens    = expvar.NewInt("tokens_issued_total")
	failedAuth      = expvar.NewInt("token_auth_failures_total")
)
