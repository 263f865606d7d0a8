// Package server serves scenario reports over HTTP and WebSocket.
//
// Routes:
//
//	GET /healthz                  liveness probe
//	GET /metrics                  Prometheus metrics
//	GET /scenarios                scenario names
//	GET /scenarios/{name}         run a scenario, JSON report
//	GET /scenarios/{name}/html    HTML after a step (?step=N, default last)
//	GET /scenarios/{name}/ws      run a scenario, one WebSocket message per step
//	GET /events                   WebSocket feed of scenario file changes
//
// Every scenario request runs on a fresh in-memory document, so requests
// are independent and the server holds no per-client state beyond open
// event feeds.
//
// Errors are JSON objects carrying the error code:
//
//	{"code":"E504","error":"Scenario not found","detail":"todo in scenarios"}
package server
