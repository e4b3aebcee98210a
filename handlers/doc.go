// Package handlers holds the HTTP handlers of the relay server.
//
// Relay serves three routes:
//
//	GET  /api/health        liveness, always {"ok":true}
//	GET  /api/health/ready  mail configuration check, 200 or 503
//	POST /api/send-pdf      mails the posted PDF
//
// Failures reach the client as {"ok":false,"message":...}. Configuration
// and delivery problems answer 500, malformed input answers 400.
package handlers
