// Package health provides the relay's liveness and readiness probes.
//
// [LivenessHandler] always answers {"ok":true}. [ReadinessHandler] runs a
// set of named [Checks] in parallel and answers 503 when any of them fails:
//
//	r.Get("/api/health/ready", health.ReadinessHandler(health.Checks{
//	    "mail": delivery.Healthcheck(cfg),
//	}))
package health
