/*
Package observability exports Prometheus metrics for shading network authoring.

Metrics turns stage lifecycle hooks into counters on its own registry, so
several engines can run in one process without colliding on the global
registry. Mount Handler on a /metrics route to scrape them.
*/
package observability
