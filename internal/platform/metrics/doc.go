// Package metrics exposes game and HTTP metrics in the Prometheus format.
//
// The Collector owns its registry, so every instance (including the ones
// created in tests) starts from zero and never collides with the global
// default registry.
package metrics
