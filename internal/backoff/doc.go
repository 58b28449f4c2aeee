// Package backoff also provides a circuit breaker (sony/gobreaker/v2, see
// circuitbreaker.go) that works independently of Retry. The read services
// wrap their search port calls in it, so a persistently failing search
// backend trips open and fails fast; cache port calls are not wrapped.
package backoff
