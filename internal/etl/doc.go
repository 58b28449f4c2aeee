// Package etl implements the CDC pipeline (C5-C7): a Producer that
// turns watermark-driven source rows into denormalized Film and Genre
// documents, a Loader that ensures indices exist and bulk-writes those
// documents, and an Orchestrator that ticks the four streams on a
// single-threaded schedule with idle backoff.
package etl
