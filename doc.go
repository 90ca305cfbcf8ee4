// Package slapulse predicts SLA breaches for message-processing endpoints.
// As messages flow through a receive pipeline, the pipeline publishes
// completion events carrying the sender's time_sent stamp; slapulse keeps a
// bounded sliding window of the resulting timing samples, extrapolates how
// fast end-to-end latency ("critical time") is growing, and continuously
// exports the estimated seconds until the configured SLA is breached as a
// Prometheus gauge.
//
// The library has three cooperating layers:
//
//   - A behavior pipeline: a named, ordered chain of stages sharing a mutable
//     per-invocation context with lazily-created extension slots. Bundled
//     behaviors resolve outgoing correlation ids (with a deterministic
//     fallback from explicit id to inbound headers to the outgoing message
//     id), trace invocations with OpenTelemetry, log them, and publish
//     completion timing.
//
//   - A typed in-process event bus: subscribers run in registration order and
//     publication is synchronous from the publisher's perspective, so a
//     pipeline invocation is complete only once its completion event has
//     been consumed.
//
//   - The monitor: validates the endpoint configuration up front (send-only
//     endpoints and missing SLA durations fail fast, before any resource is
//     acquired), subscribes to completion events, maintains the sample
//     window, prunes stale samples on a fixed interval, and writes every
//     re-derived estimate to the gauge. Stop releases the trigger and the
//     gauge on every exit path, including after a partial start.
//
// Messages are Watermill messages; headers are plain string maps, and the
// correlation_id, message_id, and time_sent keys are well known. A typical
// setup fills Config (or assembles it from a settings Source), composes the
// receive pipeline with ReceiveStatisticsBehavior, constructs a Monitor on
// the shared event bus, and calls Start.
package slapulse
