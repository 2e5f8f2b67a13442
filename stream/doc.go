// Package stream propagates persisted project mutations to connected editor
// clients.
//
// A [Watcher] owns the change feed on the projects collection and pushes
// qualifying events onto a channel of [Update] values. [Relay] consumes that
// channel and hands each update to a [Broadcaster], which fans it out to
// every attached subscriber. The channel decouples feed cadence from
// delivery cadence: a burst of commits never blocks the feed on slow
// websocket writes, and each side is testable on its own.
//
// Delivery is best-effort and at most once per event per subscriber. A
// subscriber whose queue is full simply misses the update; clients reconcile
// with an authoritative read when they suspect a gap.
package stream
