// Package download manages download tasks for the UI: task lifecycle,
// cancellation, and completion propagation through an update callback. The
// actual transfer is delegated to the marketplace fetcher; this package
// holds no retry or queueing logic.
package download
