// Package session holds the in-memory state of one redaction workflow.
//
// A Session records the selected file, the latest result, the loading flag and
// the latest error message. It is mutated only through SelectFile,
// ApplyOutcome and the Lease returned by Begin; renderers read it through
// Snapshot.
//
// Invariants:
//   - result and error are never set at the same time
//   - loading is true only between Begin and Lease.Release
//   - SelectFile clears result and error even while a submission is in flight
//
// A response that resolves after a newer file was selected still overwrites
// result and error, unless the session was created WithLatestWins.
package session
