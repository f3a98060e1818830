// Package tracking records document mutations as a bounded event log.
//
// Every edit batch, undo, redo, and flush applied to a document becomes
// one Event, keyed by the version it produced and carrying the exact
// replacements (old text, new text, both coordinate spaces, and the
// line span the new text occupies). Collaborators that poll (syntax
// highlighters, language servers, remote replicas) catch up with:
//
//	events := log.EventsSince(lastSeenVersion)
//
// Events arrive in version order and are served in version order. The
// log is a ring buffer: when it fills, the oldest events fall off. A
// consumer asking for a version older than the ring retains should
// resynchronize from the full document text.
//
// The log never inspects or mutates the document; the document's write
// path records into it after each successful mutation.
//
// # Thread Safety
//
// All Log operations are thread-safe through internal locking. Events
// handed out are copies of the ring slots; callers may retain them.
package tracking
