// Package history keeps a newest-first, in-memory mirror of a directory of
// clipboard history entries.
//
// Each entry is a single file whose name is a base-16 identifier handed out
// by a [Sequencer]. File contents are the raw copied bytes; ordering and
// recency come from the filesystem modification time only.
//
// A [History] is owned by one goroutine. Nothing in this package locks the
// in-memory sequence or the directory on disk.
package history
