// Package adjlist parses plain-text adjacency lists.
//
// # Format
//
// Each line names a vertex followed by a colon and its comma-separated
// neighbors:
//
//	A: B, C, D
//	B: A, D
//	C: D
//	D:
//
// Blank lines and lines without a colon are ignored. Names and neighbor
// entries are trimmed; empty neighbor entries (as in "A: B,,C") are dropped.
//
// # Ordering
//
// [Graph] preserves the order in which vertices are first seen. When a
// vertex appears on more than one line the later neighbor list replaces the
// earlier one, but the vertex keeps its original position.
//
// # Errors
//
// [Parse] never fails. Malformed lines are dropped silently, so the worst
// case is an empty [Graph]. Only [ParseReader] can return an error, and only
// for I/O failures.
package adjlist
