// Package ast defines the expression and statement syntax trees produced by
// the parser and walked by the resolver and interpreter.
//
// Every Expr carries a unique, monotonically increasing ID assigned at
// construction. The resolver's side-table keys on this ID rather than on Go
// pointer identity (DESIGN NOTES, "Expression identity for the resolution
// map") so it keeps working even if a node is ever copied by value.
package ast

import "sync/atomic"

var nextID uint64

// NewID returns a fresh, process-unique node identity.
func NewID() uint64 {
	return atomic.AddUint64(&nextID, 1)
}
