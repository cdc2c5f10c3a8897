// Package pgquery holds the hand-written SQL for the quote tables. Every
// method takes the connection to run on so callers choose pool or tx.
package pgquery

type Queries struct{}

func New() *Queries {
	return &Queries{}
}
