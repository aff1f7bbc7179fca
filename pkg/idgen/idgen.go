// Package idgen issues the human-scannable order and receipt numbers.
package idgen

import (
	"strings"

	"github.com/bwmarrin/snowflake"
)

const (
	OrderPrefix   = "ORD-"
	ReceiptPrefix = "RCP-"
)

// Generator derives document numbers from time-ordered snowflake ids.
type Generator struct {
	node *snowflake.Node
}

// New creates a generator for the given node (0-1023). Each running instance
// sharing a database must use a distinct node.
func New(node int64) (*Generator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}
	return &Generator{node: n}, nil
}

// OrderNumber returns a new ORD- number.
func (g *Generator) OrderNumber() string {
	return g.next(OrderPrefix)
}

// ReceiptNumber returns a new RCP- number.
func (g *Generator) ReceiptNumber() string {
	return g.next(ReceiptPrefix)
}

func (g *Generator) next(prefix string) string {
	return prefix + strings.ToUpper(g.node.Generate().Base36())
}
