package products

import (
	"github.com/shopspring/decimal"
)

// Product is an immutable value. ID is opaque to callers: a decimal
// sequence number or a document id token, depending on the store.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"nome"`
	Price       decimal.Decimal `json:"preco"`
	Description string          `json:"descricao,omitempty"`
}

// Input carries the mutable fields of a product. A nil Price means the
// field was absent.
type Input struct {
	Name        string           `json:"nome"`
	Price       *decimal.Decimal `json:"preco"`
	Description string           `json:"descricao"`
}

// New returns an unsaved product. in must have been validated.
func New(in Input) Product {
	return Product{
		Name:        in.Name,
		Price:       *in.Price,
		Description: in.Description,
	}
}

// WithChanges returns a copy of p with every mutable field replaced.
func (p Product) WithChanges(in Input) Product {
	next := New(in)
	next.ID = p.ID
	return next
}

// Equal compares prices numerically, so 10.5 and 10.50 are the same.
func (p Product) Equal(o Product) bool {
	return p.ID == o.ID &&
		p.Name == o.Name &&
		p.Description == o.Description &&
		p.Price.Equal(o.Price)
}
