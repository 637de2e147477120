package customers

// Customer is an immutable value. Updates produce a new value with the same ID.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"nome"`
	Email   string `json:"email"`
	Phone   string `json:"telefone,omitempty"`
	Address string `json:"endereco,omitempty"`
}

// Input carries the mutable fields of a customer.
type Input struct {
	Name    string `json:"nome"`
	Email   string `json:"email"`
	Phone   string `json:"telefone"`
	Address string `json:"endereco"`
}

// New returns an unsaved customer.
func New(in Input) Customer {
	return Customer{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	}
}

// WithChanges returns a copy of c with every mutable field replaced.
func (c Customer) WithChanges(in Input) Customer {
	next := New(in)
	next.ID = c.ID
	return next
}

// WithEmail returns a copy of c with only the email replaced.
func (c Customer) WithEmail(email string) Customer {
	c.Email = email
	return c
}
