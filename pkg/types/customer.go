package types

// Customer places orders. Email is unique across all customers.
type Customer struct {
	CustomerID int64  `json:"customer_id" yaml:"customer_id"`
	FirstName  string `json:"first_name" yaml:"first_name"`
	LastName   string `json:"last_name" yaml:"last_name"`
	Email      string `json:"email" yaml:"email"`
}

// FullName joins first and last name with a space.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
