package entity

import "time"

// Customer representa un cliente del local.
// CreatedAt es inmutable; el resto de los campos puede actualizarse.
type Customer struct {
	ID          int64
	FirstName   string
	LastName    string
	Address     string
	City        string
	Phone       string // único, 10 a 12 dígitos
	Description string
	CreatedAt   time.Time
}

// FullName devuelve "Nombre Apellido" para listados y etiquetas.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
