package response

import (
	"github.com/Alturino/restaurant/cart/pkg/domain"
)

type User struct {
	ID        domain.ID `json:"id"`
	Nombres   string    `json:"nombres"`
	Apellidos string    `json:"apellidos"`
	Email     string    `json:"email"`
	Celular   string    `json:"celular,omitempty"`
	Role      string    `json:"role,omitempty"`
}

func (u User) FullName() string {
	switch {
	case u.Nombres != "" && u.Apellidos != "":
		return u.Nombres + " " + u.Apellidos
	case u.Nombres != "":
		return u.Nombres
	default:
		return u.Email
	}
}

// Login is the answer of POST /api/auth/login.
type Login struct {
	Token string `json:"token"`
	Type  string `json:"type,omitempty"`
	Role  string `json:"role,omitempty"`
	User  User   `json:"user"`
}

const (
	ROLE_ADMIN    = "admin"
	ROLE_CLIENTE  = "cliente"
	ROLE_COCINERO = "cocinero"
)
