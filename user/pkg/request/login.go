package request

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/user/pkg/validation"
)

type LoginRequest struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required"       json:"password"`
}

func (l LoginRequest) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", l.Email).Str("password", "***")
}

// MarshalJSON redacts the password. Use Credentials for the wire body.
func (l LoginRequest) MarshalJSON() ([]byte, error) {
	l.Password = "***"
	type L LoginRequest
	return json.Marshal(L(l))
}

// Credentials is the login body sent to the backend.
func (l LoginRequest) Credentials() any {
	type L LoginRequest
	return L(l)
}

// Validate mirrors the login form: both fields are required.
func (l LoginRequest) Validate() map[string]string {
	results := map[string]validation.Result{
		"email":    {Valid: true},
		"password": {Valid: true},
	}
	if l.Email == "" || l.Password == "" {
		results["email"] = validation.Result{Message: MESSAGE_REQUIRED_FIELDS}
		results["password"] = validation.Result{Message: MESSAGE_REQUIRED_FIELDS}
	} else {
		results["email"] = validation.Email(l.Email)
	}
	return validation.Errors(results)
}

const MESSAGE_REQUIRED_FIELDS = "Todos los campos son obligatorios"
