package request

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/user/pkg/validation"
)

type Register struct {
	Nombres         string `json:"nombres"`
	Apellidos       string `json:"apellidos"`
	Birthdate       string `json:"birthdate"`
	Celular         string `json:"celular"`
	Genero          string `json:"genero"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

func (r Register) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).Str("nombres", r.Nombres).Str("apellidos", r.Apellidos)
}

func (r Register) MarshalJSON() ([]byte, error) {
	r.Password = "***"
	type R Register
	return json.Marshal(R(r))
}

// Credentials is the registration body sent to the backend.
func (r Register) Credentials() any {
	type R Register
	return R(r)
}

// Validate returns the message of every field that fails, keyed by its
// JSON name.
func (r Register) Validate() map[string]string {
	genero := validation.Result{Valid: true}
	if r.Genero == "" {
		genero = validation.Result{Message: MESSAGE_REQUIRED_FIELDS}
	}
	return validation.Errors(map[string]validation.Result{
		"nombres":         validation.Name(r.Nombres),
		"apellidos":       validation.LastName(r.Apellidos),
		"birthdate":       validation.Birthday(r.Birthdate),
		"celular":         validation.Phone(r.Celular),
		"genero":          genero,
		"email":           validation.Email(r.Email),
		"password":        validation.Password(r.Password),
		"confirmPassword": validation.ConfirmPassword(r.Password, r.ConfirmPassword),
	})
}
