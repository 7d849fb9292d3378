// Package validation checks the login and registration form fields one at a
// time so each field can show its own message.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Alturino/restaurant/internal/validate"
)

// Result is the outcome for one field. Message is empty when Valid.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func ok() Result { return Result{Valid: true} }

func fail(message string) Result { return Result{Message: message} }

const BIRTHDAY_LAYOUT = "02/01/2006"

var (
	lettersOnly = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ ]+$`)
	tenDigits   = regexp.MustCompile(`^\d{10}$`)
)

func Name(text string) Result {
	if strings.TrimSpace(text) == "" {
		return fail("El nombre es requerido")
	}
	if utf8.RuneCountInString(text) < 3 {
		return fail("El nombre debe tener al menos 3 caracteres")
	}
	if !lettersOnly.MatchString(text) {
		return fail("El nombre solo puede contener letras")
	}
	return ok()
}

func LastName(text string) Result {
	if strings.TrimSpace(text) == "" {
		return fail("El apellido es requerido")
	}
	if utf8.RuneCountInString(text) < 2 {
		return fail("El apellido debe tener al menos 2 caracteres")
	}
	if !lettersOnly.MatchString(text) {
		return fail("El apellido solo puede contener letras")
	}
	return ok()
}

func Birthday(text string) Result {
	return BirthdayAt(text, time.Now())
}

// BirthdayAt checks a DD/MM/YYYY date against now. Age is the difference in
// calendar years and must be between 18 and 50.
func BirthdayAt(text string, now time.Time) Result {
	if strings.TrimSpace(text) == "" {
		return fail("La fecha de nacimiento es requerida")
	}
	date, err := time.ParseInLocation(BIRTHDAY_LAYOUT, text, now.Location())
	if err != nil {
		return fail("Formato inválido (DD/MM/AAAA)")
	}
	if date.After(now) {
		return fail("La fecha no puede ser futura")
	}
	age := now.Year() - date.Year()
	if age < 18 {
		return fail("Debe ser mayor de 18 años")
	}
	if age > 50 {
		return fail("Máximo 50 años atrás")
	}
	return ok()
}

func Phone(text string) Result {
	if strings.TrimSpace(text) == "" {
		return fail("El teléfono es requerido")
	}
	if !tenDigits.MatchString(text) {
		return fail("Debe tener 10 dígitos")
	}
	return ok()
}

func Email(text string) Result {
	if strings.TrimSpace(text) == "" {
		return fail("El correo es requerido")
	}
	if utf8.RuneCountInString(text) > 30 {
		return fail("El correo debe tener máximo 30 caracteres")
	}
	if err := validate.Var(text, "email"); err != nil {
		return fail("Correo inválido")
	}
	return ok()
}

func Password(text string) Result {
	if strings.TrimSpace(text) == "" {
		return fail("La contraseña es requerida")
	}
	n := utf8.RuneCountInString(text)
	if n < 8 {
		return fail("Debe tener 8 caracteres mínimo")
	}
	if n > 20 {
		return fail("Máximo 20 caracteres")
	}
	return ok()
}

func ConfirmPassword(password string, text string) Result {
	if strings.TrimSpace(text) == "" {
		return fail("Debe confirmar la contraseña")
	}
	if text != password {
		return fail("Las contraseñas no coinciden")
	}
	return ok()
}

// Errors keeps only the failed fields, keyed by field name.
func Errors(results map[string]Result) map[string]string {
	errs := map[string]string{}
	for field, r := range results {
		if !r.Valid {
			errs[field] = r.Message
		}
	}
	return errs
}
