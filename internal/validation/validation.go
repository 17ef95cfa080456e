// Package validation wraps go-playground/validator with the funnel's
// domain-specific rules: CPF check digits, E.164-ish phone numbers, and the
// cross-field uniqueness constraints on a registration submission.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"telemed-checkout/internal/domain"
	"telemed-checkout/internal/domain/model"
)

// FieldError addresses one offending field so the caller can render the
// message inline next to it ("dependentes[2].email").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries every field failure from one submission. It unwraps to
// domain.ErrValidation so callers can branch with errors.Is.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed: %d fields", len(e.Fields))
}

func (e *Error) Unwrap() error { return domain.ErrValidation }

type Validator struct {
	v *validator.Validate
}

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Error paths use the wire names, not the Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("intlphone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})

	return &Validator{v: v}
}

// ValidateLead checks the lead-capture form.
func (va *Validator) ValidateLead(lead model.Lead) []FieldError {
	return va.structErrors(va.v.Struct(lead))
}

// ValidateRegistration checks a full dependents submission: per-field rules,
// per-type document formats, and the uniqueness constraints. expected is the
// reconciled quota; the form must carry exactly that many dependents.
func (va *Validator) ValidateRegistration(form model.RegistrationForm, expected int) []FieldError {
	errs := va.structErrors(va.v.Struct(form))

	if len(form.Dependentes) != expected {
		errs = append(errs, FieldError{
			Field:   "dependentes",
			Message: fmt.Sprintf("esperados %d dependentes, recebidos %d", expected, len(form.Dependentes)),
		})
	}

	errs = append(errs, checkDocument("titular", form.Titular.DocumentType, form.Titular.DocumentNumber)...)
	for i, d := range form.Dependentes {
		errs = append(errs, checkDocument(fmt.Sprintf("dependentes[%d]", i), d.DocumentType, d.DocumentNumber)...)
	}

	errs = append(errs, checkUniqueness(form)...)
	return errs
}

func (va *Validator) structErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace arrives as "RegistrationForm.dependentes[2].email";
		// drop the root struct segment.
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out = append(out, FieldError{Field: field, Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "email inválido"
	case "min":
		return fmt.Sprintf("deve ter pelo menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
	case "intlphone":
		return "telefone inválido (formato: +55 11 99999-9999)"
	}
	return "valor inválido"
}

func checkDocument(prefix string, dt model.DocumentType, number string) []FieldError {
	var errs []FieldError
	if !dt.Valid() {
		errs = append(errs, FieldError{Field: prefix + ".tipoDocumento", Message: "tipo de documento inválido"})
		return errs
	}
	digits := model.StripDigits(number)
	switch dt {
	case model.DocCPF:
		if !ValidCPF(digits) {
			errs = append(errs, FieldError{Field: prefix + ".numeroDocumento", Message: "CPF inválido"})
		}
	case model.DocSSN, model.DocITIN:
		if len(digits) != 9 {
			errs = append(errs, FieldError{Field: prefix + ".numeroDocumento", Message: "número do documento deve ter 9 dígitos"})
		}
	case model.DocPassport:
		if strings.TrimSpace(number) == "" || len(number) > 20 {
			errs = append(errs, FieldError{Field: prefix + ".numeroDocumento", Message: "número do passaporte inválido"})
		}
	}
	return errs
}

// checkUniqueness enforces the submission-level constraints: a dependent's
// document may not repeat the titular's or another dependent's, and emails
// are pairwise distinct. Every offending field is flagged, not just the
// second occurrence.
func checkUniqueness(form model.RegistrationForm) []FieldError {
	var errs []FieldError

	titularDoc := model.StripDigits(form.Titular.DocumentNumber)
	docOwners := map[string][]string{}
	emailOwners := map[string][]string{}

	for i, d := range form.Dependentes {
		prefix := fmt.Sprintf("dependentes[%d]", i)
		doc := model.StripDigits(d.DocumentNumber)
		if d.DocumentType == model.DocPassport {
			doc = strings.ToUpper(strings.TrimSpace(d.DocumentNumber))
		}
		if doc != "" {
			if doc == titularDoc {
				errs = append(errs, FieldError{Field: prefix + ".numeroDocumento", Message: "documento igual ao do titular"})
			}
			docOwners[doc] = append(docOwners[doc], prefix+".numeroDocumento")
		}
		email := strings.ToLower(strings.TrimSpace(d.Email))
		if email != "" {
			emailOwners[email] = append(emailOwners[email], prefix+".email")
		}
	}

	for _, fields := range docOwners {
		if len(fields) > 1 {
			for _, f := range fields {
				errs = append(errs, FieldError{Field: f, Message: "documento repetido entre dependentes"})
			}
		}
	}
	for _, fields := range emailOwners {
		if len(fields) > 1 {
			for _, f := range fields {
				errs = append(errs, FieldError{Field: f, Message: "email repetido entre dependentes"})
			}
		}
	}
	return errs
}

// ValidPhone accepts an E.164-like number: a "+", a non-zero leading digit,
// and 8 to 15 digits total. Brazilian and US numbers additionally have
// their known lengths enforced.
func ValidPhone(phone string) bool {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, phone)
	if !e164Pattern.MatchString(compact) {
		return false
	}
	digits := model.StripDigits(compact)
	if strings.HasPrefix(digits, "55") {
		return len(digits) == 13
	}
	if strings.HasPrefix(digits, "1") {
		return len(digits) == 11
	}
	return true
}

// ValidCPF verifies the two check digits of an 11-digit CPF. The input must
// already be digits-only.
func ValidCPF(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}
	allEqual := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	digit := func(upTo, weight int) int {
		sum := 0
		for i := 0; i < upTo; i++ {
			sum += int(cpf[i]-'0') * (weight - i)
		}
		r := sum % 11
		if r < 2 {
			return 0
		}
		return 11 - r
	}

	if int(cpf[9]-'0') != digit(9, 10) {
		return false
	}
	return int(cpf[10]-'0') == digit(10, 11)
}
