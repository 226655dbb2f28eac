package artifact

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/seasonshelf/seasonshelf-server/internal/errors"
)

// Validator checks hydrated artifacts for structural problems the defensive
// decoder tolerates but callers may want to reject or log, such as a missing
// season identity or unnamed achievements.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a validator configured for artifact structs.
func NewValidator() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	return &Validator{v: v}
}

// Validate reports structural problems as a coded validation error.
// A nil return means the artifact carries a usable season identity and
// every achievement is named.
func (val *Validator) Validate(a *Artifact) error {
	if err := val.v.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if !domainerrors.As(err, &verrs) {
			return err
		}
		fields := make(map[string]string, len(verrs))
		for _, e := range verrs {
			fields[e.Namespace()] = friendlyMessage(e)
		}
		return domainerrors.ValidationWithDetails("artifact failed validation", fields)
	}
	return nil
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + e.Param()
	default:
		return "is invalid"
	}
}
