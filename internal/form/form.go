// Package form decodes request bodies into typed forms and validates them,
// reporting failures per field the way the API returns them to clients.
package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"

	"molnet-polls/internal/platform/apperr"
)

const maxBodyBytes = 1 << 20

// Errors maps a submitted field name to a message.
type Errors map[string]string

// Err returns nil for no errors, else a 422 AppError carrying the fields.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return apperr.Invalid(e)
}

type cleaner interface {
	clean()
}

var (
	decoder  = newDecoder()
	validate = newValidator()
)

func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	// Checkboxes post "on".
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		switch strings.ToLower(strings.TrimSpace(vals[0])) {
		case "on", "true", "1", "yes":
			return true, nil
		case "", "off", "false", "0", "no":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean %q", vals[0])
	}, false)
	return d
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode reads a JSON or urlencoded body into dst.
func Decode(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return apperr.BadRequest("invalid_input", "invalid form body", err)
		}
		if err := decoder.Decode(dst, r.PostForm); err != nil {
			return apperr.BadRequest("invalid_input", "invalid form body", err)
		}
	default:
		dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
		if err := dec.Decode(dst); err != nil {
			return apperr.BadRequest("invalid_input", "invalid body", err)
		}
	}

	if c, ok := dst.(cleaner); ok {
		c.clean()
	}
	return nil
}

// Validate runs the struct's validate tags and returns field errors keyed by
// the JSON field names.
func Validate(dst any) Errors {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"__all__": err.Error()}
	}
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

// Bind decodes and validates in one step.
func Bind(r *http.Request, dst any) error {
	if err := Decode(r, dst); err != nil {
		return err
	}
	return Validate(dst).Err()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Ensure this list has at most %s items.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Ensure this list has at least %s items.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "unique":
		return "Values must be unique."
	case "alphanum":
		return "Only letters and digits are allowed."
	default:
		return "Enter a valid value."
	}
}
