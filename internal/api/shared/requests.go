package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/ieop-api/internal/domain"
)

// MaxBodyBytes bounds every request body.
const MaxBodyBytes = 1 << 20

// CodeInvalidJSON is the error code of an unparseable request body.
const CodeInvalidJSON = "INVALID_JSON"

// Global validator instance for reuse. Field errors are reported by their
// JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// ReadJSON reads the request body as raw JSON. An empty body reads as {}.
// A body that is not a single JSON value fails with INVALID_JSON.
func ReadJSON(r *http.Request) (json.RawMessage, error) {
	if r.Body == nil {
		return json.RawMessage(`{}`), nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, invalidJSON(err)
	}
	if len(raw) > MaxBodyBytes {
		return nil, invalidJSON(fmt.Errorf("request body exceeds %d bytes", MaxBodyBytes))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(raw) {
		return nil, invalidJSON(errors.New("request body is not valid JSON"))
	}
	return json.RawMessage(raw), nil
}

// DecodeJSON decodes the request body into the given struct. Keys must match
// the json tag names exactly: a key differing only in case is ignored, so it
// never satisfies a required field. Numbers are kept as json.Number in
// untyped fields. A value of the wrong JSON type fails with a validation
// error naming the field.
func DecodeJSON(r *http.Request, v interface{}) error {
	raw, err := ReadJSON(r)
	if err != nil {
		return err
	}
	raw, err = dropMiscasedKeys(raw, v)
	if err != nil {
		return invalidJSON(err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			return domain.NewValidationError(field,
				fmt.Sprintf("%s must be of type %s", field, typeErr.Type)).WithCause(err)
		}
		return invalidJSON(err)
	}
	return nil
}

// dropMiscasedKeys removes the object members whose name equals one of the
// json field names of v only when case is ignored. Bodies that are not
// objects are returned unchanged for the typed decode to reject.
func dropMiscasedKeys(raw json.RawMessage, v interface{}) (json.RawMessage, error) {
	names := jsonFieldNames(v)
	if len(names) == 0 {
		return raw, nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil || members == nil {
		return raw, nil
	}

	dropped := false
	for key := range members {
		if _, exact := names[key]; exact {
			continue
		}
		for name := range names {
			if strings.EqualFold(key, name) {
				delete(members, key)
				dropped = true
				break
			}
		}
	}
	if !dropped {
		return raw, nil
	}
	return json.Marshal(members)
}

// jsonFieldNames returns the wire names of the fields of v's struct type.
func jsonFieldNames(v interface{}) map[string]struct{} {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	names := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		names[name] = struct{}{}
	}
	return names
}

// ValidateRequest validates the given struct using the validator package and
// reports the first failing field.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.NewValidationError(fe.Field(), validationMessage(fe)).WithCause(err)
	}
	return domain.NewError(domain.KindValidation, "Validation error").WithCause(err)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Missing %s", fe.Field())
	case "email":
		return fmt.Sprintf("Invalid %s: invalid email format", fe.Field())
	case "max":
		return fmt.Sprintf("Invalid %s: too long", fe.Field())
	default:
		return fmt.Sprintf("Invalid %s", fe.Field())
	}
}

func invalidJSON(err error) *domain.Error {
	return domain.NewError(domain.KindValidation, "Invalid JSON body").
		WithCode(CodeInvalidJSON).
		WithCause(err)
}
