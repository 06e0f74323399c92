// Package validate checks decoded request payloads with go-playground/validator.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobly/internal/apperr"
)

// fraction matches a decimal literal in [0, 1].
var fraction = regexp.MustCompile(`^(?:0(?:\.[0-9]+)?|1(?:\.0+)?)$`)

// handle matches a company handle.
var handle = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = val.RegisterValidation("fraction", func(fl validator.FieldLevel) bool {
		return fraction.MatchString(fl.Field().String())
	})
	_ = val.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handle.MatchString(fl.Field().String())
	})
	return val
}

// Struct validates s and reports every failing field as one validation error.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return fmt.Errorf("%w: %s", apperr.ErrValidation, strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s must have length %s %s", fe.Field(), bound(fe.Tag()), fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s must be %s %s", fe.Field(), bound(fe.Tag()), fe.Param())
	case "fraction":
		return fmt.Sprintf("%s must be a decimal between 0 and 1", fe.Field())
	case "handle":
		return fmt.Sprintf("%s must be lowercase letters, digits and dashes", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a URL", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func bound(tag string) string {
	if tag == "min" || tag == "gte" {
		return ">="
	}
	return "<="
}

// Decode reads a single JSON object into dst and validates it. Unknown top-level keys and
// trailing data are rejected.
func Decode(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", apperr.ErrValidation, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: invalid JSON body: unexpected data after object", apperr.ErrValidation)
	}
	return Struct(dst)
}

// Patch describes the keys a partial update body may carry.
type Patch struct {
	// Allowed lists the accepted keys in the order fields are emitted.
	Allowed []string
	// Nullable keys may be set to JSON null.
	Nullable []string
}

// Decode reads a partial update into dst, validates it and returns the keys that were
// present, in Allowed order. An empty object yields no keys and no error.
func (p Patch) Decode(r io.Reader, dst any) ([]string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable body: %v", apperr.ErrValidation, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", apperr.ErrValidation)
	}

	var unknown []string
	for k := range raw {
		if !contains(p.Allowed, k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: fields not allowed: %s", apperr.ErrValidation, strings.Join(unknown, ", "))
	}

	present := make([]string, 0, len(raw))
	for _, k := range p.Allowed {
		val, ok := raw[k]
		if !ok {
			continue
		}
		if bytes.Equal(bytes.TrimSpace(val), []byte("null")) && !contains(p.Nullable, k) {
			return nil, fmt.Errorf("%w: %s may not be null", apperr.ErrValidation, k)
		}
		present = append(present, k)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON body: %v", apperr.ErrValidation, err)
	}
	if err := Struct(dst); err != nil {
		return nil, err
	}
	return present, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
