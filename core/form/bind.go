package form

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// ErrBind is returned when a request cannot be decoded into a form.
var ErrBind = errors.New("form: failed to bind request")

// Bind parses the request form and copies values into the `form`-tagged
// fields of dst, which must be a pointer to a struct. Embedded structs are
// walked. Supported field kinds: string, bool and integers.
func Bind(r *http.Request, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: destination must be a pointer to a struct", ErrBind)
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: %w", ErrBind, err)
	}
	return bindStruct(rv.Elem(), r)
}

func bindStruct(v reflect.Value, r *http.Request) error {
	t := v.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		fv := v.Field(i)

		if sf.Anonymous && fv.Kind() == reflect.Struct {
			if err := bindStruct(fv, r); err != nil {
				return err
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(sf.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			continue
		}
		if _, ok := r.Form[name]; !ok {
			continue
		}
		if err := setValue(fv, strings.TrimSpace(r.Form.Get(name))); err != nil {
			return fmt.Errorf("%w: field %q: %w", ErrBind, name, err)
		}
	}
	return nil
}

func setValue(fv reflect.Value, raw string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		if raw == "" || raw == "on" {
			fv.SetBool(raw == "on")
			return nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	default:
		return fmt.Errorf("unsupported kind %s", fv.Kind())
	}
	return nil
}
