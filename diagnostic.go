package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Repr renders v for the diagnostic channel.
// Strings pass through, errors render as their message, structured values
// are JSON encoded with HTML and Unicode left unescaped, and everything
// else gets a Go-syntax dump.
func Repr(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case []byte:
		return string(val)
	case json.Marshaler:
		return marshalRepr(val)
	case error:
		return val.Error()
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "NULL"
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Map, reflect.Slice, reflect.Array:
		return marshalRepr(v)
	case reflect.Struct:
		// a struct without exported fields would encode as {}
		if hasExportedField(rv.Type()) {
			return marshalRepr(v)
		}
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(rv.Interface())
	}
	return fmt.Sprintf("%#v", v)
}

func marshalRepr(v any) string {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func hasExportedField(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return true
		}
	}
	return false
}
