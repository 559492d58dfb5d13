package seqlock

import (
	"fmt"
	"reflect"
)

// checkTrivial reports an error if values of typ cannot be moved byte for
// byte: anything holding a reference the garbage collector or another
// goroutine would have to know about.
func checkTrivial(typ reflect.Type) error {
	if path, ok := trivialPath(typ, typ.String()); !ok {
		return fmt.Errorf("%w: %s", ErrNotTrivial, path)
	}
	return nil
}

func trivialPath(typ reflect.Type, path string) (string, bool) {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return "", true

	case reflect.Array:
		return trivialPath(typ.Elem(), path+"[]")

	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			if p, ok := trivialPath(f.Type, path+"."+f.Name); !ok {
				return p, false
			}
		}
		return "", true

	default:
		return fmt.Sprintf("%s (%s)", path, typ.Kind()), false
	}
}
