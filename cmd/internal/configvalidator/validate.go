package configvalidator

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnknownField returns when an unknown field appears in the config.
var ErrUnknownField = errors.New("unknown field")

// CheckForUnknownFields validates the config map against the config struct.
// Every key of the map must correspond to a struct field with the same
// `mapstructure` tag (or name if the tag is missing). Nested maps are checked
// against nested structs.
func CheckForUnknownFields(configMap map[string]any, config any) error {
	return checkForUnknownFields(configMap, reflect.TypeOf(config), "")
}

func checkForUnknownFields(configMap map[string]any, t reflect.Type, currentPath string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	fields := structFields(t)

	for key, val := range configMap {
		fullPath := key
		if currentPath != "" {
			fullPath = currentPath + "." + key
		}

		ft, ok := fields[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, fullPath)
		}

		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		nested, isMap := val.(map[string]any)
		switch {
		case isMap && ft.Kind() == reflect.Struct:
			if err := checkForUnknownFields(nested, ft, fullPath); err != nil {
				return err
			}
		case isMap && ft.Kind() == reflect.Map:
		case isMap != (ft.Kind() == reflect.Struct):
			return fmt.Errorf("%w: %s", ErrUnknownField, fullPath)
		}
	}

	return nil
}

func structFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		if tag := field.Tag.Get("mapstructure"); tag != "" {
			fields[tag] = field.Type
		} else {
			fields[field.Name] = field.Type
		}
	}
	return fields
}
