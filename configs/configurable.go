package configs

import "errors"

// Configurable is implemented by named config types that know where they live in the CUE tree.
type Configurable interface {
	ConfigPath() string
}

// Get decodes the first value found at T's config path, or returns the zero T.
// Invalid documents panic.
func Get[T Configurable](loader Loader) T {
	var value T
	if err := loader.AssignFirst(value.ConfigPath(), &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value
		}
		panic(err)
	}
	return value
}
