package sys

import "errors"

func ErrWrap[T any](def T) func(T, error) T {
	return func(value T, err error) T {
		if err != nil {
			value = def
		}
		return value
	}
}

func ErrOnly[T any](_ T, err error) error {
	return err
}

// ErrSuppress drops err if it matches any of the given types,
// or unconditionally if none is given
func ErrSuppress(err error, types ...error) error {
	for _, errType := range types {
		if errors.Is(err, errType) {
			return nil
		}
	}

	if len(types) > 0 {
		return err
	}

	return nil
}
