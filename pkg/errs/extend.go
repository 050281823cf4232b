package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

type IExtend interface {
	Extend(message string) error
}

// Extend prefixes err with message, keeping the kind of classified errors.
func Extend(err error, message string) error {
	if ex, ok := err.(IExtend); ok {
		return ex.Extend(message)
	}
	return errors.Wrap(err, message)
}

// Extendf is Extend with a formatted message.
func Extendf(err error, format string, args ...interface{}) error {
	return Extend(err, fmt.Sprintf(format, args...))
}
