package errs

import (
	"github.com/pkg/errors"
)

// Kind classifies interpreter failures.
type Kind uint

const (
	Undefined Kind = iota
	ArityError
	InvalidParameter
	UnknownCommand
	UndefinedVariable
	UndefinedProcedure
	ArithmeticError
	MalformedStatement
	NestedCall
	Interrupted
)

func (k Kind) String() string {
	switch k {
	case ArityError:
		return "ArityError"
	case InvalidParameter:
		return "InvalidParameter"
	case UnknownCommand:
		return "UnknownCommand"
	case UndefinedVariable:
		return "UndefinedVariable"
	case UndefinedProcedure:
		return "UndefinedProcedure"
	case ArithmeticError:
		return "ArithmeticError"
	case MalformedStatement:
		return "MalformedStatement"
	case NestedCall:
		return "NestedCall"
	case Interrupted:
		return "Interrupted"
	default:
		return "Undefined"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type kindError struct {
	kind          Kind
	originalError error
}

func (e kindError) Error() string {
	return e.originalError.Error()
}

func (e kindError) Cause() error {
	return e.originalError
}

func (e kindError) Unwrap() error {
	return e.originalError
}

func (e kindError) Extend(message string) error {
	return kindError{kind: e.kind, originalError: errors.WithMessage(e.originalError, message)}
}

func (k Kind) New(msg string) error {
	return kindError{kind: k, originalError: errors.New(msg)}
}

func (k Kind) Errorf(msg string, args ...interface{}) error {
	return kindError{kind: k, originalError: errors.Errorf(msg, args...)}
}

func (k Kind) Wrap(err error, msg string) error {
	return kindError{kind: k, originalError: errors.Wrap(err, msg)}
}

func (k Kind) Wrapf(err error, msg string, args ...interface{}) error {
	return kindError{kind: k, originalError: errors.Wrapf(err, msg, args...)}
}

// GetKind returns the kind of the outermost classified error in the chain.
func GetKind(err error) Kind {
	var ke kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return Undefined
}

func Is(err error, k Kind) bool {
	return err != nil && GetKind(err) == k
}
