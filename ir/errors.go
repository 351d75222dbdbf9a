package ir

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorCode represents a machine-readable generation failure category.
type ErrorCode string

const (
	// CodeClassificationGap: a type matched no shape rule although it must
	// be converted. Indicates a defect in the rule set.
	CodeClassificationGap ErrorCode = "classification_gap"

	// CodeUnsupportedCombination: nested type arguments fall outside the
	// enumerated decision tables.
	CodeUnsupportedCombination ErrorCode = "unsupported_combination"

	// CodeRegistryIncomplete: classification ran before the registry was
	// fully populated. Fatal to the whole run.
	CodeRegistryIncomplete ErrorCode = "registry_incomplete"

	// CodeInvalidInput: the API description is malformed.
	CodeInvalidInput ErrorCode = "invalid_input"
)

// Sentinels for errors.Is. A *GenerationError matches the sentinel of its code.
var (
	ErrClassificationGap      = errors.New("classification gap")
	ErrUnsupportedCombination = errors.New("unsupported combination")
	ErrRegistryIncomplete     = errors.New("registry incomplete")
	ErrInvalidInput           = errors.New("invalid input")
)

func (c ErrorCode) sentinel() error {
	switch c {
	case CodeClassificationGap:
		return ErrClassificationGap
	case CodeUnsupportedCombination:
		return ErrUnsupportedCombination
	case CodeRegistryIncomplete:
		return ErrRegistryIncomplete
	case CodeInvalidInput:
		return ErrInvalidInput
	}
	return nil
}

// GenerationError describes why a method could not be transformed.
type GenerationError struct {
	Code ErrorCode

	// Type is the original type declaring the method.
	Type QualifiedName

	Method    string
	Parameter string

	// Subject is the type that could not be handled.
	Subject *TypeRef

	Message string
}

func (e *GenerationError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Code))
	sb.WriteString(": ")
	if loc := e.location(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}
	if e.Subject != nil {
		sb.WriteString(e.Subject.String())
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	return sb.String()
}

func (e *GenerationError) location() string {
	var loc string
	switch {
	case e.Type != "" && e.Method != "":
		loc = string(e.Type) + "." + e.Method
	case e.Method != "":
		loc = e.Method
	default:
		loc = string(e.Type)
	}
	if e.Parameter != "" {
		loc += "(" + e.Parameter + ")"
	}
	return loc
}

// Is matches the sentinel of the error's code.
func (e *GenerationError) Is(target error) bool {
	s := e.Code.sentinel()
	return s != nil && target == s
}

// Gap returns a ClassificationGap error for subject.
func Gap(subject *TypeRef, format string, args ...any) *GenerationError {
	return &GenerationError{Code: CodeClassificationGap, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// Unsupported returns an UnsupportedCombination error for subject.
func Unsupported(subject *TypeRef, format string, args ...any) *GenerationError {
	return &GenerationError{Code: CodeUnsupportedCombination, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// RegistryIncomplete returns the fatal error raised when a registry lookup
// for name happens before the registry was built.
func RegistryIncomplete(name QualifiedName) error {
	err := &GenerationError{
		Code:    CodeRegistryIncomplete,
		Message: fmt.Sprintf("lookup of %s before the registry was built", name),
	}
	return errors.WithHint(err, "build the registry from every type under generation before classifying methods")
}

// Located attaches the method (and optionally parameter) a failure belongs to.
// A *GenerationError is copied with the location filled in; any other error
// is wrapped.
func Located(err error, owner QualifiedName, method, param string) error {
	if err == nil {
		return nil
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		located := *ge
		if located.Type == "" {
			located.Type = owner
		}
		if located.Method == "" {
			located.Method = method
		}
		if located.Parameter == "" {
			located.Parameter = param
		}
		if hints := errors.GetAllHints(err); len(hints) > 0 {
			return errors.WithHint(&located, strings.Join(hints, "\n"))
		}
		return &located
	}
	if param != "" {
		return errors.Wrapf(err, "%s.%s(%s)", owner, method, param)
	}
	return errors.Wrapf(err, "%s.%s", owner, method)
}

// IsFatal reports whether err must stop the whole run rather than just the
// method it was raised for.
func IsFatal(err error) bool {
	return errors.Is(err, ErrRegistryIncomplete)
}
