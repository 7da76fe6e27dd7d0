package result

import (
	"context"
	stderrors "errors"
	"fmt"

	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/common/i18n"
)

// Kind classifies a failure by where its display message comes from.
type Kind int

const (
	// KindStructured: an upstream payload carried its own message.
	KindStructured Kind = iota
	// KindSimple: the failure had a generic message or was a plain string.
	KindSimple
	// KindUnknown: nothing presentable; the fallback message is shown.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindSimple:
		return "simple"
	default:
		return "unknown"
	}
}

// Failure is a classified failure of a wrapped operation.
type Failure struct {
	Kind    Kind
	Message string
	// Raw is the returned error or the recovered panic value.
	Raw interface{}
	// Panicked reports whether Raw came from a recovered panic.
	Panicked bool
}

// PanicError wraps a panic value recovered from a wrapped operation.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Err returns the failure as an error for logging.
func (f Failure) Err() error {
	if err, ok := f.Raw.(error); ok {
		return err
	}
	return &PanicError{Value: f.Raw}
}

// Classify turns a raw failure into a Failure. Precedence: a structured payload
// message, then a generic message, then a plain string, then fallback.
func Classify(raw interface{}, fallback string) Failure {
	f := Failure{Raw: raw}

	switch v := raw.(type) {
	case error:
		var respErr *apperrors.ResponseError
		if stderrors.As(v, &respErr) {
			if respErr.Payload.Message != "" {
				f.Kind, f.Message = KindStructured, respErr.Payload.Message
				return f
			}
			if respErr.Message != "" {
				f.Kind, f.Message = KindSimple, respErr.Message
				return f
			}
		}
		var stdErr *apperrors.StandardError
		if stderrors.As(v, &stdErr) && stdErr.Message != "" {
			f.Kind, f.Message = KindSimple, stdErr.Message
			return f
		}
		if msg := v.Error(); msg != "" {
			f.Kind, f.Message = KindSimple, msg
			return f
		}
	case string:
		if v != "" {
			f.Kind, f.Message = KindSimple, v
			return f
		}
	}

	f.Kind, f.Message = KindUnknown, fallback
	return f
}

// FallbackMessage is the localized message used for unclassifiable failures.
func FallbackMessage(ctx context.Context) string {
	return i18n.TranslatorFromContext(ctx).T(i18n.KeyLoadFailed)
}
