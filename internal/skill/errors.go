package skill

import "errors"

var (
	ErrUnsupportedRequest = errors.New("unsupported request type")
	ErrInvalidIntent      = errors.New("invalid intent")
	ErrHandlerPanic       = errors.New("panic while handling request")
)

type InvalidIntentError struct {
	Name string
}

func (e *InvalidIntentError) Error() string {
	if e.Name == "" {
		return "invalid intent: request has no intent"
	}
	return "invalid intent " + e.Name
}

func (e *InvalidIntentError) Is(target error) bool {
	return target == ErrInvalidIntent
}
