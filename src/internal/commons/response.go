package commons

type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Kind    string   `json:"kind,omitempty"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// FailureResponse renders a classified error. Errors without a kind are
// reported as storage failures so that driver messages never leak out.
func FailureResponse[T any](err error) Response[T] {
	e := AsError(err)
	return Response[T]{
		Success: false,
		Message: e.Message,
		Kind:    string(e.Kind),
		Errors:  e.Details,
	}
}
