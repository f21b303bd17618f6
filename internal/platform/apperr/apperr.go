package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels que devuelven los repositorios (memory/postgres).
// Los services los traducen a *Error con un mensaje para el cliente.
var (
	ErrNoRows     = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrForeignKey = errors.New("referenced record does not exist")
)

type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindInvalidState Kind = "INVALID_STATE"
	KindInvalidInput Kind = "INVALID_INPUT"
	KindConflict     Kind = "CONFLICT"
	KindInternal     Kind = "INTERNAL_ERROR"
)

// Error es el resultado de una validación o falla de un caso de uso.
// Err conserva la causa original (solo para logs, nunca se expone al cliente).
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func InvalidState(msg string) *Error { return &Error{Kind: KindInvalidState, Message: msg} }
func InvalidInput(msg string) *Error { return &Error{Kind: KindInvalidInput, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf devuelve el Kind de err. Cualquier error que no sea *Error es interno.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reporta si err es un *Error del kind indicado.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf devuelve el mensaje seguro para el cliente.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal error"
}

// FromStorage traduce un error de repositorio al taxonomy del dominio.
// notFoundMsg / conflictMsg son los mensajes que verá el cliente.
func FromStorage(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNoRows):
		return NotFound(notFoundMsg)
	case errors.Is(err, ErrDuplicate):
		return Conflict(conflictMsg)
	case errors.Is(err, ErrForeignKey):
		return InvalidInput("referenced record does not exist")
	default:
		var e *Error
		if errors.As(err, &e) {
			return e
		}
		return Internal("storage failure", err)
	}
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState, KindInvalidInput:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
