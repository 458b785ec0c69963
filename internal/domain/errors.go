package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrConstraintViolation = errors.New("violación de restricción del almacén")
	ErrTransactionAborted  = errors.New("transacción abortada")
	ErrNestedTransaction   = errors.New("no se permite abrir una transacción dentro de otra")
	ErrUnauthorized        = errors.New("no autorizado")
)

// TxAbortedError es el fallo compuesto de una ejecución atómica: indica el paso que falló
// y conserva la causa original. Todos los efectos previos ya fueron revertidos.
type TxAbortedError struct {
	Step  string
	Cause error
}

func (e *TxAbortedError) Error() string {
	return fmt.Sprintf("%s en el paso %q: %v", ErrTransactionAborted.Error(), e.Step, e.Cause)
}

// Unwrap devuelve la causa original.
func (e *TxAbortedError) Unwrap() error { return e.Cause }

// Is permite errors.Is(err, ErrTransactionAborted).
func (e *TxAbortedError) Is(target error) bool { return target == ErrTransactionAborted }
