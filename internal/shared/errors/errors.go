// Package errors provides the structured error taxonomy of the data-access
// layer. Every repository and transaction failure is surfaced as a DataError
// carrying its kind and, where known, the offending entity and constraint, so
// callers can decide on retries, user messaging, or compensating actions.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a data-access failure.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindUniqueViolation     Kind = "unique_violation"
	KindForeignKeyViolation Kind = "foreign_key_violation"
	KindValidation          Kind = "validation_error"
	KindTransactionAborted  Kind = "transaction_aborted"
	KindConnection          Kind = "connection_error"
	KindInternal            Kind = "internal_error"
)

// DataError is the error type returned by repositories and the transaction
// coordinator. Constraint holds the offending column or constraint name when
// the underlying driver reports one.
type DataError struct {
	Kind       Kind   `json:"kind"`
	Entity     string `json:"entity,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Message    string `json:"message"`
	Cause      error  `json:"-"`
}

func (e *DataError) Error() string {
	switch {
	case e.Entity != "" && e.Constraint != "":
		return fmt.Sprintf("%s: %s (%s.%s)", e.Kind, e.Message, e.Entity, e.Constraint)
	case e.Entity != "":
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Entity)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *DataError) Unwrap() error {
	return e.Cause
}

// WithConstraint returns a copy of the error annotated with the offending
// column or constraint name.
func (e *DataError) WithConstraint(name string) *DataError {
	clone := *e
	clone.Constraint = name
	return &clone
}

func newError(kind Kind, entity, message string, cause ...error) *DataError {
	e := &DataError{Kind: kind, Entity: entity, Message: message}
	if len(cause) > 0 {
		e.Cause = cause[0]
	}
	return e
}

// NewNotFound reports a keyed lookup, update, or delete whose target row does
// not exist.
func NewNotFound(entity, message string, cause ...error) *DataError {
	return newError(KindNotFound, entity, message, cause...)
}

// NewUniqueViolation reports an insert or update that duplicates a unique
// column value.
func NewUniqueViolation(entity, message string, cause ...error) *DataError {
	return newError(KindUniqueViolation, entity, message, cause...)
}

// NewForeignKeyViolation reports a dangling reference on insert/update, or a
// blocked delete of a still-referenced parent row.
func NewForeignKeyViolation(entity, message string, cause ...error) *DataError {
	return newError(KindForeignKeyViolation, entity, message, cause...)
}

// NewValidation reports a malformed filter, sort, grouping, or input payload
// rejected before reaching the database.
func NewValidation(entity, message string, cause ...error) *DataError {
	return newError(KindValidation, entity, message, cause...)
}

// NewTransactionAborted reports a rollback caused by an inner failure or a
// transaction timeout.
func NewTransactionAborted(message string, cause ...error) *DataError {
	return newError(KindTransactionAborted, "", message, cause...)
}

// NewConnection reports an unreachable or failing storage backend. The layer
// never retries these itself.
func NewConnection(message string, cause ...error) *DataError {
	return newError(KindConnection, "", message, cause...)
}

// NewInternal reports an unexpected failure that fits no other kind.
func NewInternal(message string, cause ...error) *DataError {
	return newError(KindInternal, "", message, cause...)
}

// AsDataError extracts a DataError from an error chain, or nil.
func AsDataError(err error) *DataError {
	var de *DataError
	if errors.As(err, &de) {
		return de
	}
	return nil
}

func isKind(err error, kind Kind) bool {
	de := AsDataError(err)
	return de != nil && de.Kind == kind
}

func IsNotFound(err error) bool            { return isKind(err, KindNotFound) }
func IsUniqueViolation(err error) bool     { return isKind(err, KindUniqueViolation) }
func IsForeignKeyViolation(err error) bool { return isKind(err, KindForeignKeyViolation) }
func IsValidation(err error) bool          { return isKind(err, KindValidation) }
func IsTransactionAborted(err error) bool  { return isKind(err, KindTransactionAborted) }
func IsConnection(err error) bool          { return isKind(err, KindConnection) }
