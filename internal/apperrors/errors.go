package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConsistency indicates a cross-entity invariant violation, e.g. trying to
// deactivate a payment whose ledger entry has already been conciliated.
var ErrConsistency = errors.New("consistency error")

// ErrConflict indicates a concurrent modification was detected; the caller
// may re-fetch and retry the whole operation.
var ErrConflict = errors.New("conflicting concurrent modification")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
