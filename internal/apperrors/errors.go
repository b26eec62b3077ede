package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrInvalidState indicates an operation attempted on an account that is not ACTIVE.
var ErrInvalidState = errors.New("invalid state")

// ErrPolicyViolation indicates a breach of an account-type business rule
// (minimum deposit, ceiling, withdrawal cap, mandatory minimum balance, inactive product).
var ErrPolicyViolation = errors.New("policy violation")

// ErrInvalidArgument indicates malformed numeric or date input to a calculation.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates failed authentication.
var ErrUnauthorized = errors.New("unauthorized")
