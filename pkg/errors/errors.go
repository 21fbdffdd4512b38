package errors

type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func NewBadRequestError(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return e.Message
}

func NewInternalError(message string) *InternalError {
	return &InternalError{Message: message}
}

// InvalidRuleError signals a malformed recurrence rule. This is a data-entry
// or programming error, never a normal evaluation outcome.
type InvalidRuleError struct {
	Message string
}

func (e *InvalidRuleError) Error() string {
	return e.Message
}

func NewInvalidRuleError(message string) *InvalidRuleError {
	return &InvalidRuleError{Message: message}
}

// InvalidInvitationError signals a missing or unresolvable invitation.
// Terminal for the registration flow; the user needs a fresh invitation link.
type InvalidInvitationError struct {
	Message string
}

func (e *InvalidInvitationError) Error() string {
	return e.Message
}

func NewInvalidInvitationError(message string) *InvalidInvitationError {
	return &InvalidInvitationError{Message: message}
}

// StoreError wraps a failure of a backing collaborator (database, cache,
// object storage). Callers may recover by falling back to another source.
type StoreError struct {
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(message string, err error) *StoreError {
	return &StoreError{Message: message, Err: err}
}
