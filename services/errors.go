package services

// Typed errors raised by the service layer. Handlers match them with
// errors.As and map them to status codes; anything unmatched becomes a
// generic 500 so internals never leak to the client.

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError indicates a uniqueness violation (duplicate email).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// UnavailableError indicates an order referenced a food item that exists but
// is not currently orderable.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return "'" + e.Name + "' is currently unavailable"
}

// UnauthorizedError indicates an OTP verification failure.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// ServiceUnavailableError indicates a downstream transport failure (email
// delivery) that the caller may retry later.
type ServiceUnavailableError struct {
	Message string
	Err     error
}

func (e *ServiceUnavailableError) Error() string { return e.Message }

func (e *ServiceUnavailableError) Unwrap() error { return e.Err }
