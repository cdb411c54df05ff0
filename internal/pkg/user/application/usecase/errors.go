package usecase

import "errors"

var (
	// ErrPersistence indicates a repository failure inside a use case
	ErrPersistence = errors.New("user use case persistence error")
	// ErrInvalidInput wraps validation failures of use case input
	ErrInvalidInput = errors.New("user use case invalid input")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike
	ErrInvalidCredentials = errors.New("invalid email or password")
)
