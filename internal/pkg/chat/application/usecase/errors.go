package usecase

import "errors"

var (
	// ErrPersistence indicates a directory/repository failure inside a use case
	ErrPersistence = errors.New("chat use case persistence error")
	// ErrProvider indicates the hosted chat service failed or is unreachable
	ErrProvider = errors.New("chat provider error")
	// ErrInvalidInput wraps validation failures of use case input
	ErrInvalidInput = errors.New("chat use case invalid input")
	// ErrPeerNotFound is returned when the other user of a conversation does not exist
	ErrPeerNotFound = errors.New("chat: other user not found")
	// ErrSessionUserNotFound is returned when the session points at a deleted account
	ErrSessionUserNotFound = errors.New("chat: session user not found")
)
