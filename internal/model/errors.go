package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Room errors
	ErrRoomNotFound = errors.New("room not found")

	// Word source errors
	ErrNoWordsLoaded = errors.New("no words loaded")
)
