package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrNotConnected     = fmt.Errorf("spotify not connected")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrInvalidState     = fmt.Errorf("invalid state parameter")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// Catalog and provider errors
	ErrProviderRequest = fmt.Errorf("provider request failed")
	ErrLoadFailed      = fmt.Errorf("failed to load playlist tracks")
	ErrTrackNotFound   = fmt.Errorf("track not found")
	ErrEmptyQuery      = fmt.Errorf("search query cannot be empty")

	// Queue errors
	ErrQueueEmpty      = fmt.Errorf("queue is empty")
	ErrIndexOutOfRange = fmt.Errorf("queue index out of range")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
