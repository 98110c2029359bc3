package domain

import "errors"

// Error taxonomy. Every operation in the vault layer wraps one of these
// sentinels so the API boundary can map failures to HTTP statuses with
// errors.Is, while the message keeps the operation-specific detail.
var (
	ErrValidation     = errors.New("validation failed")     // malformed or missing input
	ErrConflict       = errors.New("conflict")              // uniqueness violation (duplicate PIN)
	ErrAuthentication = errors.New("authentication failed") // PIN mismatch or missing session
	ErrPermission     = errors.New("permission denied")     // authenticated but insufficient role/ownership
	ErrNotFound       = errors.New("not found")             // target record id does not exist
	ErrFormat         = errors.New("invalid format")        // malformed or foreign backup envelope
	ErrIO             = errors.New("storage failure")       // persistence medium failure
)
