package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Principal roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Principal is an authenticated actor. The PIN field holds a reversible
// base64 encoding of the plaintext PIN: login and change-PIN decode it for
// comparison, and existing backups carry the same encoding, so it must
// never be replaced by a one-way hash.
type Principal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PIN       string    `json:"pin"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewPrincipal stamps id, encoded PIN and creation time for a new principal.
func NewPrincipal(name, pin, role string) Principal {
	prefix := "user_"
	if role == RoleAdmin {
		prefix = "admin_"
	}
	return Principal{
		ID:        prefix + uuid.NewString(),
		Name:      strings.TrimSpace(name),
		PIN:       EncodePIN(pin),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// EncodePIN applies the reversible storage encoding to a plaintext PIN.
func EncodePIN(pin string) string {
	return base64.StdEncoding.EncodeToString([]byte(pin))
}

// DecodePIN recovers the plaintext PIN from its storage encoding.
func DecodePIN(encoded string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: malformed PIN encoding", ErrFormat)
	}
	return string(b), nil
}

// ValidatePIN enforces the 4-6 character PIN length rule.
func ValidatePIN(pin string) error {
	if len(pin) < 4 || len(pin) > 6 {
		return fmt.Errorf("%w: PIN must be 4-6 digits", ErrValidation)
	}
	return nil
}

// ValidateRole checks that role is one of the known roles.
func ValidateRole(role string) error {
	if role != RoleAdmin && role != RoleMember {
		return fmt.Errorf("%w: role must be admin or member", ErrValidation)
	}
	return nil
}
