package postgresadapter

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator implements ports.IDGenerator using RFC 4122 UUID v4 values.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// ClaimCodeGenerator implements ports.CodeGenerator. Codes are opaque
// redemption tokens shown to door staff, so they drop the dashes for easier
// manual entry.
type ClaimCodeGenerator struct{}

func (ClaimCodeGenerator) NewCode(_ context.Context) (string, error) {
	return strings.ReplaceAll(uuid.NewString(), "-", ""), nil
}
