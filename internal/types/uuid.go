package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex pay_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_PAYMENT         = "pay"
	UUID_PREFIX_PENDING_INVOICE = "pfi"
	UUID_PREFIX_DOCUMENT        = "doc"
	UUID_PREFIX_USER            = "user"
	UUID_PREFIX_BILLING_EVENT   = "bev"
)
