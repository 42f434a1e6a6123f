package testutil

import (
	"context"

	"github.com/glowdesk/glowdesk/internal/types"
)

// SetupContext returns a context carrying an owner identity, the default for
// service tests since most billing mutations require billing authority
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxUserRole, types.UserRoleOwner)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}

// SetupStaffContext returns a context carrying a staff identity, for tests
// exercising the authority checks
func SetupStaffContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER))
	ctx = context.WithValue(ctx, types.CtxUserRole, types.UserRoleStaff)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
