package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/glowdesk/glowdesk/internal/domain/user"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/postgres"
	"github.com/glowdesk/glowdesk/internal/types"
)

type userRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewUserRepository creates a postgres-backed user repository
func NewUserRepository(client postgres.IClient, log *logger.Logger) user.Repository {
	return &userRepository{client: client, logger: log}
}

const userColumns = `id, email, name, role, status, created_at, updated_at, created_by, updated_by`

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	q := r.client.Querier(ctx)

	query := `INSERT INTO users (` + userColumns + `) VALUES (
		:id, :email, :name, :role, :status, :created_at, :updated_at,
		:created_by, :updated_by)`

	if _, err := sqlx.NamedExecContext(ctx, q, query, u); err != nil {
		return ierr.WithError(err).
			WithHint("Could not create the user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *userRepository) getBy(ctx context.Context, column, value string) (*user.User, error) {
	q := r.client.Querier(ctx)

	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1 AND status != $2`
	if err := sqlx.GetContext(ctx, q, &u, query, value, types.StatusDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("user not found").
				WithHintf("No user found for %s %s", column, value).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Could not fetch the user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	q := r.client.Querier(ctx)

	u.Touch(ctx)

	query := `UPDATE users SET
		email = :email,
		name = :name,
		role = :role,
		status = :status,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id`

	res, err := sqlx.NamedExecContext(ctx, q, query, u)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not update the user").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("user not found").
			WithHintf("User %s does not exist", u.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
