package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/origon-auth/internal/domain/entity"
	"github.com/jhoicas/origon-auth/internal/domain/repository"
)

var (
	_ repository.UserStore       = (*UserRepo)(nil)
	_ repository.ActivityChecker = (*UserRepo)(nil)
)

var userColumns = []string{
	"id", "username", "email", "password_hash", "full_name", "phone_number",
	"is_active", "is_staff", "is_superuser", "date_joined", "last_login",
}

// UserRepo implementación del puerto UserStore sobre PostgreSQL.
type UserRepo struct {
	*principalTable[*entity.User]
	now func() time.Time
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db DB) *UserRepo {
	return &UserRepo{
		principalTable: &principalTable[*entity.User]{
			db:       db,
			name:     "users",
			columns:  userColumns,
			editable: editableSet((&entity.User{}).ProfileFields()),
			scan:     scanUser,
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create persiste un nuevo usuario; la unicidad la garantizan los constraints.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	out := u.Clone()
	out.ID = uuid.NewString()
	out.DateJoined = r.now()
	err := r.insert(ctx, userColumns[:len(userColumns)-1],
		out.ID, out.Username, out.Email, out.PasswordHash, out.FullName, out.PhoneNumber,
		out.IsActive, out.IsStaff, out.IsSuperuser, out.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u         entity.User
		lastLogin sql.NullTime
	)
	if err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.PhoneNumber,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.DateJoined, &lastLogin,
	); err != nil {
		return nil, err
	}
	u.LastLogin = nullTime(lastLogin)
	return &u, nil
}
