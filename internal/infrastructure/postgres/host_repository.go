package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/origon-auth/internal/domain"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
	"github.com/jhoicas/origon-auth/internal/domain/repository"
)

var (
	_ repository.HostStore       = (*HostRepo)(nil)
	_ repository.ActivityChecker = (*HostRepo)(nil)
)

var hostColumns = []string{
	"id", "username", "email", "password_hash", "full_name", "phone_number",
	"business_name", "business_license", "business_type", "address", "city", "state",
	"country", "postal_code", "bio", "profile_image", "is_verified", "verification_documents",
	"is_active", "date_joined", "last_login",
}

// HostRepo implementación del puerto HostStore sobre PostgreSQL.
type HostRepo struct {
	*principalTable[*entity.Host]
	now func() time.Time
}

// NewHostRepository construye el adaptador de persistencia para hosts.
func NewHostRepository(db DB) *HostRepo {
	return &HostRepo{
		principalTable: &principalTable[*entity.Host]{
			db:       db,
			name:     "hosts",
			columns:  hostColumns,
			editable: editableSet((&entity.Host{}).ProfileFields()),
			scan:     scanHost,
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create persiste un nuevo host.
func (r *HostRepo) Create(ctx context.Context, h *entity.Host) (*entity.Host, error) {
	out := h.Clone()
	out.ID = uuid.NewString()
	out.DateJoined = r.now()
	// last_login queda NULL
	err := r.insert(ctx, hostColumns[:len(hostColumns)-1],
		out.ID, out.Username, out.Email, out.PasswordHash, out.FullName, out.PhoneNumber,
		out.BusinessName, out.BusinessLicense, out.BusinessType, out.Address, out.City, out.State,
		out.Country, out.PostalCode, out.Bio, out.ProfileImage, out.IsVerified, out.VerificationDocuments,
		out.IsActive, out.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetVerified vía administrativa. notes nil conserva las notas actuales.
func (r *HostRepo) SetVerified(ctx context.Context, id string, verified bool, notes *string) (*entity.Host, error) {
	b := psql.Update("hosts").Set("is_verified", verified)
	if notes != nil {
		b = b.Set("verification_documents", *notes)
	}
	query, args, err := b.Where(squirrel.Eq{"id": id}).Suffix("RETURNING " + strings.Join(hostColumns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update hosts: %w", err)
	}
	h, err := scanHost(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("verificar host: %w", err)
	}
	return h, nil
}

func scanHost(row pgx.Row) (*entity.Host, error) {
	var (
		h         entity.Host
		lastLogin sql.NullTime
	)
	if err := row.Scan(
		&h.ID, &h.Username, &h.Email, &h.PasswordHash, &h.FullName, &h.PhoneNumber,
		&h.BusinessName, &h.BusinessLicense, &h.BusinessType, &h.Address, &h.City, &h.State,
		&h.Country, &h.PostalCode, &h.Bio, &h.ProfileImage, &h.IsVerified, &h.VerificationDocuments,
		&h.IsActive, &h.DateJoined, &lastLogin,
	); err != nil {
		return nil, err
	}
	h.LastLogin = nullTime(lastLogin)
	return &h, nil
}
