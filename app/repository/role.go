package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-accounts/app/entity"
)

type RoleRepository struct {
	db Querier
}

func NewRoleRepository(db Querier) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) WithTx(tx *sql.Tx) *RoleRepository {
	return &RoleRepository{db: tx}
}

func (r *RoleRepository) Create(ctx context.Context, role *entity.Role) error {
	query := `
		INSERT INTO roles (name, parent_role_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		role.Name,
		role.ParentRoleID,
		role.CreatedAt,
		role.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	role.ID = uint64(id)
	return nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id uint64) (*entity.Role, error) {
	query := `
		SELECT id, name, parent_role_id, created_at, updated_at
		FROM roles WHERE id = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	query := `
		SELECT id, name, parent_role_id, created_at, updated_at
		FROM roles WHERE name = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

// FindByUserID returns the roles directly assigned to a user, without
// hierarchy expansion.
func (r *RoleRepository) FindByUserID(ctx context.Context, userID uint64) ([]*entity.Role, error) {
	query := `
		SELECT r.id, r.name, r.parent_role_id, r.created_at, r.updated_at
		FROM roles r
		INNER JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = ?
		ORDER BY r.name
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*entity.Role
	for rows.Next() {
		role := &entity.Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.ParentRoleID, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) List(ctx context.Context) ([]*entity.Role, error) {
	query := `
		SELECT id, name, parent_role_id, created_at, updated_at
		FROM roles ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*entity.Role
	for rows.Next() {
		role := &entity.Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.ParentRoleID, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) Assign(ctx context.Context, userID, roleID uint64) error {
	query := `INSERT INTO user_roles (user_id, role_id, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, userID, roleID, time.Now())
	return err
}

func (r *RoleRepository) scanOne(row *sql.Row) (*entity.Role, error) {
	role := &entity.Role{}
	err := row.Scan(
		&role.ID,
		&role.Name,
		&role.ParentRoleID,
		&role.CreatedAt,
		&role.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return role, nil
}
