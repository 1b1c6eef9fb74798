package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/repository"
)

const userColumns = `id, email, password_hash, first_name, last_name, date_of_birth,
	gender, phone_number, street_address, city, country, user_type, is_active,
	last_login, created_on, created_at, updated_at`

// profileTables maps a user type onto the table holding its profile row.
var profileTables = map[string]string{
	model.UserTypePatient:    "patients",
	model.UserTypeSpecialist: "specialists",
}

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

// Create inserts the user and its role profile in one transaction. The
// existence check takes no row lock; the profile primary key is the final
// guard against concurrent duplicates.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	table, ok := profileTables[user.UserType]
	if !ok {
		return fmt.Errorf("unknown user type %q", user.UserType)
	}

	now := time.Now().UTC()
	user.Touch(now)
	user.CreatedOn = model.NewDate(now)

	query := `
		INSERT INTO users (
			email, password_hash, first_name, last_name, date_of_birth,
			gender, phone_number, street_address, city, country,
			user_type, is_active, created_on, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query,
			user.Email,
			user.PasswordHash,
			user.FirstName,
			user.LastName,
			user.DateOfBirth,
			user.Gender,
			user.PhoneNumber,
			user.StreetAddress,
			user.City,
			user.Country,
			user.UserType,
			user.IsActive,
			user.CreatedOn,
			user.CreatedAt,
			user.UpdatedAt,
		).Scan(&user.ID)
		if err != nil {
			return err
		}

		var exists bool
		if err := tx.GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM "+table+" WHERE user_id = $1)", user.ID); err != nil {
			return err
		}
		if exists {
			return nil
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO "+table+" (user_id, created_at, updated_at) VALUES ($1, $2, $3)",
			user.ID, user.CreatedAt, user.UpdatedAt)
		return err
	})
	if err != nil {
		return wrapErr("create user", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, wrapErr("get user", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, wrapErr("get user by email", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET
			email = $1,
			password_hash = $2,
			first_name = $3,
			last_name = $4,
			date_of_birth = $5,
			gender = $6,
			phone_number = $7,
			street_address = $8,
			city = $9,
			country = $10,
			user_type = $11,
			is_active = $12,
			updated_at = $13
		WHERE id = $14
	`

	user.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.DateOfBirth,
		user.Gender,
		user.PhoneNumber,
		user.StreetAddress,
		user.City,
		user.Country,
		user.UserType,
		user.IsActive,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return wrapErr("update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return wrapErr("update user", sql.ErrNoRows)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	users := []*model.User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, wrapErr("list users", err)
	}
	return users, nil
}
