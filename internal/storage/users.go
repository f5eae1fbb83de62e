package storage

import (
	"context"

	"github.com/LuckyIntegral/My-finances/internal/models"
)

// CreateUser inserts a new user and returns it with the generated id.
func (s *Store) CreateUser(ctx context.Context, firstName, lastName string) (*models.User, error) {
	res, err := s.q.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name) VALUES (?, ?)",
		firstName, lastName,
	)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.User{ID: id, FirstName: firstName, LastName: lastName}, nil
}

// GetUser retrieves a single user by id. Returns sql.ErrNoRows if it does not
// exist.
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	row := s.q.QueryRowContext(ctx,
		"SELECT id, first_name, last_name FROM users WHERE id = ?",
		id,
	)

	var u models.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers retrieves all users ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT id, first_name, last_name FROM users ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// UpdateUser overwrites the name fields of an existing user.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	_, err := s.q.ExecContext(ctx,
		"UPDATE users SET first_name = ?, last_name = ? WHERE id = ?",
		u.FirstName, u.LastName, u.ID,
	)
	return err
}

// DeleteUser removes a user row by id.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	_, err := s.q.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}
