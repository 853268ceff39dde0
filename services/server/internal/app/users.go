package app

import (
	"fmt"
	"log/slog"

	"rentshare/pkg/domain"
	"rentshare/pkg/validation"
)

// UserPatch carries the fields of a partial user update. Nil fields are left
// unchanged.
type UserPatch struct {
	Name  *string
	Email *string
}

// CreateUser registers a user. The name must be non-blank and the email valid
// and unique.
func (a *App) CreateUser(name, email string) (domain.User, error) {
	if err := validation.NotBlank("name", name); err != nil {
		return domain.User{}, err
	}
	if err := validation.Email(email); err != nil {
		return domain.User{}, err
	}
	taken, err := a.store.EmailTaken(email, 0)
	if err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return domain.User{}, domain.Conflictf("email %s is already taken", email)
	}
	user, err := a.store.CreateUser(domain.User{Name: name, Email: email})
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	slog.Info("user created", "user_id", user.ID)
	return user, nil
}

// UpdateUser applies the non-nil patch fields to an existing user.
func (a *App) UpdateUser(id int64, patch UserPatch) (domain.User, error) {
	user, ok, err := a.store.GetUser(id)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return domain.User{}, domain.NotFoundf("user with id %d not found", id)
	}
	if patch.Email != nil {
		if err := validation.Email(*patch.Email); err != nil {
			return domain.User{}, err
		}
		taken, err := a.store.EmailTaken(*patch.Email, id)
		if err != nil {
			return domain.User{}, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return domain.User{}, domain.Conflictf("email %s is already taken", *patch.Email)
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		if err := validation.NotBlank("name", *patch.Name); err != nil {
			return domain.User{}, err
		}
		user.Name = *patch.Name
	}
	if err := a.store.UpdateUser(user); err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// GetUser returns a user by id.
func (a *App) GetUser(id int64) (domain.User, error) {
	user, ok, err := a.store.GetUser(id)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return domain.User{}, domain.NotFoundf("user with id %d not found", id)
	}
	return user, nil
}

// ListUsers returns all users ordered by id.
func (a *App) ListUsers() ([]domain.User, error) {
	users, err := a.store.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user together with the items they own.
func (a *App) DeleteUser(id int64) error {
	ok, err := a.store.UserExists(id)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return domain.NotFoundf("user with id %d not found", id)
	}
	if err := a.store.DeleteItemsByOwner(id); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	if err := a.store.DeleteUser(id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	slog.Info("user deleted", "user_id", id)
	return nil
}
