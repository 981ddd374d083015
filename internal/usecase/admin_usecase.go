package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"placement-portal/internal/domain/user"
	"placement-portal/internal/repository"

	"github.com/google/uuid"
)

type UserListParams struct {
	Role    string
	Active  *bool
	Page    int
	PerPage int
}

type UserPage struct {
	Items   []user.User
	Page    int
	PerPage int
	Total   int
	Pages   int
}

type AdminUsecase interface {
	ListUsers(ctx context.Context, actor Actor, params UserListParams) (UserPage, error)
	SetUserActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) (user.User, error)
}

type Admin struct {
	users  repository.UserDirectory
	logger *log.Logger
}

func NewAdminUsecase(users repository.UserDirectory, logger *log.Logger) *Admin {
	return &Admin{users: users, logger: logger}
}

func (u *Admin) ListUsers(ctx context.Context, actor Actor, params UserListParams) (UserPage, error) {
	if actor.Role != user.RoleAdmin {
		return UserPage{}, ErrForbidden
	}
	page := params.Page
	if page == 0 {
		page = 1
	}
	perPage := params.PerPage
	if perPage == 0 {
		perPage = defaultPerPage
	}
	if page < 0 || perPage < 0 || perPage > maxPerPage {
		return UserPage{}, ErrInvalidInput
	}

	var role user.Role
	if r := strings.ToLower(strings.TrimSpace(params.Role)); r != "" {
		parsed, ok := user.ParseRole(r)
		if !ok {
			return UserPage{}, ErrInvalidInput
		}
		role = parsed
	}

	users, total, err := u.users.ListUsers(ctx, repository.UserFilter{
		Role:   role,
		Active: params.Active,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		return UserPage{}, ErrInternal
	}
	for i := range users {
		users[i].PasswordHash = ""
	}

	pages := 0
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return UserPage{Items: users, Page: page, PerPage: perPage, Total: total, Pages: pages}, nil
}

// SetUserActive blocks or restores an account. A blocked user cannot log in
// or refresh; an access token already issued stays valid until it expires.
func (u *Admin) SetUserActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) (user.User, error) {
	if actor.Role != user.RoleAdmin {
		return user.User{}, ErrForbidden
	}
	if id == uuid.Nil {
		return user.User{}, ErrUserNotFound
	}
	if id == actor.UserID && !active {
		return user.User{}, ErrSelfDeactivation
	}

	updated, err := u.users.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	updated.PasswordHash = ""
	if u.logger != nil {
		u.logger.Printf("[Admin] User active changed | user_id=%s active=%t by=%s", id, active, actor.UserID)
	}
	return updated, nil
}
