package usecase

import (
	"context"
	"testing"

	"placement-portal/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, users *fakeUsers) (admin, student, company user.User) {
	t.Helper()
	admin = user.User{ID: uuid.New(), Email: "a@uni.edu", Role: user.RoleAdmin, IsActive: true, PasswordHash: "h"}
	student = user.User{ID: uuid.New(), Email: "s@uni.edu", Role: user.RoleStudent, IsActive: true, PasswordHash: "h"}
	company = user.User{ID: uuid.New(), Email: "c@acme.test", Role: user.RoleCompany, IsActive: false, PasswordHash: "h"}
	for _, u := range []user.User{admin, student, company} {
		require.NoError(t, users.CreateUser(context.Background(), u))
	}
	return admin, student, company
}

func TestAdmin_ListUsersFilters(t *testing.T) {
	users := newFakeUsers()
	admin, student, _ := seedUsers(t, users)
	uc := NewAdminUsecase(users, nil)
	me := Actor{UserID: admin.ID, Role: user.RoleAdmin}

	all, err := uc.ListUsers(context.Background(), me, UserListParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	for _, u := range all.Items {
		assert.Empty(t, u.PasswordHash)
	}

	students, err := uc.ListUsers(context.Background(), me, UserListParams{Role: "Student"})
	require.NoError(t, err)
	require.Len(t, students.Items, 1)
	assert.Equal(t, student.ID, students.Items[0].ID)

	inactive, err := uc.ListUsers(context.Background(), me, UserListParams{Active: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, 1, inactive.Total)

	_, err = uc.ListUsers(context.Background(), me, UserListParams{Role: "root"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.ListUsers(context.Background(), Actor{UserID: uuid.New(), Role: user.RoleFaculty}, UserListParams{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAdmin_SetUserActive(t *testing.T) {
	users := newFakeUsers()
	admin, student, _ := seedUsers(t, users)
	uc := NewAdminUsecase(users, nil)
	me := Actor{UserID: admin.ID, Role: user.RoleAdmin}

	blocked, err := uc.SetUserActive(context.Background(), me, student.ID, false)
	require.NoError(t, err)
	assert.False(t, blocked.IsActive)
	assert.Empty(t, blocked.PasswordHash)
	assert.False(t, users.byID[student.ID].IsActive)

	_, err = uc.SetUserActive(context.Background(), me, admin.ID, false)
	assert.ErrorIs(t, err, ErrSelfDeactivation)

	_, err = uc.SetUserActive(context.Background(), me, uuid.New(), true)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = uc.SetUserActive(context.Background(), studentActor(student.ID), student.ID, true)
	assert.ErrorIs(t, err, ErrForbidden)
}
