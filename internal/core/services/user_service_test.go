package services

import (
	"context"
	"testing"

	"spacefinders/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture() (*UserService, *fakeUserRepo, *fakeRefreshTokenRepo, *fakeAuditRepo) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	auditRepo := newFakeAuditRepo()
	svc := NewUserService(userRepo, tokenRepo, NewAuditService(auditRepo))
	return svc, userRepo, tokenRepo, auditRepo
}

func TestDeleteAccountIsTerminal(t *testing.T) {
	svc, userRepo, _, auditRepo := newUserFixture()
	user := seedUser(userRepo, "alice", "pw-irrelevant-1", domain.RoleClient, domain.UserActive)

	require.NoError(t, svc.Delete(context.Background(), user.ID, "10.0.0.1"))

	stored, _ := userRepo.GetByID(context.Background(), user.ID)
	assert.Equal(t, domain.UserDeleted, stored.Status)
	assert.Len(t, auditRepo.byAction(domain.ActionDelete), 1)

	// Repeating the delete fails and writes no second audit record
	err := svc.Delete(context.Background(), user.ID, "10.0.0.1")
	assert.ErrorIs(t, err, ErrUserAlreadyDeleted)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Len(t, auditRepo.byAction(domain.ActionDelete), 1)
}

func TestDeleteAccountRevokesSessions(t *testing.T) {
	svc, userRepo, tokenRepo, _ := newUserFixture()
	user := seedUser(userRepo, "bob", "pw-irrelevant-1", domain.RoleClient, domain.UserActive)

	tokenRepo.Create(context.Background(), tokenFor(user.ID))
	tokenRepo.Create(context.Background(), tokenFor(user.ID))
	require.Equal(t, 2, tokenRepo.activeCount(user.ID))

	require.NoError(t, svc.Delete(context.Background(), user.ID, "10.0.0.1"))
	assert.Equal(t, 0, tokenRepo.activeCount(user.ID))
}

func TestBlockRequiresActiveUser(t *testing.T) {
	svc, userRepo, _, auditRepo := newUserFixture()
	admin := seedUser(userRepo, "admin", "pw-irrelevant-1", domain.RoleAdmin, domain.UserActive)
	user := seedUser(userRepo, "carol", "pw-irrelevant-1", domain.RoleClient, domain.UserActive)

	blocked, err := svc.Block(context.Background(), user.ID, admin.ID, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.UserBlocked), blocked.Status)

	// Blocking again fails: the user is no longer ACTIVE
	_, err = svc.Block(context.Background(), user.ID, admin.ID, "10.0.0.1")
	assert.ErrorIs(t, err, ErrUserNotActive)

	// The audit record is attributed to the admin, not the target
	records := auditRepo.byAction(domain.ActionUpdate)
	require.Len(t, records, 1)
	assert.Equal(t, admin.ID, records[0].UserID)
}

func TestUnblockRequiresBlockedUser(t *testing.T) {
	svc, userRepo, _, _ := newUserFixture()
	admin := seedUser(userRepo, "admin", "pw-irrelevant-1", domain.RoleAdmin, domain.UserActive)
	active := seedUser(userRepo, "dave", "pw-irrelevant-1", domain.RoleClient, domain.UserActive)
	blocked := seedUser(userRepo, "erin", "pw-irrelevant-1", domain.RoleClient, domain.UserBlocked)

	_, err := svc.Unblock(context.Background(), active.ID, admin.ID, "10.0.0.1")
	assert.ErrorIs(t, err, ErrUserNotBlocked)

	result, err := svc.Unblock(context.Background(), blocked.ID, admin.ID, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.UserActive), result.Status)
}

func TestUpdateProfileChecksUniquenessOnlyWhenChanged(t *testing.T) {
	svc, userRepo, _, _ := newUserFixture()
	user := seedUser(userRepo, "frank", "pw-irrelevant-1", domain.RoleClient, domain.UserActive)
	seedUser(userRepo, "gina", "pw-irrelevant-1", domain.RoleClient, domain.UserActive)

	// Re-submitting the unchanged email passes the duplicate guard
	sameEmail := user.Email
	_, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		Email: &sameEmail,
	}, "10.0.0.1")
	assert.NoError(t, err)

	// Taking another user's email fails naming the field
	takenEmail := "gina@example.com"
	_, err = svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		Email: &takenEmail,
	}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrEmailTaken)

	takenPhone := "+1555gina"
	_, err = svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		Phone: &takenPhone,
	}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrPhoneTaken)
}

func TestListUsersPagination(t *testing.T) {
	svc, userRepo, _, _ := newUserFixture()
	for _, name := range []string{"u1", "u2", "u3", "u4", "u5"} {
		seedUser(userRepo, name, "pw-irrelevant-1", domain.RoleClient, domain.UserActive)
	}

	out, err := svc.ListUsers(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Total)
	assert.Equal(t, 3, out.TotalPages)
	assert.Len(t, out.Users, 2)
	assert.Equal(t, "u3", out.Users[0].Username)
}
