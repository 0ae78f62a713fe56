package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracklab/pmt/internal/domain"
	"github.com/tracklab/pmt/internal/repository"
	"github.com/tracklab/pmt/internal/testutil"
)

func TestClientRepo_GetByEmail_PrefersOldestDuplicate(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteClientRepo(database)
	ctx := context.Background()

	first := &domain.Client{LastName: "One", Email: "shared@example.com", Status: domain.ClientActive}
	require.NoError(t, repo.Create(ctx, first))
	second := &domain.Client{LastName: "Two", Email: "shared@example.com", Status: domain.ClientActive}
	require.NoError(t, repo.Create(ctx, second))

	fetched, err := repo.GetByEmail(ctx, "shared@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ClientID, fetched.ClientID)
	assert.Equal(t, "One", fetched.LastName)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClientRepo_AttachAndCopy(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewFixture(t, database)
	repo := repository.NewSQLiteClientRepo(database)
	ctx := context.Background()

	item := f.AddItem(t, database)
	other := f.AddItem(t, database)
	c := f.AddClient(t, database)

	require.NoError(t, repo.AttachToItem(ctx, item.IID, c.ClientID))
	// attaching twice is a no-op
	require.NoError(t, repo.AttachToItem(ctx, item.IID, c.ClientID))

	attached, err := repo.ListByItem(ctx, item.IID)
	require.NoError(t, err)
	require.Len(t, attached, 1)
	assert.Equal(t, c.ClientID, attached[0].ClientID)

	require.NoError(t, repo.CopyItemClients(ctx, item.IID, other.IID))
	copied, err := repo.ListByItem(ctx, other.IID)
	require.NoError(t, err)
	require.Len(t, copied, 1)
	assert.Equal(t, c.ClientID, copied[0].ClientID)
}

func TestPersonnelRepo_RolesRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewFixture(t, database)
	repo := repository.NewSQLitePersonnelRepo(database)
	ctx := context.Background()

	u := f.AddUser(t, database)

	managers, err := repo.UsersByRole(ctx, f.Project.PID, domain.RoleManager)
	require.NoError(t, err)
	assert.Empty(t, managers)

	require.NoError(t, repo.Add(ctx, f.Project.PID, u.Username, domain.RoleManager))
	require.NoError(t, repo.Add(ctx, f.Project.PID, u.Username, domain.RoleManager))

	managers, err = repo.UsersByRole(ctx, f.Project.PID, domain.RoleManager)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, u.Username, managers[0].Username)

	developers, err := repo.UsersByRole(ctx, f.Project.PID, domain.RoleDeveloper)
	require.NoError(t, err)
	assert.Empty(t, developers)

	projects, err := repo.ProjectsByRole(ctx, u.Username, domain.RoleManager)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, f.Project.PID, projects[0].PID)

	require.NoError(t, repo.Remove(ctx, f.Project.PID, u.Username, domain.RoleManager))
	managers, err = repo.UsersByRole(ctx, f.Project.PID, domain.RoleManager)
	require.NoError(t, err)
	assert.Empty(t, managers)
}
