package service

import (
	"context"
	"fmt"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
	"github.com/tracklab/pmt/internal/repository"
)

type projectService struct {
	conn db.DBTX
}

func NewProjectService(conn db.DBTX) ProjectService {
	return &projectService{conn: conn}
}

func (s *projectService) AddPersonnel(ctx context.Context, pid int64, username string, role domain.ProjectRole) error {
	if !domain.ValidProjectRoles[role] {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if _, err := repository.NewSQLiteProjectRepo(s.conn).GetByID(ctx, pid); err != nil {
		return err
	}
	if _, err := repository.NewSQLiteUserRepo(s.conn).GetByUsername(ctx, username); err != nil {
		return err
	}
	return repository.NewSQLitePersonnelRepo(s.conn).Add(ctx, pid, username, role)
}

func (s *projectService) RemovePersonnel(ctx context.Context, pid int64, username string, role domain.ProjectRole) error {
	if !domain.ValidProjectRoles[role] {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	return repository.NewSQLitePersonnelRepo(s.conn).Remove(ctx, pid, username, role)
}

func (s *projectService) Personnel(ctx context.Context, pid int64) (*ProjectPersonnel, error) {
	if _, err := repository.NewSQLiteProjectRepo(s.conn).GetByID(ctx, pid); err != nil {
		return nil, err
	}

	personnel := repository.NewSQLitePersonnelRepo(s.conn)
	result := &ProjectPersonnel{}
	for _, bind := range []struct {
		role domain.ProjectRole
		dst  *[]*domain.UserProfile
	}{
		{domain.RoleManager, &result.Managers},
		{domain.RoleDeveloper, &result.Developers},
		{domain.RoleGuest, &result.Guests},
	} {
		users, err := personnel.UsersByRole(ctx, pid, bind.role)
		if err != nil {
			return nil, err
		}
		*bind.dst = users
	}
	return result, nil
}

func (s *projectService) RolesFor(ctx context.Context, username string) (*UserRoles, error) {
	if _, err := repository.NewSQLiteUserRepo(s.conn).GetByUsername(ctx, username); err != nil {
		return nil, err
	}

	personnel := repository.NewSQLitePersonnelRepo(s.conn)
	result := &UserRoles{}
	for _, bind := range []struct {
		role domain.ProjectRole
		dst  *[]*domain.Project
	}{
		{domain.RoleManager, &result.ManagerOn},
		{domain.RoleDeveloper, &result.DeveloperOn},
		{domain.RoleGuest, &result.GuestOn},
	} {
		projects, err := personnel.ProjectsByRole(ctx, username, bind.role)
		if err != nil {
			return nil, err
		}
		*bind.dst = projects
	}
	return result, nil
}
