package service

import (
	"context"

	"github.com/spec-kit/job-portal/internal/domain"
)

// LoginBackend exchanges credentials for a session token.
type LoginBackend interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// JobRoleBackend is the job role part of the backend API.
type JobRoleBackend interface {
	ListJobRoles(ctx context.Context) (*domain.JobRoleList, error)
	GetJobRole(ctx context.Context, id int) (*domain.JobRoleDetail, error)
	CreateJobRole(ctx context.Context, req domain.CreateJobRoleRequest) (*domain.JobRole, error)
	DeleteJobRole(ctx context.Context, id int) error
	ListBands(ctx context.Context) ([]domain.Band, error)
	ListCapabilities(ctx context.Context) ([]domain.Capability, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
}

// ApplicationBackend forwards job applications.
type ApplicationBackend interface {
	SubmitApplication(ctx context.Context, jobRoleID int, cv domain.CVUpload) (*domain.ApplicationReceipt, error)
}
