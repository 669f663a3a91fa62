package service

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-portal/internal/cache"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/form"
	"github.com/spec-kit/job-portal/internal/upstream"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

var (
	admin     = &domain.Identity{UserID: 1, Email: "admin@example.com", Role: domain.RoleAdmin}
	applicant = &domain.Identity{UserID: 2, Email: "user@example.com", Role: domain.RoleApplicant}
	fixedNow  = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
)

func newJobRoleService(backend *fakeBackend, store cache.Store, d events.Dispatcher) *JobRoleService {
	return NewJobRoleService(JobRoleDependencies{
		Backend:    backend,
		Cache:      store,
		Validator:  form.NewValidator(fixedNow),
		Dispatcher: d,
	})
}

func validForm() url.Values {
	return url.Values{
		"roleName":         {"Software Engineer"},
		"capabilityId":     {"1"},
		"bandId":           {"2"},
		"description":      {"Builds things"},
		"responsibilities": {"Writing code"},
		"jobSpecLink":      {"https://kainossoftwareltd.sharepoint.com/spec"},
		"openPositions":    {"3"},
		"locationIds":      {"1", "2"},
		"closingDate":      {"2025-12-31"},
	}
}

func TestJobRoleService_ListCanDeleteFallback(t *testing.T) {
	backend := &fakeBackend{list: &domain.JobRoleList{JobRoles: []domain.JobRole{{JobRoleID: 1}}}}
	svc := newJobRoleService(backend, nil, nil)

	adminList, err := svc.List(context.Background(), admin)
	require.NoError(t, err)
	assert.True(t, adminList.CanDelete)

	userList, err := svc.List(context.Background(), applicant)
	require.NoError(t, err)
	assert.False(t, userList.CanDelete)
}

func TestJobRoleService_ListKeepsBackendCanDelete(t *testing.T) {
	backend := &fakeBackend{list: &domain.JobRoleList{Enveloped: true, CanDelete: false}}
	svc := newJobRoleService(backend, nil, nil)

	list, err := svc.List(context.Background(), admin)

	require.NoError(t, err)
	assert.False(t, list.CanDelete)
	assert.NotNil(t, list.JobRoles)
}

func TestJobRoleService_ListFailure(t *testing.T) {
	backend := &fakeBackend{err: &upstream.Error{Op: "list_job_roles", Status: http.StatusInternalServerError}}
	svc := newJobRoleService(backend, nil, nil)

	_, err := svc.List(context.Background(), admin)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, MsgListFailed, de.Message)
	assert.Equal(t, http.StatusBadGateway, de.HTTPStatus)
}

func TestJobRoleService_GetNotFound(t *testing.T) {
	backend := &fakeBackend{err: &upstream.Error{Op: "get_job_role", Status: http.StatusNotFound}}
	svc := newJobRoleService(backend, nil, nil)

	_, err := svc.Get(context.Background(), admin, 99)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.Equal(t, MsgNotFound, de.Message)
}

func TestJobRoleService_CreateForwardsValidForm(t *testing.T) {
	d := &recordingDispatcher{}
	backend := &fakeBackend{created: &domain.JobRole{JobRoleID: 10, RoleName: "Software Engineer"}}
	svc := newJobRoleService(backend, nil, d)

	created, err := svc.Create(context.Background(), admin, validForm())

	require.NoError(t, err)
	assert.Equal(t, 10, created.JobRoleID)
	assert.Equal(t, []int{1, 2}, backend.createReq.LocationIDs)
	assert.Equal(t, "2025-12-31T00:00:00.000Z", backend.createReq.ClosingDate)
	assert.Equal(t, []events.EventType{events.EventJobRoleCreated}, d.types())
}

func TestJobRoleService_CreateRejectsNonAdminBeforeBackend(t *testing.T) {
	backend := &fakeBackend{}
	svc := newJobRoleService(backend, nil, nil)

	_, err := svc.Create(context.Background(), applicant, validForm())

	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)
	assert.Zero(t, backend.calls.Load())
}

func TestJobRoleService_CreateValidationErrors(t *testing.T) {
	backend := &fakeBackend{}
	svc := newJobRoleService(backend, nil, nil)
	values := validForm()
	values.Set("openPositions", "abc")
	values.Set("jobSpecLink", "https://example.com/spec")

	_, err := svc.Create(context.Background(), admin, values)

	de := apperrors.ToDomainError(err)
	require.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Contains(t, de.Details, "openPositions")
	assert.Contains(t, de.Details, "jobSpecLink")
	assert.Zero(t, backend.calls.Load())
}

func TestJobRoleService_CreateConflict(t *testing.T) {
	backend := &fakeBackend{err: &upstream.Error{Op: "create_job_role", Status: http.StatusConflict}}
	svc := newJobRoleService(backend, nil, nil)

	_, err := svc.Create(context.Background(), admin, validForm())

	de := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusConflict, de.HTTPStatus)
	assert.Equal(t, MsgConflict, de.Message)
}

func TestJobRoleService_Delete(t *testing.T) {
	d := &recordingDispatcher{}
	backend := &fakeBackend{}
	svc := newJobRoleService(backend, nil, d)

	require.NoError(t, svc.Delete(context.Background(), admin, 4))
	assert.Equal(t, 4, backend.deletedID)
	assert.Equal(t, []events.EventType{events.EventJobRoleDeleted}, d.types())

	err := svc.Delete(context.Background(), applicant, 4)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)
}

func TestJobRoleService_ReferenceDataCached(t *testing.T) {
	backend := &fakeBackend{
		bands:        []domain.Band{{BandID: 1, BandName: "Associate"}},
		capabilities: []domain.Capability{{CapabilityID: 1, CapabilityName: "Engineering"}},
		locations:    []domain.Location{{LocationID: 1, LocationName: "Belfast"}},
	}
	svc := newJobRoleService(backend, cache.NewMemoryStore(16, time.Minute), nil)

	first, err := svc.ReferenceData(context.Background())
	require.NoError(t, err)
	second, err := svc.ReferenceData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Belfast", second.Locations[0].LocationName)
	assert.Equal(t, int32(3), backend.refCalls.Load())
}

func TestJobRoleService_ReferenceDataFailure(t *testing.T) {
	backend := &fakeBackend{err: &upstream.Error{Op: "list_bands", Status: http.StatusInternalServerError}}
	svc := newJobRoleService(backend, nil, nil)

	_, err := svc.ReferenceData(context.Background())

	assert.Equal(t, MsgReferenceData, apperrors.ToDomainError(err).Message)
}

func TestJobRoleService_SharedFetchSurvivesCallerCancellation(t *testing.T) {
	backend := &fakeBackend{
		bands:        []domain.Band{{BandID: 1, BandName: "Associate"}},
		bandsStarted: make(chan struct{}),
		bandsRelease: make(chan struct{}),
	}
	svc := newJobRoleService(backend, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := loadCached(ctx, svc, cacheKeyBands, backend.ListBands)
		firstErr <- err
	}()
	<-backend.bandsStarted

	type result struct {
		bands []domain.Band
		err   error
	}
	second := make(chan result, 1)
	go func() {
		bands, err := loadCached(context.Background(), svc, cacheKeyBands, backend.ListBands)
		second <- result{bands, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(backend.bandsRelease)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "Associate", got.bands[0].BandName)
}
