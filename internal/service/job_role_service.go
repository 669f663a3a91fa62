package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/cache"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/form"
	"github.com/spec-kit/job-portal/internal/upstream"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// User-facing messages for job role operations.
const (
	MsgListFailed     = "Unable to load job roles. Please try again later."
	MsgDetailFailed   = "Unable to load job role information. Please try again later."
	MsgNotFound       = "Job role not found."
	MsgCreateFailed   = "Failed to create job role. Please try again."
	MsgConflict       = "A job role with this name already exists."
	MsgDeleteFailed   = "Unable to delete job role. Please try again."
	MsgReferenceData  = "Unable to load the add role form. Please try again later."
	MsgFormValidation = "Please correct the highlighted fields."
)

// Cache keys for reference data.
const (
	cacheKeyBands        = "bands"
	cacheKeyCapabilities = "capabilities"
	cacheKeyLocations    = "locations"
)

// JobRoleService exposes job role browsing and administration.
type JobRoleService struct {
	backend    JobRoleBackend
	cache      cache.Store
	validator  *form.Validator
	dispatcher events.Dispatcher
	logger     *zap.Logger
	flights    singleflight.Group
}

// JobRoleDependencies encapsulates what the job role service needs.
type JobRoleDependencies struct {
	Backend    JobRoleBackend
	Cache      cache.Store
	Validator  *form.Validator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewJobRoleService builds the service.
func NewJobRoleService(deps JobRoleDependencies) *JobRoleService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	v := deps.Validator
	if v == nil {
		v = form.NewValidator(nil)
	}
	return &JobRoleService{
		backend:    deps.Backend,
		cache:      deps.Cache,
		validator:  v,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// List returns every open job role. When the backend does not report
// canDelete, admins are allowed to delete.
func (s *JobRoleService) List(ctx context.Context, identity *domain.Identity) (*domain.JobRoleList, error) {
	list, err := s.backend.ListJobRoles(ctx)
	if err != nil {
		return nil, apperrors.FromUpstream(err, "", MsgListFailed)
	}
	if !list.Enveloped {
		list.CanDelete = identity.IsAdmin()
	}
	if list.JobRoles == nil {
		list.JobRoles = []domain.JobRole{}
	}
	return list, nil
}

// Get returns one job role.
func (s *JobRoleService) Get(ctx context.Context, identity *domain.Identity, id int) (*domain.JobRoleDetail, error) {
	detail, err := s.backend.GetJobRole(ctx, id)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, apperrors.NewNotFound(MsgNotFound)
		}
		return nil, apperrors.FromUpstream(err, "", MsgDetailFailed)
	}
	if !detail.Enveloped {
		detail.CanDelete = identity.IsAdmin()
	}
	return detail, nil
}

// Create validates the submitted form and forwards it. Validation failures
// carry the per-field messages in Details.
func (s *JobRoleService) Create(ctx context.Context, identity *domain.Identity, values url.Values) (*domain.JobRole, error) {
	if err := auth.Authorize(identity, domain.RoleAdmin); err != nil {
		return nil, err
	}

	req, err := s.validator.ParseCreateJobRole(values)
	if err != nil {
		var fieldErrs form.FieldErrors
		if errors.As(err, &fieldErrs) {
			return nil, apperrors.NewValidationError(MsgFormValidation, fieldErrs.Details())
		}
		return nil, apperrors.NewValidationError(MsgFormValidation, nil)
	}

	created, err := s.backend.CreateJobRole(ctx, req)
	if err != nil {
		return nil, apperrors.FromUpstream(err, MsgConflict, MsgCreateFailed)
	}

	publish(ctx, s.dispatcher, s.logger, events.EventJobRoleCreated, identity, events.JobRolePayload{
		JobRoleID: created.JobRoleID,
		RoleName:  req.RoleName,
	})
	return created, nil
}

// Delete removes a job role.
func (s *JobRoleService) Delete(ctx context.Context, identity *domain.Identity, id int) error {
	if err := auth.Authorize(identity, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.backend.DeleteJobRole(ctx, id); err != nil {
		if upstream.IsNotFound(err) {
			return apperrors.NewNotFound(MsgNotFound)
		}
		return apperrors.FromUpstream(err, "", MsgDeleteFailed)
	}
	publish(ctx, s.dispatcher, s.logger, events.EventJobRoleDeleted, identity, events.JobRolePayload{JobRoleID: id})
	return nil
}

// ReferenceData loads bands, capabilities and locations concurrently,
// serving each from the cache when possible.
func (s *JobRoleService) ReferenceData(ctx context.Context) (*domain.ReferenceData, error) {
	var data domain.ReferenceData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.Bands, err = loadCached(gctx, s, cacheKeyBands, s.backend.ListBands)
		return err
	})
	g.Go(func() error {
		var err error
		data.Capabilities, err = loadCached(gctx, s, cacheKeyCapabilities, s.backend.ListCapabilities)
		return err
	})
	g.Go(func() error {
		var err error
		data.Locations, err = loadCached(gctx, s, cacheKeyLocations, s.backend.ListLocations)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.FromUpstream(err, "", MsgReferenceData)
	}
	return &data, nil
}

func loadCached[T any](ctx context.Context, s *JobRoleService, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var items []T
			if jsonErr := json.Unmarshal(raw, &items); jsonErr == nil {
				return items, nil
			}
			s.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
		case !errors.Is(err, cache.ErrMiss):
			s.logger.Warn("reference cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	// Concurrent misses for the same key share one backend call. The shared
	// call is detached from any one caller's cancellation and is bounded by
	// the upstream client timeout instead.
	ch := s.flights.DoChan(key, func() (any, error) {
		return fetch(context.WithoutCancel(ctx))
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	items, _ := res.Val.([]T)
	if items == nil {
		items = []T{}
	}

	if s.cache != nil {
		if raw, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, key, raw); err != nil {
				s.logger.Warn("reference cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return items, nil
}
