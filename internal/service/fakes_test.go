package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
)

type fakeBackend struct {
	loginToken string
	loginErr   error

	list      *domain.JobRoleList
	detail    *domain.JobRoleDetail
	created   *domain.JobRole
	err       error
	createReq domain.CreateJobRoleRequest
	deletedID int

	bands        []domain.Band
	capabilities []domain.Capability
	locations    []domain.Location
	refCalls     atomic.Int32
	bandsStarted chan struct{}
	bandsRelease chan struct{}
	startOnce    sync.Once

	receipt *domain.ApplicationReceipt
	calls   atomic.Int32
}

func (f *fakeBackend) Login(context.Context, string, string) (string, error) {
	f.calls.Add(1)
	return f.loginToken, f.loginErr
}

func (f *fakeBackend) ListJobRoles(context.Context) (*domain.JobRoleList, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	clone := *f.list
	return &clone, nil
}

func (f *fakeBackend) GetJobRole(context.Context, int) (*domain.JobRoleDetail, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	clone := *f.detail
	return &clone, nil
}

func (f *fakeBackend) CreateJobRole(_ context.Context, req domain.CreateJobRoleRequest) (*domain.JobRole, error) {
	f.calls.Add(1)
	f.createReq = req
	return f.created, f.err
}

func (f *fakeBackend) DeleteJobRole(_ context.Context, id int) error {
	f.calls.Add(1)
	f.deletedID = id
	return f.err
}

func (f *fakeBackend) ListBands(ctx context.Context) ([]domain.Band, error) {
	f.refCalls.Add(1)
	if f.bandsRelease != nil {
		f.startOnce.Do(func() { close(f.bandsStarted) })
		<-f.bandsRelease
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return f.bands, f.err
}

func (f *fakeBackend) ListCapabilities(context.Context) ([]domain.Capability, error) {
	f.refCalls.Add(1)
	return f.capabilities, f.err
}

func (f *fakeBackend) ListLocations(context.Context) ([]domain.Location, error) {
	f.refCalls.Add(1)
	return f.locations, f.err
}

func (f *fakeBackend) SubmitApplication(context.Context, int, domain.CVUpload) (*domain.ApplicationReceipt, error) {
	f.calls.Add(1)
	return f.receipt, f.err
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}
