package service

import (
	"context"
	"errors"
	"fmt"
	"mime"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// PDFContentType is the only CV format accepted.
const PDFContentType = "application/pdf"

// User-facing messages for applications.
const (
	MsgMissingCVTitle   = "Missing CV"
	MsgMissingCV        = "Please upload your CV to complete the application."
	MsgInvalidCVTitle   = "Invalid CV"
	MsgInvalidCV        = "Only PDF files are accepted."
	MsgApplyFailedTitle = "Application Failed"
	MsgApplyFailed      = "Unable to submit application. Please try again later."
	MsgRoleClosedTitle  = "Applications Closed"
	MsgRoleClosed       = "This job role is no longer accepting applications."
)

// ApplicationService forwards CV uploads to the backend.
type ApplicationService struct {
	backend    ApplicationBackend
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewApplicationService builds the service.
func NewApplicationService(backend ApplicationBackend, dispatcher events.Dispatcher, logger *zap.Logger) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{backend: backend, dispatcher: dispatcher, logger: logger}
}

// Submit checks the CV and forwards it. A missing or non-PDF file is
// rejected without contacting the backend.
func (s *ApplicationService) Submit(ctx context.Context, identity *domain.Identity, jobRoleID int, cv *domain.CVUpload) (*domain.ApplicationReceipt, error) {
	if cv == nil || cv.Size == 0 || cv.Open == nil {
		return nil, validationWithTitle(MsgMissingCVTitle, MsgMissingCV)
	}
	if err := ValidateCV(*cv); err != nil {
		return nil, err
	}

	receipt, err := s.backend.SubmitApplication(ctx, jobRoleID, *cv)
	if err != nil {
		return nil, withTitle(apperrors.FromUpstream(err, "", MsgApplyFailed), MsgApplyFailedTitle)
	}

	publish(ctx, s.dispatcher, s.logger, events.EventApplicationSubmitted, identity, events.ApplicationPayload{
		JobRoleID: jobRoleID,
		FileName:  cv.FileName,
		SizeBytes: cv.Size,
	})
	return receipt, nil
}

// ValidateCV accepts the upload only when both the declared content type
// and the file's leading bytes say PDF.
func ValidateCV(cv domain.CVUpload) error {
	declared, _, err := mime.ParseMediaType(cv.ContentType)
	if err != nil || declared != PDFContentType {
		return validationWithTitle(MsgInvalidCVTitle, MsgInvalidCV)
	}

	f, err := cv.Open()
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("open cv: %w", err))
	}
	defer f.Close()

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("sniff cv: %w", err))
	}
	if !detected.Is(PDFContentType) {
		return validationWithTitle(MsgInvalidCVTitle, MsgInvalidCV)
	}
	return nil
}

// CheckAccepting rejects roles the backend has marked closed.
func (s *ApplicationService) CheckAccepting(role domain.JobRole) error {
	if !role.AcceptingApplications() {
		return validationWithTitle(MsgRoleClosedTitle, MsgRoleClosed)
	}
	return nil
}

func validationWithTitle(title, message string) error {
	return withTitle(apperrors.NewValidationError(message, nil), title)
}

func withTitle(err error, title string) error {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de.WithTitle(title)
	}
	return err
}
