package domain

import (
	"encoding/json"
	"io"
)

// JobRoleStatus mirrors the backend's open/closed marker.
type JobRoleStatus string

const (
	JobRoleStatusOpen   JobRoleStatus = "Open"
	JobRoleStatusClosed JobRoleStatus = "Closed"
)

// JobRole is the backend's job role representation.
type JobRole struct {
	JobRoleID        int           `json:"jobRoleId"`
	RoleName         string        `json:"roleName"`
	Location         string        `json:"location"`
	Capability       string        `json:"capability"`
	Band             string        `json:"band"`
	ClosingDate      string        `json:"closingDate"`
	Description      string        `json:"description,omitempty"`
	Responsibilities string        `json:"responsibilities,omitempty"`
	JobSpecLink      string        `json:"jobSpecLink,omitempty"`
	OpenPositions    int           `json:"openPositions,omitempty"`
	Status           JobRoleStatus `json:"status,omitempty"`
}

// AcceptingApplications reports whether applicants may still apply. Roles the
// backend sends without a status count as open.
func (r JobRole) AcceptingApplications() bool {
	return r.Status == "" || r.Status == JobRoleStatusOpen
}

// IsClosed reports whether the backend marked the role closed.
func (r JobRole) IsClosed() bool {
	return r.Status == JobRoleStatusClosed
}

// JobRoleList is the canonical list envelope.
type JobRoleList struct {
	CanDelete bool      `json:"canDelete"`
	JobRoles  []JobRole `json:"jobRoles"`
	// Enveloped is false when the backend answered with a bare array.
	Enveloped bool `json:"-"`
}

// JobRoleDetail is the canonical single-role envelope.
type JobRoleDetail struct {
	CanDelete bool    `json:"canDelete"`
	JobRole   JobRole `json:"jobRole"`
	Enveloped bool    `json:"-"`
}

// CreateJobRoleRequest is the payload accepted by POST /api/job-roles.
type CreateJobRoleRequest struct {
	RoleName         string `json:"roleName"`
	CapabilityID     int    `json:"capabilityId"`
	BandID           int    `json:"bandId"`
	Description      string `json:"description"`
	Responsibilities string `json:"responsibilities"`
	JobSpecLink      string `json:"jobSpecLink"`
	OpenPositions    int    `json:"openPositions"`
	LocationIDs      []int  `json:"locationIds"`
	ClosingDate      string `json:"closingDate"`
}

// Band is a seniority band.
type Band struct {
	BandID   int    `json:"bandId"`
	BandName string `json:"bandName"`
}

// Capability is a job family.
type Capability struct {
	CapabilityID   int    `json:"capabilityId"`
	CapabilityName string `json:"capabilityName"`
}

// Location is an office location.
type Location struct {
	LocationID   int    `json:"locationId"`
	LocationName string `json:"locationName"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

// ReferenceData bundles the dropdown sources for the add-role form.
type ReferenceData struct {
	Bands        []Band
	Capabilities []Capability
	Locations    []Location
}

// ApplicationReceipt is returned by POST /api/applications.
type ApplicationReceipt struct {
	Message     string          `json:"message"`
	Application json.RawMessage `json:"application"`
}

// CVUpload describes an uploaded CV file before it is forwarded.
type CVUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}
