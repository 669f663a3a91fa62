// Package features holds the process-wide opt-in feature switches.
package features

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/config"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// Known flag names.
const (
	JobApplications = "jobApplications"
	AddJobRole      = "addJobRole"
)

// Set is an immutable snapshot of feature switches taken at start-up.
type Set struct {
	flags map[string]bool
}

// NewSet copies the given flags into a Set.
func NewSet(flags map[string]bool) *Set {
	copied := make(map[string]bool, len(flags))
	for name, on := range flags {
		copied[name] = on
	}
	return &Set{flags: copied}
}

// FromConfig builds the Set from loaded configuration.
func FromConfig(cfg config.FeatureConfig) *Set {
	return NewSet(map[string]bool{
		JobApplications: cfg.JobApplications,
		AddJobRole:      cfg.AddJobRole,
	})
}

// IsEnabled reports whether the named feature is on. Unknown names are off.
func (s *Set) IsEnabled(name string) bool {
	if s == nil {
		return false
	}
	return s.flags[name]
}

// All returns a copy of every flag and its state.
func (s *Set) All() map[string]bool {
	out := make(map[string]bool)
	if s == nil {
		return out
	}
	for name, on := range s.flags {
		out[name] = on
	}
	return out
}

// Names returns the flag names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.All()))
	for name := range s.All() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Require short-circuits the route with 404 when the feature is off.
func (s *Set) Require(name, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.IsEnabled(name) {
			return apperrors.NewFeatureDisabled(message)
		}
		return c.Next()
	}
}
