// Package form holds the job role form schema shared by the server-side
// validator and the browser's pre-submit checks.
package form

import (
	"fmt"
	"sort"
	"strings"
)

// FieldKind is how a raw form string is interpreted.
type FieldKind string

const (
	KindText    FieldKind = "text"
	KindInt     FieldKind = "int"
	KindIntList FieldKind = "intList"
	KindURL     FieldKind = "url"
	KindDate    FieldKind = "date"
)

// Message keys used in FieldRule.Messages.
const (
	MsgRequired = "required"
	MsgMin      = "min"
	MsgMax      = "max"
	MsgFormat   = "format"
	MsgPrefix   = "prefix"
	MsgFuture   = "future"
)

// SharePointPrefix is the only accepted host for job specification links.
const SharePointPrefix = "https://kainossoftwareltd.sharepoint.com"

// FieldRule describes one form field. The same value is served to the
// browser as JSON and compiled into validator tags on the server.
type FieldRule struct {
	Name     string            `json:"name"`
	Label    string            `json:"label"`
	Kind     FieldKind         `json:"kind"`
	Min      int               `json:"min,omitempty"`
	Max      int               `json:"max,omitempty"`
	Prefix   string            `json:"prefix,omitempty"`
	Messages map[string]string `json:"messages"`
}

// Tag compiles the rule into a go-playground/validator tag.
func (r FieldRule) Tag() string {
	var parts []string
	switch r.Kind {
	case KindText:
		parts = append(parts, "required")
		if r.Min > 0 {
			parts = append(parts, fmt.Sprintf("min=%d", r.Min))
		}
		if r.Max > 0 {
			parts = append(parts, fmt.Sprintf("max=%d", r.Max))
		}
	case KindInt:
		if r.Min > 0 {
			parts = append(parts, fmt.Sprintf("min=%d", r.Min))
		} else {
			parts = append(parts, "gt=0")
		}
		if r.Max > 0 {
			parts = append(parts, fmt.Sprintf("max=%d", r.Max))
		}
	case KindIntList:
		parts = append(parts, fmt.Sprintf("min=%d", max(r.Min, 1)), "dive", "gt=0")
	case KindURL:
		parts = append(parts, "required", "url")
		if r.Prefix != "" {
			parts = append(parts, "startswith="+r.Prefix)
		}
	case KindDate:
		parts = append(parts, "future_date")
	}
	return strings.Join(parts, ",")
}

// Message returns the user-facing text for a failed rule.
func (r FieldRule) Message(key string) string {
	if msg, ok := r.Messages[key]; ok {
		return msg
	}
	if msg, ok := r.Messages[MsgRequired]; ok {
		return msg
	}
	return r.Label + " is invalid"
}

// Schema is an ordered set of field rules.
type Schema struct {
	Fields []FieldRule `json:"fields"`
}

// Field looks up a rule by name.
func (s Schema) Field(name string) (FieldRule, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldRule{}, false
}

// JobRoleSchema is the single source of truth for the add-role form.
var JobRoleSchema = Schema{Fields: []FieldRule{
	{
		Name: "roleName", Label: "Role name", Kind: KindText, Min: 3, Max: 100,
		Messages: map[string]string{
			MsgRequired: "Role name must be at least 3 characters",
			MsgMin:      "Role name must be at least 3 characters",
			MsgMax:      "Role name cannot exceed 100 characters",
		},
	},
	{
		Name: "capabilityId", Label: "Capability", Kind: KindInt,
		Messages: map[string]string{MsgRequired: "Please select a capability"},
	},
	{
		Name: "bandId", Label: "Band", Kind: KindInt,
		Messages: map[string]string{MsgRequired: "Please select a band"},
	},
	{
		Name: "description", Label: "Summary", Kind: KindText, Min: 10, Max: 500,
		Messages: map[string]string{
			MsgRequired: "Summary must be at least 10 characters",
			MsgMin:      "Summary must be at least 10 characters",
			MsgMax:      "Summary cannot exceed 500 characters",
		},
	},
	{
		Name: "responsibilities", Label: "Responsibilities", Kind: KindText, Min: 10, Max: 1000,
		Messages: map[string]string{
			MsgRequired: "Responsibilities must be at least 10 characters",
			MsgMin:      "Responsibilities must be at least 10 characters",
			MsgMax:      "Responsibilities cannot exceed 1000 characters",
		},
	},
	{
		Name: "jobSpecLink", Label: "Job specification link", Kind: KindURL, Prefix: SharePointPrefix,
		Messages: map[string]string{
			MsgRequired: "Must be a valid URL",
			MsgFormat:   "Must be a valid URL",
			MsgPrefix:   "Must be a valid Kainos SharePoint link",
		},
	},
	{
		Name: "openPositions", Label: "Open positions", Kind: KindInt, Min: 1, Max: 100,
		Messages: map[string]string{
			MsgRequired: "Must have at least 1 open position",
			MsgFormat:   "Open positions must be a whole number",
			MsgMin:      "Must have at least 1 open position",
			MsgMax:      "Cannot exceed 100 open positions",
		},
	},
	{
		Name: "locationIds", Label: "Location", Kind: KindIntList, Min: 1,
		Messages: map[string]string{MsgRequired: "Please select at least one location"},
	},
	{
		Name: "closingDate", Label: "Closing date", Kind: KindDate,
		Messages: map[string]string{
			MsgRequired: "Please enter a valid closing date",
			MsgFormat:   "Please enter a valid closing date",
			MsgFuture:   "Closing date must be in the future",
		},
	},
}}

// FieldErrors maps a field name to its first failure message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Details converts the errors for DomainError.Details.
func (fe FieldErrors) Details() map[string]any {
	out := make(map[string]any, len(fe))
	for k, v := range fe {
		out[k] = v
	}
	return out
}
