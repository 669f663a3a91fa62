package form

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/job-portal/internal/domain"
)

// ISOLayout matches JavaScript's Date.prototype.toISOString.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Validator enforces the shared schema on submitted forms.
type Validator struct {
	validate *validator.Validate
	schema   Schema
	now      func() time.Time
}

// NewValidator builds a validator over JobRoleSchema. now may be nil.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{validate: validator.New(), schema: JobRoleSchema, now: now}
	_ = v.validate.RegisterValidation("future_date", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return t.After(startOfDay(v.now()))
	})
	return v
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseCreateJobRole converts raw form strings into a CreateJobRoleRequest.
// Numeric fields that do not parse are reported as field errors; they are
// never coerced to zero.
func (v *Validator) ParseCreateJobRole(values url.Values) (domain.CreateJobRoleRequest, error) {
	errs := FieldErrors{}
	var req domain.CreateJobRoleRequest

	req.RoleName = strings.TrimSpace(values.Get("roleName"))
	v.check(errs, "roleName", req.RoleName)

	if n, ok := v.parseInt(errs, "capabilityId", values.Get("capabilityId")); ok {
		req.CapabilityID = n
		v.check(errs, "capabilityId", n)
	}
	if n, ok := v.parseInt(errs, "bandId", values.Get("bandId")); ok {
		req.BandID = n
		v.check(errs, "bandId", n)
	}

	req.Description = strings.TrimSpace(values.Get("description"))
	v.check(errs, "description", req.Description)

	req.Responsibilities = strings.TrimSpace(values.Get("responsibilities"))
	v.check(errs, "responsibilities", req.Responsibilities)

	req.JobSpecLink = strings.TrimSpace(values.Get("jobSpecLink"))
	v.check(errs, "jobSpecLink", req.JobSpecLink)

	if n, ok := v.parseInt(errs, "openPositions", values.Get("openPositions")); ok {
		req.OpenPositions = n
		v.check(errs, "openPositions", n)
	}

	if ids, ok := v.parseIntList(errs, "locationIds", values["locationIds"]); ok {
		req.LocationIDs = ids
		v.check(errs, "locationIds", ids)
	}

	if closing, ok := v.parseDate(errs, "closingDate", values.Get("closingDate")); ok {
		if v.check(errs, "closingDate", closing) {
			req.ClosingDate = closing.UTC().Format(ISOLayout)
		}
	}

	if len(errs) > 0 {
		return req, errs
	}
	return req, nil
}

// ValidateLogin checks the login form.
func (v *Validator) ValidateLogin(email, password string) error {
	errs := FieldErrors{}
	if err := v.validate.Var(strings.TrimSpace(email), "required,email"); err != nil {
		errs["email"] = "Please enter a valid email address"
	}
	if err := v.validate.Var(password, "required"); err != nil {
		errs["password"] = "Please enter your password"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *Validator) check(errs FieldErrors, name string, value any) bool {
	rule, ok := v.schema.Field(name)
	if !ok {
		return true
	}
	err := v.validate.Var(value, rule.Tag())
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		errs[name] = rule.Message(messageKey(verrs[0].Tag()))
	} else {
		errs[name] = rule.Message(MsgFormat)
	}
	return false
}

func messageKey(tag string) string {
	switch tag {
	case "required":
		return MsgRequired
	case "min", "gt":
		return MsgMin
	case "max":
		return MsgMax
	case "url":
		return MsgFormat
	case "startswith":
		return MsgPrefix
	case "future_date":
		return MsgFuture
	default:
		return MsgFormat
	}
}

func (v *Validator) parseInt(errs FieldErrors, name, raw string) (int, bool) {
	rule, _ := v.schema.Field(name)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		errs[name] = rule.Message(MsgRequired)
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs[name] = rule.Message(MsgFormat)
		return 0, false
	}
	return n, true
}

func (v *Validator) parseIntList(errs FieldErrors, name string, raws []string) ([]int, bool) {
	rule, _ := v.schema.Field(name)
	ids := make([]int, 0, len(raws))
	for _, raw := range raws {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs[name] = rule.Message(MsgFormat)
			return nil, false
		}
		ids = append(ids, n)
	}
	return ids, true
}

func (v *Validator) parseDate(errs FieldErrors, name, raw string) (time.Time, bool) {
	rule, _ := v.schema.Field(name)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		errs[name] = rule.Message(MsgRequired)
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.UTC); err == nil {
		return t, true
	}
	errs[name] = rule.Message(MsgFormat)
	return time.Time{}, false
}
