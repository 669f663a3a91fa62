package form

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func validValues() url.Values {
	return url.Values{
		"roleName":         {"Software Engineer"},
		"capabilityId":     {"2"},
		"bandId":           {"3"},
		"description":      {"Build and ship great software."},
		"responsibilities": {"Write code, review code, mentor others."},
		"jobSpecLink":      {SharePointPrefix + "/sites/jobs/spec.pdf"},
		"openPositions":    {"4"},
		"locationIds":      {"1", "2"},
		"closingDate":      {"2026-12-01"},
	}
}

func TestParseCreateJobRole_RoundTrip(t *testing.T) {
	v := NewValidator(func() time.Time { return fixedNow })

	req, err := v.ParseCreateJobRole(validValues())
	require.NoError(t, err)

	assert.Equal(t, "Software Engineer", req.RoleName)
	assert.Equal(t, 2, req.CapabilityID)
	assert.Equal(t, 3, req.BandID)
	assert.Equal(t, 4, req.OpenPositions)
	assert.Equal(t, []int{1, 2}, req.LocationIDs)
	assert.Equal(t, "2026-12-01T00:00:00.000Z", req.ClosingDate)

	payload, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"capabilityId":2`)
	assert.Contains(t, string(payload), `"locationIds":[1,2]`)
}

func TestParseCreateJobRole_SingleLocationAndRFC3339(t *testing.T) {
	v := NewValidator(func() time.Time { return fixedNow })
	values := validValues()
	values["locationIds"] = []string{"5"}
	values.Set("closingDate", "2027-01-15T09:30:00+01:00")

	req, err := v.ParseCreateJobRole(values)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, req.LocationIDs)
	assert.Equal(t, "2027-01-15T08:30:00.000Z", req.ClosingDate)
}

func TestParseCreateJobRole_MalformedNumbersAreFieldErrors(t *testing.T) {
	v := NewValidator(func() time.Time { return fixedNow })
	values := validValues()
	values.Set("capabilityId", "abc")
	values.Set("openPositions", "3.5")
	values["locationIds"] = []string{"1", "x"}

	_, err := v.ParseCreateJobRole(values)
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Please select a capability", fe["capabilityId"])
	assert.Equal(t, "Open positions must be a whole number", fe["openPositions"])
	assert.Equal(t, "Please select at least one location", fe["locationIds"])
	assert.NotContains(t, fe, "bandId")
}

func TestParseCreateJobRole_RuleViolations(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value []string
		want  string
	}{
		{"short role name", "roleName", []string{"ab"}, "Role name must be at least 3 characters"},
		{"long role name", "roleName", []string{strings.Repeat("a", 101)}, "Role name cannot exceed 100 characters"},
		{"missing band", "bandId", []string{""}, "Please select a band"},
		{"zero capability", "capabilityId", []string{"0"}, "Please select a capability"},
		{"short summary", "description", []string{"too short"}, "Summary must be at least 10 characters"},
		{"long responsibilities", "responsibilities", []string{strings.Repeat("r", 1001)}, "Responsibilities cannot exceed 1000 characters"},
		{"not a url", "jobSpecLink", []string{"not a url"}, "Must be a valid URL"},
		{"foreign link", "jobSpecLink", []string{"https://example.com/spec"}, "Must be a valid Kainos SharePoint link"},
		{"no positions", "openPositions", []string{"0"}, "Must have at least 1 open position"},
		{"too many positions", "openPositions", []string{"101"}, "Cannot exceed 100 open positions"},
		{"no location", "locationIds", nil, "Please select at least one location"},
		{"negative location", "locationIds", []string{"-1"}, "Please select at least one location"},
		{"closing today", "closingDate", []string{"2026-10-17"}, "Closing date must be in the future"},
		{"closing past", "closingDate", []string{"2020-01-01"}, "Closing date must be in the future"},
		{"closing garbage", "closingDate", []string{"next week"}, "Please enter a valid closing date"},
	}

	v := NewValidator(func() time.Time { return fixedNow })
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := validValues()
			values[tc.field] = tc.value

			_, err := v.ParseCreateJobRole(values)
			var fe FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.want, fe[tc.field])
			assert.Len(t, fe, 1)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	v := NewValidator(nil)

	assert.NoError(t, v.ValidateLogin("a@x.com", "secret"))

	err := v.ValidateLogin("not-an-email", "")
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "email")
	assert.Contains(t, fe, "password")
}

func TestSchema_TagsAndJSON(t *testing.T) {
	rule, ok := JobRoleSchema.Field("roleName")
	require.True(t, ok)
	assert.Equal(t, "required,min=3,max=100", rule.Tag())

	rule, _ = JobRoleSchema.Field("locationIds")
	assert.Equal(t, "min=1,dive,gt=0", rule.Tag())

	rule, _ = JobRoleSchema.Field("jobSpecLink")
	assert.Equal(t, "required,url,startswith="+SharePointPrefix, rule.Tag())

	payload, err := json.Marshal(JobRoleSchema)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"name":"openPositions"`)
	assert.Contains(t, string(payload), `"max":100`)
}
