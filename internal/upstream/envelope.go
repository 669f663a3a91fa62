package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spec-kit/job-portal/internal/domain"
)

func decodeJobRoleList(raw json.RawMessage) (*domain.JobRoleList, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var roles []domain.JobRole
		if err := json.Unmarshal(raw, &roles); err != nil {
			return nil, fmt.Errorf("decode job roles: %w", err)
		}
		return &domain.JobRoleList{JobRoles: roles}, nil
	}

	var list domain.JobRoleList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode job roles envelope: %w", err)
	}
	list.Enveloped = true
	if list.JobRoles == nil {
		list.JobRoles = []domain.JobRole{}
	}
	return &list, nil
}

func decodeJobRoleDetail(raw json.RawMessage) (*domain.JobRoleDetail, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode job role: %w", err)
	}

	if inner, ok := fields["jobRole"]; ok {
		var detail domain.JobRoleDetail
		if err := json.Unmarshal(inner, &detail.JobRole); err != nil {
			return nil, fmt.Errorf("decode job role envelope: %w", err)
		}
		if flag, ok := fields["canDelete"]; ok {
			_ = json.Unmarshal(flag, &detail.CanDelete)
		}
		detail.Enveloped = true
		return &detail, nil
	}

	var role domain.JobRole
	if err := json.Unmarshal(raw, &role); err != nil {
		return nil, fmt.Errorf("decode job role: %w", err)
	}
	return &domain.JobRoleDetail{JobRole: role}, nil
}
