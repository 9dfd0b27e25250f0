package service

import (
	"context"
	"encoding/json"
	"maps"
	"strconv"
	"strings"

	"argynix-connect/internal/domain"

	"go.uber.org/zap"
)

// PermissionPrefix marks user attributes holding console permission flags.
const PermissionPrefix = "permission_"

type PermissionService struct {
	logger *zap.Logger
}

func NewPermissionService(logger *zap.Logger) *PermissionService {
	return &PermissionService{logger: logger}
}

// Get reads the user's flags.
func (s *PermissionService) Get(ctx context.Context, api AttributeAPI, userID string) (map[string]bool, error) {
	attrs, err := api.GetAttributes(ctx, domain.EntityTypeUser, userID, domain.ScopeServer, nil)
	if err != nil {
		return nil, err
	}
	flags := map[string]bool{}
	for _, a := range attrs {
		name, ok := strings.CutPrefix(a.Key, PermissionPrefix)
		if !ok || name == "" {
			continue
		}
		flags[name] = truthy(a.Value)
	}
	return flags, nil
}

// Set applies one flag optimistically. When the write fails the unchanged
// set comes back together with the error.
func (s *PermissionService) Set(ctx context.Context, api AttributeAPI, userID string, current map[string]bool, flag string, value bool) (map[string]bool, error) {
	if err := validate.Var(flag, "required,max=64,alphanum"); err != nil {
		return maps.Clone(current), &FormError{Fields: map[string]string{"flag": "must be alphanumeric"}}
	}

	next := maps.Clone(current)
	if next == nil {
		next = map[string]bool{}
	}
	next[flag] = value

	err := api.SaveAttributes(ctx, domain.EntityTypeUser, userID, domain.ScopeServer, map[string]any{PermissionPrefix + flag: value})
	if err != nil {
		s.logger.Warn("Permission update reverted",
			zap.String("user_id", userID),
			zap.String("flag", flag),
			zap.Error(err),
		)
		return maps.Clone(current), err
	}
	return next, nil
}

func truthy(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		v, _ := strconv.ParseBool(s)
		return v
	}
	return false
}
