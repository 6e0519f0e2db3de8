package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftline/payroll-backend-go/internal/domain/tenant"
)

type SettingsServiceImpl struct {
	settingsRepo tenant.SettingsRepository
}

func NewSettingsService(settingsRepo tenant.SettingsRepository) tenant.SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

func getClaimsFromContext(ctx context.Context) (tenantID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	tenantID, ok := claims["tenant_id"].(string)
	if !ok || tenantID == "" {
		return "", fmt.Errorf("tenant_id claim is missing or invalid")
	}

	return tenantID, nil
}

func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (tenant.SettingsResponse, error) {
	tenantID, err := getClaimsFromContext(ctx)
	if err != nil {
		return tenant.SettingsResponse{}, err
	}

	settings, err := s.settingsRepo.GetSettings(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrSettingsNotFound) {
			return mapToSettingsResponse(tenant.DefaultSettings(tenantID)), nil
		}
		return tenant.SettingsResponse{}, err
	}

	return mapToSettingsResponse(settings), nil
}

func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req tenant.UpdateSettingsRequest) (tenant.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return tenant.SettingsResponse{}, err
	}

	tenantID, err := getClaimsFromContext(ctx)
	if err != nil {
		return tenant.SettingsResponse{}, err
	}

	current, err := s.settingsRepo.GetSettings(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, tenant.ErrSettingsNotFound) {
			return tenant.SettingsResponse{}, err
		}
		current = tenant.DefaultSettings(tenantID)
	}

	if req.Timezone != nil {
		current.Timezone = *req.Timezone
	}
	if req.WeeklyOvertimeThresholdMinutes != nil {
		current.WeeklyOvertimeThresholdMinutes = *req.WeeklyOvertimeThresholdMinutes
	}
	if req.DefaultOvertimeMultiplier != nil {
		current.DefaultOvertimeMultiplier = *req.DefaultOvertimeMultiplier
	}
	if req.FinalizeExceptionLimit != nil {
		current.FinalizeExceptionLimit = req.FinalizeExceptionLimit
	}

	updated, err := s.settingsRepo.UpsertSettings(ctx, current)
	if err != nil {
		return tenant.SettingsResponse{}, err
	}

	return mapToSettingsResponse(updated), nil
}

func mapToSettingsResponse(s tenant.Settings) tenant.SettingsResponse {
	return tenant.SettingsResponse{
		TenantID:                       s.TenantID,
		Timezone:                       s.Timezone,
		WeeklyOvertimeThresholdMinutes: s.WeeklyOvertimeThresholdMinutes,
		DefaultOvertimeMultiplier:      s.DefaultOvertimeMultiplier.String(),
		FinalizeExceptionLimit:         s.FinalizeExceptionLimit,
	}
}
