package tenant

import "context"

type SettingsRepository interface {
	GetSettings(ctx context.Context, tenantID string) (Settings, error)
	UpsertSettings(ctx context.Context, settings Settings) (Settings, error)
}
