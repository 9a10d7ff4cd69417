// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/autoatlas-mx/autoatlas/internal/app/store/users"
	"github.com/autoatlas-mx/autoatlas/internal/app/system/normalize"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after the backends are connected
// and the schema is ensured. If admin_email is set and that account
// already exists, it is promoted to admin; identity is delegated, so an
// account that has never signed in cannot be created here and gets
// promoted on a later restart instead.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" {
		return nil
	}

	users := userstore.New(deps.MongoDatabase)
	email := normalize.Email(appCfg.AdminEmail)

	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		logger.Info("admin account has not signed in yet, skipping promotion",
			zap.String("email", email))
		return nil
	}
	if u.Role == models.RoleAdmin {
		return nil
	}

	if err := users.SetRole(ctx, u.ID, models.RoleAdmin); err != nil {
		logger.Error("failed to promote admin account", zap.Error(err),
			zap.String("email", email))
		return err
	}
	logger.Info("promoted account to admin",
		zap.String("email", email),
		zap.String("user_id", u.ID.Hex()))
	return nil
}
