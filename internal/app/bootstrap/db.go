// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/autoatlas-mx/autoatlas/internal/app/system/indexes"
	"github.com/autoatlas-mx/autoatlas/internal/catalog"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB establishes both backend connections: MongoDB for the
// marketplace content and Postgres for the vehicle catalog.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	if coreCfg.Env == "dev" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}
	catalogDB, err := gorm.Open(postgres.Open(appCfg.PostgresDSN), gormCfg)
	if err != nil {
		return DBDeps{}, fmt.Errorf("catalog connect: %w", err)
	}
	sqlDB, err := catalogDB.DB()
	if err != nil {
		return DBDeps{}, fmt.Errorf("catalog pool: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return DBDeps{}, fmt.Errorf("catalog ping: %w", err)
	}
	logger.Info("connected to catalog database")

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		CatalogDB:     catalogDB,
	}, nil
}

// EnsureSchema creates the Mongo indexes and, for dev and test
// environments without the upstream importer, the catalog tables.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Info("MongoDB indexes ensured")

	if err := catalog.NewService(deps.CatalogDB).Migrate(); err != nil {
		return fmt.Errorf("catalog migrate: %w", err)
	}
	logger.Info("catalog schema ensured")
	return nil
}
