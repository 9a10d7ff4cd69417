// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// DBDeps holds the two backend handles: the document store that owns the
// marketplace content and the relational vehicle catalog.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	CatalogDB     *gorm.DB
}
