package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

const departmentsCollection = "departments"

// EnsureDepartments upserts the seed departments. Departments are read-only
// at runtime; only the seeder writes them.
func EnsureDepartments(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(departmentsCollection)
	for _, dept := range domain.SeedDepartments() {
		filter := bson.M{"_id": dept.ID}
		update := bson.M{"$set": bson.M{"name": dept.Name}}
		if _, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("ensure department %q: %w", dept.Name, err)
		}
	}
	return nil
}
