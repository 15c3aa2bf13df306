// FILE: database/repository/registration/indexes.go
package registrationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexEnsurer is implemented by backends that need indexes created at startup.
type IndexEnsurer interface {
	EnsureIndexes() error
}

// EnsureIndexes creates the necessary indexes on the registrations collection.
func (r *mongoRegistrationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// List order
		{
			Keys:    bson.D{{Key: "created", Value: 1}},
			Options: options.Index().SetName("created_idx"),
		},
		// Reminder sweep
		{
			Keys:    bson.D{{Key: "needsReminder", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("reminder_date_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create registration indexes: %w", err)
	}
	return nil
}
