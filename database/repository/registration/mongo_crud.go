// File: database/repository/registration/mongo_crud.go
package registrationRepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"gebedsrooster/models"
	"gebedsrooster/utils"
)

type mongoRegistrationRepo struct {
	coll     *mongo.Collection
	notifier ChangeNotifier
}

// NewMongoRegistrationRepo constructs a RegistrationRepository on the
// "registrations" collection. notifier may be nil, in which case Watch polls.
func NewMongoRegistrationRepo(db *mongo.Database, notifier ChangeNotifier) RegistrationRepository {
	return &mongoRegistrationRepo{
		coll:     db.Collection("registrations"),
		notifier: notifier,
	}
}

func (r *mongoRegistrationRepo) Add(ctx context.Context, reg models.Registration) (models.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if reg.ID == "" {
		reg.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, reg); err != nil {
		return models.Registration{}, fmt.Errorf("failed to add registration: %w", err)
	}
	r.changed(ctx)
	return reg, nil
}

// BatchAdd inserts in order and removes the already written documents when a
// later insert fails, so a batch never lands partially.
func (r *mongoRegistrationRepo) BatchAdd(ctx context.Context, regs []models.Registration) ([]models.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	out := make([]models.Registration, len(regs))
	docs := make([]interface{}, len(regs))
	ids := make([]string, len(regs))
	for i, reg := range regs {
		if reg.ID == "" {
			reg.ID = uuid.New().String()
		}
		out[i] = reg
		docs[i] = reg
		ids[i] = reg.ID
	}

	if _, err := r.coll.InsertMany(ctx, docs, &options.InsertManyOptions{Ordered: boolPtr(true)}); err != nil {
		rbCtx, rbCancel := rollbackContext()
		_, rbErr := r.coll.DeleteMany(rbCtx, bson.M{"id": bson.M{"$in": ids}})
		rbCancel()
		if rbErr != nil {
			utils.GetLogger().Error("failed to roll back partial registration batch",
				zap.Strings("ids", ids), zap.Error(rbErr))
		}
		return nil, fmt.Errorf("failed to insert registration batch: %w", err)
	}
	r.changed(ctx)
	return out, nil
}

func (r *mongoRegistrationRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete registration %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	r.changed(ctx)
	return nil
}

func (r *mongoRegistrationRepo) MarkReminded(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"needsReminder": false}})
	if err != nil {
		return fmt.Errorf("failed to clear reminder flag on %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	r.changed(ctx)
	return nil
}

func (r *mongoRegistrationRepo) changed(ctx context.Context) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Publish(ctx); err != nil {
		utils.GetLogger().Warn("failed to publish registration change", zap.Error(err))
	}
}

// rollbackContext is detached from the request, which may already be done,
// and bounded like every other store call.
func rollbackContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func boolPtr(b bool) *bool { return &b }
