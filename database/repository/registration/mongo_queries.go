// File: database/repository/registration/mongo_queries.go
package registrationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"gebedsrooster/models"
	"gebedsrooster/utils"
)

// PollInterval is how often Watch re-reads the collection without a notifier.
var PollInterval = 15 * time.Second

func (r *mongoRegistrationRepo) List(ctx context.Context) ([]models.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer cursor.Close(ctx)

	regs := []models.Registration{}
	if err := cursor.All(ctx, &regs); err != nil {
		return nil, fmt.Errorf("failed to decode registrations: %w", err)
	}
	return regs, nil
}

func (r *mongoRegistrationRepo) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var reg models.Registration
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&reg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch registration %s: %w", id, err)
	}
	return &reg, nil
}

// Watch re-lists the collection whenever the notifier fires, or on a fixed
// interval when there is none.
func (r *mongoRegistrationRepo) Watch(ctx context.Context) (<-chan []models.Registration, error) {
	initial, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var signals <-chan struct{}
	var ticker *time.Ticker
	if r.notifier != nil {
		signals = r.notifier.Subscribe(ctx)
	} else {
		ticker = time.NewTicker(PollInterval)
	}

	out := make(chan []models.Registration, 1)
	out <- initial

	go func() {
		defer close(out)
		if ticker != nil {
			defer ticker.Stop()
		}
		var ticks <-chan time.Time
		if ticker != nil {
			ticks = ticker.C
		}
		logger := utils.GetLogger()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
			case <-ticks:
			}
			regs, err := r.List(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error("failed to refresh registration snapshot", zap.Error(err))
				continue
			}
			if !pushLatest(ctx, out, regs) {
				return
			}
		}
	}()
	return out, nil
}
