package mailRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"gebedsrooster/models"
)

type mongoMailRepo struct {
	coll *mongo.Collection
}

func NewMongoMailRepo(db *mongo.Database) MailRepository {
	return &mongoMailRepo{coll: db.Collection("mail")}
}

func (r *mongoMailRepo) Add(ctx context.Context, mail models.MailRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if mail.ID == "" {
		mail.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, mail); err != nil {
		return "", fmt.Errorf("failed to queue mail %s: %w", mail.Message.MessageID, err)
	}
	return mail.ID, nil
}
