package mailRepo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"gebedsrooster/models"
)

type firestoreMailRepo struct {
	coll *firestore.CollectionRef
}

// NewFirestoreMailRepo writes to the "mail" collection.
func NewFirestoreMailRepo(client *firestore.Client) MailRepository {
	return &firestoreMailRepo{coll: client.Collection("mail")}
}

func (r *firestoreMailRepo) Add(ctx context.Context, mail models.MailRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ref, _, err := r.coll.Add(ctx, mail)
	if err != nil {
		return "", fmt.Errorf("failed to queue mail %s: %w", mail.Message.MessageID, err)
	}
	return ref.ID, nil
}
