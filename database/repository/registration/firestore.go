package registrationRepo

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gebedsrooster/models"
	"gebedsrooster/utils"
)

type firestoreRegistrationRepo struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
}

// NewFirestoreRegistrationRepo constructs a RegistrationRepository on the
// "registrations" collection.
func NewFirestoreRegistrationRepo(client *firestore.Client) RegistrationRepository {
	return &firestoreRegistrationRepo{
		client: client,
		coll:   client.Collection("registrations"),
	}
}

func (r *firestoreRegistrationRepo) ordered() firestore.Query {
	return r.coll.OrderBy("created", firestore.Asc)
}

func (r *firestoreRegistrationRepo) List(ctx context.Context) ([]models.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	docs, err := r.ordered().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return decodeAll(docs)
}

func (r *firestoreRegistrationRepo) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch registration %s: %w", id, err)
	}
	reg, err := decode(doc)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *firestoreRegistrationRepo) Add(ctx context.Context, reg models.Registration) (models.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	ref := r.coll.NewDoc()
	if _, err := ref.Create(ctx, reg); err != nil {
		return models.Registration{}, fmt.Errorf("failed to add registration: %w", err)
	}
	reg.ID = ref.ID
	return reg, nil
}

func (r *firestoreRegistrationRepo) BatchAdd(ctx context.Context, regs []models.Registration) ([]models.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	refs := make([]*firestore.DocumentRef, len(regs))
	for i := range regs {
		refs[i] = r.coll.NewDoc()
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for i := range regs {
			if err := tx.Create(refs[i], regs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit registration batch: %w", err)
	}

	out := make([]models.Registration, len(regs))
	for i, reg := range regs {
		reg.ID = refs[i].ID
		out[i] = reg
	}
	return out, nil
}

func (r *firestoreRegistrationRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.coll.Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete registration %s: %w", id, err)
	}
	return nil
}

func (r *firestoreRegistrationRepo) MarkReminded(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.Doc(id).Update(ctx, []firestore.Update{{Path: "needsReminder", Value: false}})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to clear reminder flag on %s: %w", id, err)
	}
	return nil
}

// Watch follows the realtime query snapshots of the collection.
func (r *firestoreRegistrationRepo) Watch(ctx context.Context) (<-chan []models.Registration, error) {
	it := r.ordered().Snapshots(ctx)
	out := make(chan []models.Registration, 1)

	go func() {
		defer close(out)
		defer it.Stop()
		logger := utils.GetLogger()

		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					logger.Error("registration snapshot listener stopped", zap.Error(err))
				}
				return
			}
			docs, err := snap.Documents.GetAll()
			if err != nil {
				logger.Error("failed to read registration snapshot", zap.Error(err))
				continue
			}
			regs, err := decodeAll(docs)
			if err != nil {
				logger.Error("failed to decode registration snapshot", zap.Error(err))
				continue
			}
			if !pushLatest(ctx, out, regs) {
				return
			}
		}
	}()
	return out, nil
}

func decode(doc *firestore.DocumentSnapshot) (models.Registration, error) {
	var reg models.Registration
	if err := doc.DataTo(&reg); err != nil {
		return reg, fmt.Errorf("failed to decode registration %s: %w", doc.Ref.ID, err)
	}
	reg.ID = doc.Ref.ID
	return reg, nil
}

func decodeAll(docs []*firestore.DocumentSnapshot) ([]models.Registration, error) {
	regs := make([]models.Registration, 0, len(docs))
	for _, doc := range docs {
		reg, err := decode(doc)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, nil
}
