package orderstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/clock"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/stream"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection holding one document per order.
const CollectionName = "orders"

var _ ports.OrderStore = (*MongoOrderStore)(nil)

// MongoOrderStore implements ports.OrderStore on a MongoDB collection.
type MongoOrderStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	clock      clock.Clock
	logger     *slog.Logger
}

func NewMongoOrderStore(client *mongo.Client, database string, clk clock.Clock, logger *slog.Logger) *MongoOrderStore {
	return &MongoOrderStore{
		client:     client,
		collection: client.Database(database).Collection(CollectionName),
		clock:      clock.NewMonotonic(clk, clock.WithResolution(time.Millisecond)),
		logger:     logger.With("component", "MongoOrderStore"),
	}
}

// EnsureIndexes creates the index backing the newest-first sort.
func (s *MongoOrderStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: fieldCreatedAt, Value: -1}, {Key: fieldID, Value: -1}},
	})
	return err
}

func (s *MongoOrderStore) Create(ctx context.Context, draft *order.Draft) (kernel.UUID, error) {
	if err := draft.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	id := kernel.NewUUID()
	doc, err := fromDraft(id, s.clock.Now(), draft)
	if err != nil {
		return kernel.UUID{}, err
	}

	if _, err = s.collection.InsertOne(ctx, doc); err != nil {
		return kernel.UUID{}, errs.NewStoreWriteError("create", err)
	}
	return id, nil
}

func (s *MongoOrderStore) ListByCreatedDesc(ctx context.Context) ([]*order.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: fieldCreatedAt, Value: -1}, {Key: fieldID, Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var docs []orderDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(docs))
	for _, doc := range docs {
		o, err := toDomain(doc)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", doc.ID, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// UpdateStatus sets one field with $set. The stored total is untouched.
func (s *MongoOrderStore) UpdateStatus(ctx context.Context, change order.StatusChange) error {
	if err := change.Validate(); err != nil {
		return err
	}

	field := fieldPaid
	if change.Field() == order.FieldDeliveryState {
		field = fieldDeliveryState
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{fieldID: change.OrderID().String()},
		bson.M{"$set": bson.M{field: change.Value()}},
	)
	if err != nil {
		return errs.NewStoreWriteError("update "+field, err)
	}
	if result.MatchedCount == 0 {
		return errs.NewObjectNotFoundError("order", change.OrderID().String())
	}
	return nil
}

func (s *MongoOrderStore) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{fieldID: id.String()})
	if err != nil {
		return errs.NewStoreWriteError("delete", err)
	}
	if result.DeletedCount == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// DeleteAll deletes inside a multi-document transaction and aborts unless every id
// matched.
func (s *MongoOrderStore) DeleteAll(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		raw = append(raw, id.String())
	}

	session, err := s.client.StartSession()
	if err != nil {
		return errs.NewStoreWriteError("delete all", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		result, err := s.collection.DeleteMany(sc, bson.M{fieldID: bson.M{"$in": raw}})
		if err != nil {
			return nil, err
		}
		if result.DeletedCount != int64(len(raw)) {
			return nil, fmt.Errorf("deleted %d of %d orders", result.DeletedCount, len(raw))
		}
		return nil, nil
	})
	if err != nil {
		return errs.NewStoreWriteError("delete all", err)
	}
	return nil
}

// Watch opens a change stream before reading the first snapshot, so no change made in
// between is missed. Events that are already buffered when one arrives are folded into
// the same snapshot.
func (s *MongoOrderStore) Watch(ctx context.Context, onChange func([]*order.Order)) (ports.Watch, error) {
	changes, err := s.collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, errs.NewSubscriptionError(err)
	}

	return stream.Start(ctx, func(ctx context.Context) error {
		defer func() {
			if err := changes.Close(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("failed to close change stream", "error", err)
			}
		}()

		deliver := func() error {
			snapshot, err := s.ListByCreatedDesc(ctx)
			if err != nil {
				return err
			}
			if ctx.Err() == nil {
				onChange(snapshot)
			}
			return nil
		}

		if err := deliver(); err != nil {
			return err
		}

		for changes.Next(ctx) {
			// events already buffered are covered by the snapshot below
			for changes.RemainingBatchLength() > 0 {
				if !changes.TryNext(ctx) {
					break
				}
			}
			if err := deliver(); err != nil {
				return err
			}
		}

		if err := changes.Err(); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
		return errors.New("change stream closed")
	}), nil
}
