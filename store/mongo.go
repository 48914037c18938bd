package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sarthakkanade/campus-events-go/models"
)

// casAttempts bounds the optimistic-concurrency retry loop.
const casAttempts = 8

type MongoEventStore struct {
	col *mongo.Collection
}

func NewMongoEventStore(db *mongo.Database) *MongoEventStore {
	return &MongoEventStore{col: db.Collection("events")}
}

func (s *MongoEventStore) Insert(ctx context.Context, ev *models.Event) error {
	if ev.ID.IsZero() {
		ev.ID = primitive.NewObjectID()
	}
	now := time.Now()
	ev.Version = 1
	ev.CreatedAt = now
	ev.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, ev)
	return err
}

func (s *MongoEventStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var ev models.Event
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Update applies fn inside a compare-and-swap loop on the version field.
// The replacement only lands if nobody else wrote the document since our
// read; on a miss we reload and try again. A mutator error aborts with no
// write at all.
func (s *MongoEventStore) Update(ctx context.Context, id primitive.ObjectID, fn Mutate) (*models.Event, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		ev, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		prev := ev.Version
		if err := fn(ev); err != nil {
			return nil, err
		}

		ev.Version = prev + 1
		ev.UpdatedAt = time.Now()

		res, err := s.col.ReplaceOne(ctx, bson.M{"_id": id, "version": prev}, ev)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 1 {
			return ev, nil
		}
		// Lost the race, reload and retry.
	}
	return nil, ErrContention
}

func (s *MongoEventStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoEventStore) ListByStatus(ctx context.Context, statuses ...models.EventStatus) ([]*models.Event, error) {
	return s.list(ctx, bson.M{"status": bson.M{"$in": statuses}})
}

func (s *MongoEventStore) ListByOrganizer(ctx context.Context, organizerID primitive.ObjectID) ([]*models.Event, error) {
	return s.list(ctx, bson.M{"organizer": organizerID})
}

func (s *MongoEventStore) ListByAttendee(ctx context.Context, userID primitive.ObjectID) ([]*models.Event, error) {
	return s.list(ctx, bson.M{"attendees.user": userID})
}

func (s *MongoEventStore) list(ctx context.Context, filter bson.M) ([]*models.Event, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	events := []*models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection("users")}
}

func (s *MongoUserStore) Insert(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, u)
	return err
}

func (s *MongoUserStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.one(ctx, bson.M{"_id": id})
}

func (s *MongoUserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.one(ctx, bson.M{"email": email})
}

func (s *MongoUserStore) one(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Search matches students and organizers by name or email. Admin accounts
// are never listed.
func (s *MongoUserStore) Search(ctx context.Context, q string) ([]*models.User, error) {
	filter := bson.M{
		"role": bson.M{"$in": []models.Role{models.RoleStudent, models.RoleOrganizer}},
		"$or": []bson.M{
			{"name": bson.M{"$regex": q, "$options": "i"}},
			{"email": bson.M{"$regex": q, "$options": "i"}},
		},
	}
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	users := []*models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, fn func(*models.User)) (*models.User, error) {
	u, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(u)
	u.UpdatedAt = time.Now()
	if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, u); err != nil {
		return nil, err
	}
	return u, nil
}
