// Package mongostore implements the announcement and admin stores on a
// hosted MongoDB deployment.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/joestump/noticeboard/internal/store"
)

const (
	AnnouncementsCollection = "announcements"
	AdminsCollection        = "admins"
)

// Connect opens a client for uri and pings the primary before returning.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Println("connected to MongoDB")
	return client, nil
}

// EnsureIndexes creates the unique email index on admins and the ordering
// index on announcements. Safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(AdminsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create admins email index: %w", err)
	}
	_, err = db.Collection(AnnouncementsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create announcements order index: %w", err)
	}
	return nil
}

type announcementDoc struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Message   string    `bson:"message"`
	Type      string    `bson:"type"`
	CreatedAt time.Time `bson:"created_at"`
}

type adminDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

// AnnouncementStore implements store.AnnouncementStore on a Mongo collection.
type AnnouncementStore struct {
	collection *mongo.Collection
}

// NewAnnouncementStore wraps the given collection.
func NewAnnouncementStore(collection *mongo.Collection) *AnnouncementStore {
	return &AnnouncementStore{collection: collection}
}

// ListAll returns every announcement, newest first.
func (s *AnnouncementStore) ListAll(ctx context.Context) ([]*store.Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer cur.Close(ctx)

	var docs []announcementDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode announcements: %w", err)
	}

	items := make([]*store.Announcement, 0, len(docs))
	for _, d := range docs {
		typ := d.Type
		if typ == "" {
			typ = store.DefaultType
		}
		items = append(items, &store.Announcement{
			ID:        d.ID,
			Title:     d.Title,
			Message:   d.Message,
			Type:      typ,
			CreatedAt: d.CreatedAt.UTC(),
		})
	}
	return items, nil
}

// Insert stores a new announcement and returns the stored record.
func (s *AnnouncementStore) Insert(ctx context.Context, title, message, typ string) (*store.Announcement, error) {
	a, err := store.NewAnnouncement(title, message, typ)
	if err != nil {
		return nil, fmt.Errorf("new announcement: %w", err)
	}
	_, err = s.collection.InsertOne(ctx, announcementDoc{
		ID:        a.ID,
		Title:     a.Title,
		Message:   a.Message,
		Type:      a.Type,
		CreatedAt: a.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert announcement: %w", err)
	}
	return a, nil
}

// DeleteByID removes the announcement with the given id and reports whether one was removed.
func (s *AnnouncementStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete announcement: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// AdminStore implements store.AdminStore on a Mongo collection.
type AdminStore struct {
	collection *mongo.Collection
}

// NewAdminStore wraps the given collection.
func NewAdminStore(collection *mongo.Collection) *AdminStore {
	return &AdminStore{collection: collection}
}

// Create inserts a new admin. The unique email index turns a duplicate into store.ErrDuplicateAdmin.
func (s *AdminStore) Create(ctx context.Context, email, passwordHash string) (*store.Admin, error) {
	a := store.NewAdmin(email, passwordHash)
	_, err := s.collection.InsertOne(ctx, adminDoc{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return nil, store.ErrDuplicateAdmin
	}
	if err != nil {
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return a, nil
}

// GetByEmail returns the admin matching email, or store.ErrNotFound.
func (s *AdminStore) GetByEmail(ctx context.Context, email string) (*store.Admin, error) {
	var d adminDoc
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &store.Admin{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
	}, nil
}

// UpdatePasswordHash replaces the stored hash for the admin with the given id.
func (s *AdminStore) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": passwordHash}},
	)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
