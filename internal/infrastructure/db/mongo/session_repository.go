package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/memberhub/membership-api/internal/core/domain"
)

const (
	userSessionsCollection  = "user_sessions"
	adminSessionsCollection = "admin_sessions"
)

// MongoSessionRepository stores sessions in two collections, one per kind.
// Tokens are unique within a collection (unique index on session_token).
type MongoSessionRepository struct {
	userSessions  *mongo.Collection
	adminSessions *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{
		userSessions:  db.Collection(userSessionsCollection),
		adminSessions: db.Collection(adminSessionsCollection),
	}
}

// EnsureIndexes creates the unique token index on both partitions. Called
// once at startup.
func (r *MongoSessionRepository) EnsureIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "session_token", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []*mongo.Collection{r.userSessions, r.adminSessions} {
		if _, err := coll.Indexes().CreateOne(ctx, index); err != nil {
			return fmt.Errorf("session index on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

type mongoSession struct {
	PrincipalID string `bson:"principal_id"`
	Token       string `bson:"session_token"`
	ExpiresAt   int64  `bson:"expires_at"`
}

func (r *MongoSessionRepository) Insert(ctx context.Context, session *domain.Session) error {
	doc := mongoSession{
		PrincipalID: session.PrincipalID,
		Token:       session.Token,
		ExpiresAt:   session.ExpiresAt.Unix(),
	}
	if _, err := r.partition(session.Kind).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) Find(ctx context.Context, token string, kind domain.Kind) (*domain.Session, error) {
	var ms mongoSession
	err := r.partition(kind).FindOne(ctx, bson.M{"session_token": token}).Decode(&ms)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &domain.Session{
		Token:       ms.Token,
		PrincipalID: ms.PrincipalID,
		Kind:        kind,
		ExpiresAt:   unixToTime(ms.ExpiresAt),
	}, nil
}

// Delete removes the row if it exists. Deleting an absent token is a no-op so
// concurrent evictions of the same expired session cannot fail each other.
func (r *MongoSessionRepository) Delete(ctx context.Context, token string, kind domain.Kind) error {
	if _, err := r.partition(kind).DeleteOne(ctx, bson.M{"session_token": token}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) partition(kind domain.Kind) *mongo.Collection {
	if kind == domain.KindAdmin {
		return r.adminSessions
	}
	return r.userSessions
}
