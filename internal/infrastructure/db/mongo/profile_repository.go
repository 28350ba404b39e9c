package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/founderflow/founderflow/internal/core/domain"
)

const profilesCollection = "profiles"

// ProfileRepository persists display profiles, keyed by the user id.
type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profilesCollection)}
}

type mongoProfile struct {
	ID        string `bson:"_id"`
	FullName  string `bson:"full_name"`
	AvatarURL string `bson:"avatar_url,omitempty"`
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, mongoProfile{
		ID:        p.ID,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
	})
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProfile
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	return &domain.Profile{ID: mp.ID, FullName: mp.FullName, AvatarURL: mp.AvatarURL}, nil
}

func (r *ProfileRepository) UpdateFullName(ctx context.Context, id, fullName string) error {
	return r.update(ctx, id, bson.M{"full_name": fullName})
}

func (r *ProfileRepository) UpdateAvatarURL(ctx context.Context, id, avatarURL string) error {
	return r.update(ctx, id, bson.M{"avatar_url": avatarURL})
}

func (r *ProfileRepository) update(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// ListMembers returns the reduced view used for task assignment.
func (r *ProfileRepository) ListMembers(ctx context.Context) ([]domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []domain.Member
	for cursor.Next(ctx) {
		var mp mongoProfile
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		members = append(members, domain.Member{ID: mp.ID, FullName: mp.FullName})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (r *ProfileRepository) DeleteByUser(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
