package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/founderflow/founderflow/internal/core/domain"
)

const rolesCollection = "user_roles"

// RoleRepository persists the user_roles rows consumed by the role resolver.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(rolesCollection)}
}

type mongoRole struct {
	UserID string `bson:"user_id"`
	Role   string `bson:"role"`
}

// FindRoles returns every role row for the user. The resolver owns the
// interpretation of zero or multiple rows.
func (r *RoleRepository) FindRoles(ctx context.Context, userID string) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	defer cursor.Close(ctx)

	var roles []domain.Role
	for cursor.Next(ctx) {
		var row mongoRole
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, domain.ParseRole(row.Role))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	return roles, nil
}

// Assign upserts the single role row for a user.
func (r *RoleRepository) Assign(ctx context.Context, userID string, role domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"role": string(role)}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

func (r *RoleRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete roles: %w", err)
	}
	return nil
}
