package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/founderflow/founderflow/internal/core/domain"
)

const tasksCollection = "tasks"

// TaskRepository persists project tasks.
type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

type mongoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ProjectID   string             `bson:"project_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	Deadline    *time.Time         `bson:"deadline,omitempty"`
	AssignedTo  string             `bson:"assigned_to"`
	CreatedBy   string             `bson:"created_by"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTask{
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Deadline:    t.Deadline,
		AssignedTo:  t.AssignedTo,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	t.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// ListByProject returns the project's tasks, newest first.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	return r.find(ctx, bson.M{"project_id": projectID})
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	return r.find(ctx, bson.M{})
}

func (r *TaskRepository) find(ctx context.Context, filter bson.M) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []domain.Task
	for cursor.Next(ctx) {
		var mt mongoTask
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, domain.Task{
			ID:          mt.ID.Hex(),
			ProjectID:   mt.ProjectID,
			Title:       mt.Title,
			Description: mt.Description,
			Status:      domain.TaskStatus(mt.Status),
			Deadline:    mt.Deadline,
			AssignedTo:  mt.AssignedTo,
			CreatedBy:   mt.CreatedBy,
			CreatedAt:   mt.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// UnassignUser clears task assignments for a deleted user so stale ids
// never surface in the assignee picker.
func (r *TaskRepository) UnassignUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.UpdateMany(ctx,
		bson.M{"assigned_to": userID},
		bson.M{"$set": bson.M{"assigned_to": ""}},
	)
	if err != nil {
		return fmt.Errorf("unassign tasks: %w", err)
	}
	return nil
}
