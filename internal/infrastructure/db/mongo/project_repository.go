package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/founderflow/founderflow/internal/core/domain"
)

const projectsCollection = "projects"

// ProjectRepository persists projects. Money fields are stored as decimal
// strings to avoid float drift.
type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectsCollection)}
}

type mongoProject struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description"`
	Deliverables string             `bson:"deliverables"`
	StartDate    time.Time          `bson:"start_date"`
	Deadline     time.Time          `bson:"deadline"`
	Status       string             `bson:"status"`
	ClientName   *string            `bson:"client_name,omitempty"`
	ClientEmail  *string            `bson:"client_email,omitempty"`
	ClientPhone  *string            `bson:"client_phone,omitempty"`
	TotalAmount  *string            `bson:"total_amount,omitempty"`
	AmountPaid   *string            `bson:"amount_paid,omitempty"`
	OutsourcedTo *string            `bson:"outsourced_to,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoProject(p)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProject
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return mp.toDomain()
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var projects []domain.Project
	for cursor.Next(ctx) {
		var mp mongoProject
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		p, err := mp.toDomain()
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func toMongoProject(p *domain.Project) mongoProject {
	return mongoProject{
		Name:         p.Name,
		Description:  p.Description,
		Deliverables: p.Deliverables,
		StartDate:    p.StartDate.UTC(),
		Deadline:     p.Deadline.UTC(),
		Status:       string(p.Status),
		ClientName:   p.ClientName,
		ClientEmail:  p.ClientEmail,
		ClientPhone:  p.ClientPhone,
		TotalAmount:  decToStr(p.TotalAmount),
		AmountPaid:   decToStr(p.AmountPaid),
		OutsourcedTo: p.OutsourcedTo,
		CreatedAt:    p.CreatedAt.UTC(),
	}
}

func (mp mongoProject) toDomain() (*domain.Project, error) {
	total, err := strToDec(mp.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("project %s: total_amount: %w", mp.ID.Hex(), err)
	}
	paid, err := strToDec(mp.AmountPaid)
	if err != nil {
		return nil, fmt.Errorf("project %s: amount_paid: %w", mp.ID.Hex(), err)
	}

	return &domain.Project{
		ID:           mp.ID.Hex(),
		Name:         mp.Name,
		Description:  mp.Description,
		Deliverables: mp.Deliverables,
		StartDate:    mp.StartDate,
		Deadline:     mp.Deadline,
		Status:       domain.ProjectStatus(mp.Status),
		ClientName:   mp.ClientName,
		ClientEmail:  mp.ClientEmail,
		ClientPhone:  mp.ClientPhone,
		TotalAmount:  total,
		AmountPaid:   paid,
		OutsourcedTo: mp.OutsourcedTo,
		CreatedAt:    mp.CreatedAt,
	}, nil
}

func decToStr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func strToDec(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
