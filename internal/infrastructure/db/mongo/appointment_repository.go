package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

const collectionAppointments = "appointments"

// AppointmentRepository implements ports.AppointmentRepository using MongoDB.
type AppointmentRepository struct {
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments)}
}

type mongoAppointment struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	ScheduledAt time.Time `bson:"scheduled_at"`
	Service     string    `bson:"service"`
	CreatedAt   time.Time `bson:"created_at"`
}

// Create inserts a new appointment document.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, mongoAppointment{
		ID:          a.ID,
		UserID:      a.UserID,
		ScheduledAt: a.ScheduledAt.UTC(),
		Service:     a.Service,
		CreatedAt:   a.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// FindByID retrieves an appointment by id.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoAppointment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *AppointmentRepository) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	return r.find(ctx, bson.M{})
}

// ExistsBetween reports whether an appointment falls strictly inside (from, to).
func (r *AppointmentRepository) ExistsBetween(ctx context.Context, from, to time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"scheduled_at": bson.M{"$gt": from.UTC(), "$lt": to.UTC()}}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count appointments: %w", err)
	}
	return n > 0, nil
}

// EnsureIndexes creates the indexes used by the range and ownership queries.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "scheduled_at", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "scheduled_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *AppointmentRepository) find(ctx context.Context, filter bson.M) ([]domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAppointment
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}

	out := make([]domain.Appointment, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toDomain())
	}
	return out, nil
}

func (d mongoAppointment) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:          d.ID,
		UserID:      d.UserID,
		ScheduledAt: d.ScheduledAt.UTC(),
		Service:     d.Service,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}
