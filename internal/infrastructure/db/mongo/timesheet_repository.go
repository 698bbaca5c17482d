package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/timetrack/timesheet-system/internal/core/domain"
)

const timesheetsCollection = "timesheets"

type TimesheetRepository struct {
	coll *mongo.Collection
}

func NewTimesheetRepository(db *mongo.Database) *TimesheetRepository {
	return &TimesheetRepository{coll: db.Collection(timesheetsCollection)}
}

type mongoTimesheet struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	Date        time.Time          `bson:"date"`
	TaskName    string             `bson:"task_name"`
	Hours       float64            `bson:"hours"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
	// Owner is populated only by the $lookup in ListAll.
	Owner []mongoOwner `bson:"owner,omitempty"`
}

type mongoOwner struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
}

func (t mongoTimesheet) toDomain() *domain.Timesheet {
	ts := &domain.Timesheet{
		ID:          t.ID.Hex(),
		UserID:      t.UserID.Hex(),
		Date:        t.Date,
		TaskName:    t.TaskName,
		Hours:       t.Hours,
		Description: t.Description,
		Status:      domain.TimesheetStatus(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if len(t.Owner) > 0 {
		ts.Owner = &domain.Owner{Name: t.Owner[0].Name, Email: t.Owner[0].Email}
	}
	return ts
}

func (r *TimesheetRepository) Create(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
	ownerID, err := primitive.ObjectIDFromHex(ts.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}

	doc := mongoTimesheet{
		UserID:      ownerID,
		Date:        ts.Date,
		TaskName:    ts.TaskName,
		Hours:       ts.Hours,
		Description: ts.Description,
		Status:      string(ts.Status),
		CreatedAt:   ts.CreatedAt,
		UpdatedAt:   ts.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert timesheet: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *TimesheetRepository) FindByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTimesheetNotFound
	}

	var mt mongoTimesheet
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTimesheetNotFound
		}
		return nil, fmt.Errorf("find timesheet: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TimesheetRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Timesheet, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*domain.Timesheet{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list timesheets: %w", err)
	}
	defer cur.Close(ctx)

	return r.decodeAll(ctx, cur)
}

// ListAll returns every entry with the owner's name and email joined in
// from the users collection, the server-side equivalent of the admin
// dashboard's populated view.
func (r *TimesheetRepository) ListAll(ctx context.Context) ([]*domain.Timesheet, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list all timesheets: %w", err)
	}
	defer cur.Close(ctx)

	return r.decodeAll(ctx, cur)
}

func (r *TimesheetRepository) decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*domain.Timesheet, error) {
	sheets := make([]*domain.Timesheet, 0)
	for cur.Next(ctx) {
		var mt mongoTimesheet
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode timesheet: %w", err)
		}
		sheets = append(sheets, mt.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate timesheets: %w", err)
	}
	return sheets, nil
}

func (r *TimesheetRepository) UpdateStatus(ctx context.Context, id string, status domain.TimesheetStatus) (*domain.Timesheet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTimesheetNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mt mongoTimesheet
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTimesheetNotFound
		}
		return nil, fmt.Errorf("update timesheet status: %w", err)
	}
	return mt.toDomain(), nil
}

// EnsureIndexes creates the query indexes used by the list endpoints.
func (r *TimesheetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
