package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
)

// OutletRepository implements the repositories.OutletRepository interface
type OutletRepository struct {
	collection *mongo.Collection
}

// NewOutletRepository creates a new OutletRepository
func NewOutletRepository(db *mongo.Database) repositories.OutletRepository {
	return &OutletRepository{
		collection: db.Collection("outlets"),
	}
}

// Create inserts a new outlet
func (r *OutletRepository) Create(ctx context.Context, outlet *models.Outlet) error {
	outlet.CreatedAt = time.Now()
	outlet.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, outlet)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		outlet.ID = oid
	}
	return nil
}

// FindByID finds an outlet by ID
func (r *OutletRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Outlet, error) {
	var outlet models.Outlet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&outlet)
	if err != nil {
		return nil, err
	}
	return &outlet, nil
}

// FindByCode finds an outlet by its short code
func (r *OutletRepository) FindByCode(ctx context.Context, code string) (*models.Outlet, error) {
	var outlet models.Outlet
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&outlet)
	if err != nil {
		return nil, err
	}
	return &outlet, nil
}

// FindAll finds all outlets with pagination
func (r *OutletRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Outlet, error) {
	opts := options.Find()
	if page > 0 && limit > 0 {
		opts.SetSkip(int64((page - 1) * limit))
		opts.SetLimit(int64(limit))
	}
	opts.SetSort(bson.M{"name": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var outlets []*models.Outlet
	if err := cursor.All(ctx, &outlets); err != nil {
		return nil, err
	}
	if outlets == nil {
		outlets = []*models.Outlet{}
	}
	return outlets, nil
}

// Update replaces an existing outlet
func (r *OutletRepository) Update(ctx context.Context, outlet *models.Outlet) error {
	outlet.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": outlet.ID}, outlet)
	return err
}

// Deactivate soft-deletes an outlet
func (r *OutletRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count counts all outlets
func (r *OutletRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
