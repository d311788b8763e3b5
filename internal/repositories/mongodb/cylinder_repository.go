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

// CylinderRepository implements the repositories.CylinderRepository interface
type CylinderRepository struct {
	collection *mongo.Collection
}

// NewCylinderRepository creates a new CylinderRepository
func NewCylinderRepository(db *mongo.Database) repositories.CylinderRepository {
	return &CylinderRepository{
		collection: db.Collection("cylinders"),
	}
}

// Create inserts a new cylinder
func (r *CylinderRepository) Create(ctx context.Context, cylinder *models.Cylinder) error {
	cylinder.CreatedAt = time.Now()
	cylinder.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, cylinder)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		cylinder.ID = oid
	}
	return nil
}

// FindByID finds a cylinder by ID
func (r *CylinderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cylinder, error) {
	var cylinder models.Cylinder
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cylinder)
	if err != nil {
		return nil, err
	}
	return &cylinder, nil
}

// FindBySerialNumber finds a cylinder by its serial number
func (r *CylinderRepository) FindBySerialNumber(ctx context.Context, serial string) (*models.Cylinder, error) {
	var cylinder models.Cylinder
	err := r.collection.FindOne(ctx, bson.M{"serialNumber": serial}).Decode(&cylinder)
	if err != nil {
		return nil, err
	}
	return &cylinder, nil
}

// FindByOutlet finds cylinders currently located at an outlet
func (r *CylinderRepository) FindByOutlet(ctx context.Context, outletID primitive.ObjectID, page, limit int) ([]*models.Cylinder, error) {
	return r.find(ctx, bson.M{"outletId": outletID}, page, limit)
}

// FindByStatus finds cylinders in a lifecycle state
func (r *CylinderRepository) FindByStatus(ctx context.Context, status models.CylinderStatus, page, limit int) ([]*models.Cylinder, error) {
	return r.find(ctx, bson.M{"status": status}, page, limit)
}

func (r *CylinderRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.Cylinder, error) {
	opts := options.Find()
	if page > 0 && limit > 0 {
		opts.SetSkip(int64((page - 1) * limit))
		opts.SetLimit(int64(limit))
	}
	opts.SetSort(bson.M{"serialNumber": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cylinders []*models.Cylinder
	if err := cursor.All(ctx, &cylinders); err != nil {
		return nil, err
	}
	if cylinders == nil {
		cylinders = []*models.Cylinder{}
	}
	return cylinders, nil
}

// Update replaces an existing cylinder
func (r *CylinderRepository) Update(ctx context.Context, cylinder *models.Cylinder) error {
	cylinder.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": cylinder.ID}, cylinder)
	return err
}

// Count counts all cylinders
func (r *CylinderRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
