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

// LeaseRepository implements the repositories.LeaseRepository interface
type LeaseRepository struct {
	collection *mongo.Collection
}

// NewLeaseRepository creates a new LeaseRepository
func NewLeaseRepository(db *mongo.Database) repositories.LeaseRepository {
	return &LeaseRepository{
		collection: db.Collection("leases"),
	}
}

// Create inserts a new lease
func (r *LeaseRepository) Create(ctx context.Context, lease *models.Lease) error {
	lease.CreatedAt = time.Now()
	lease.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, lease)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		lease.ID = oid
	}
	return nil
}

// FindByID finds a lease by ID
func (r *LeaseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lease, error) {
	var lease models.Lease
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&lease)
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

// FindByCustomer finds leases held by a customer
func (r *LeaseRepository) FindByCustomer(ctx context.Context, customerID primitive.ObjectID, page, limit int) ([]*models.Lease, error) {
	return r.find(ctx, bson.M{"customerId": customerID}, page, limit)
}

// FindByOutlet finds leases issued from an outlet
func (r *LeaseRepository) FindByOutlet(ctx context.Context, outletID primitive.ObjectID, page, limit int) ([]*models.Lease, error) {
	return r.find(ctx, bson.M{"outletId": outletID}, page, limit)
}

// FindByStatus finds leases in a lifecycle state
func (r *LeaseRepository) FindByStatus(ctx context.Context, status models.LeaseStatus, page, limit int) ([]*models.Lease, error) {
	return r.find(ctx, bson.M{"status": status}, page, limit)
}

// FindActiveByCylinder finds the open lease on a cylinder, if any
func (r *LeaseRepository) FindActiveByCylinder(ctx context.Context, cylinderID primitive.ObjectID) (*models.Lease, error) {
	var lease models.Lease
	filter := bson.M{"cylinderId": cylinderID, "status": models.LeaseActive}
	err := r.collection.FindOne(ctx, filter).Decode(&lease)
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

func (r *LeaseRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.Lease, error) {
	opts := options.Find()
	if page > 0 && limit > 0 {
		opts.SetSkip(int64((page - 1) * limit))
		opts.SetLimit(int64(limit))
	}
	opts.SetSort(bson.M{"startedAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leases []*models.Lease
	if err := cursor.All(ctx, &leases); err != nil {
		return nil, err
	}
	if leases == nil {
		leases = []*models.Lease{}
	}
	return leases, nil
}

// Update replaces an existing lease
func (r *LeaseRepository) Update(ctx context.Context, lease *models.Lease) error {
	lease.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": lease.ID}, lease)
	return err
}

// Count counts all leases
func (r *LeaseRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
