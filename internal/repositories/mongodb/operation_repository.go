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

// OperationRepository implements the repositories.OperationRepository interface
type OperationRepository struct {
	collection *mongo.Collection
}

// NewOperationRepository creates a new OperationRepository
func NewOperationRepository(db *mongo.Database) repositories.OperationRepository {
	return &OperationRepository{
		collection: db.Collection("operations"),
	}
}

// Create inserts a new operation record
func (r *OperationRepository) Create(ctx context.Context, op *models.Operation) error {
	op.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, op)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		op.ID = oid
	}
	return nil
}

// FindByID finds an operation by ID
func (r *OperationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Operation, error) {
	var op models.Operation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&op)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// FindByCylinder finds operations performed on a cylinder
func (r *OperationRepository) FindByCylinder(ctx context.Context, cylinderID primitive.ObjectID, page, limit int) ([]*models.Operation, error) {
	return r.find(ctx, bson.M{"cylinderId": cylinderID}, page, limit)
}

// FindByType finds operations of one kind
func (r *OperationRepository) FindByType(ctx context.Context, opType models.OperationType, page, limit int) ([]*models.Operation, error) {
	return r.find(ctx, bson.M{"type": opType}, page, limit)
}

func (r *OperationRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.Operation, error) {
	opts := options.Find()
	if page > 0 && limit > 0 {
		opts.SetSkip(int64((page - 1) * limit))
		opts.SetLimit(int64(limit))
	}
	opts.SetSort(bson.M{"performedAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ops []*models.Operation
	if err := cursor.All(ctx, &ops); err != nil {
		return nil, err
	}
	if ops == nil {
		ops = []*models.Operation{}
	}
	return ops, nil
}

// Count counts all operation records
func (r *OperationRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
