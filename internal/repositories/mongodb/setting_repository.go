package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
)

// SettingRepository implements the repositories.SettingRepository interface
type SettingRepository struct {
	collection *mongo.Collection
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db *mongo.Database) repositories.SettingRepository {
	return &SettingRepository{
		collection: db.Collection("settings"),
	}
}

// Create inserts a new setting
func (r *SettingRepository) Create(ctx context.Context, setting *models.Setting) error {
	setting.CreatedAt = time.Now()
	setting.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, setting)
	if err != nil {
		return fmt.Errorf("failed to create setting %q: %w", setting.Key, err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		setting.ID = oid
	}
	return nil
}

// Update replaces an existing setting
func (r *SettingRepository) Update(ctx context.Context, setting *models.Setting) error {
	setting.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": setting.ID}, setting)
	if err != nil {
		return fmt.Errorf("failed to update setting %q: %w", setting.Key, err)
	}
	return nil
}

// FindByID finds a setting by ID
func (r *SettingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Setting, error) {
	var setting models.Setting
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&setting)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// FindActiveByKey finds all active settings sharing a normalized key,
// across every scope. Scope matching is the resolver's job.
func (r *SettingRepository) FindActiveByKey(ctx context.Context, key string) ([]*models.Setting, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"key": key, "isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to find settings for key %q: %w", key, err)
	}
	defer cursor.Close(ctx)

	var settings []*models.Setting
	if err := cursor.All(ctx, &settings); err != nil {
		return nil, err
	}
	if settings == nil {
		settings = []*models.Setting{}
	}
	return settings, nil
}

// FindByKeyAndScope finds the setting at an exact (key, scope) tuple,
// active or not. Used by create-or-update writes.
func (r *SettingRepository) FindByKeyAndScope(ctx context.Context, key string, scope models.SettingScope) (*models.Setting, error) {
	filter := bson.M{
		"key":           key,
		"outletId":      scope.OutletID,
		"cylinderType":  scope.CylinderType,
		"operationType": scope.OperationType,
	}
	var setting models.Setting
	err := r.collection.FindOne(ctx, filter).Decode(&setting)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// FindAll finds all settings with pagination, sorted by key
func (r *SettingRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Setting, error) {
	opts := options.Find()
	if page > 0 && limit > 0 {
		opts.SetSkip(int64((page - 1) * limit))
		opts.SetLimit(int64(limit))
	}
	opts.SetSort(bson.M{"key": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var settings []*models.Setting
	if err := cursor.All(ctx, &settings); err != nil {
		return nil, err
	}
	if settings == nil {
		settings = []*models.Setting{}
	}
	return settings, nil
}

// FindByCategory finds settings belonging to a category with pagination
func (r *SettingRepository) FindByCategory(ctx context.Context, categoryID primitive.ObjectID, page, limit int) ([]*models.Setting, error) {
	opts := options.Find()
	if page > 0 && limit > 0 {
		opts.SetSkip(int64((page - 1) * limit))
		opts.SetLimit(int64(limit))
	}
	opts.SetSort(bson.M{"key": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"categoryId": categoryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var settings []*models.Setting
	if err := cursor.All(ctx, &settings); err != nil {
		return nil, err
	}
	if settings == nil {
		settings = []*models.Setting{}
	}
	return settings, nil
}

// Deactivate soft-deletes a setting by clearing its active flag
func (r *SettingRepository) Deactivate(ctx context.Context, id primitive.ObjectID, updatedBy string) error {
	update := bson.M{
		"$set": bson.M{
			"isActive":  false,
			"updatedBy": updatedBy,
			"updatedAt": time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate setting: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count counts all settings
func (r *SettingRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
