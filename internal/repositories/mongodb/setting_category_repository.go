package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
)

// SettingCategoryRepository implements the repositories.SettingCategoryRepository interface
type SettingCategoryRepository struct {
	collection *mongo.Collection
}

// NewSettingCategoryRepository creates a new SettingCategoryRepository
func NewSettingCategoryRepository(db *mongo.Database) repositories.SettingCategoryRepository {
	return &SettingCategoryRepository{
		collection: db.Collection("setting_categories"),
	}
}

// Create inserts a new category
func (r *SettingCategoryRepository) Create(ctx context.Context, category *models.SettingCategory) error {
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}
	return nil
}

// FindByID finds a category by ID
func (r *SettingCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SettingCategory, error) {
	var category models.SettingCategory
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName finds a category by its name
func (r *SettingCategoryRepository) FindByName(ctx context.Context, name string) (*models.SettingCategory, error) {
	var category models.SettingCategory
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindAll finds all categories sorted by name
func (r *SettingCategoryRepository) FindAll(ctx context.Context) ([]*models.SettingCategory, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []*models.SettingCategory
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*models.SettingCategory{}
	}
	return categories, nil
}
