package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories"
)

// OperationRepository is a map-backed repositories.OperationRepository
type OperationRepository struct {
	mu         sync.RWMutex
	operations map[primitive.ObjectID]*models.Operation
}

// NewOperationRepository creates an empty in-memory OperationRepository
func NewOperationRepository() repositories.OperationRepository {
	return &OperationRepository{operations: make(map[primitive.ObjectID]*models.Operation)}
}

func cloneOperation(op *models.Operation) *models.Operation {
	cp := *op
	return &cp
}

// Create inserts a new operation record, assigning an id
func (r *OperationRepository) Create(ctx context.Context, op *models.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if op.ID.IsZero() {
		op.ID = primitive.NewObjectID()
	}
	op.CreatedAt = time.Now()
	r.operations[op.ID] = cloneOperation(op)
	return nil
}

// FindByID finds an operation by ID
func (r *OperationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.operations[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return cloneOperation(op), nil
}

// FindByCylinder finds the operations performed on a cylinder, newest first
func (r *OperationRepository) FindByCylinder(ctx context.Context, cylinderID primitive.ObjectID, page, limit int) ([]*models.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*models.Operation{}
	for _, op := range r.operations {
		if op.CylinderID == cylinderID {
			matched = append(matched, cloneOperation(op))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].PerformedAt.After(matched[j].PerformedAt) })
	return paginateSlice(matched, page, limit), nil
}

// FindByType finds operations of one kind, newest first
func (r *OperationRepository) FindByType(ctx context.Context, opType models.OperationType, page, limit int) ([]*models.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*models.Operation{}
	for _, op := range r.operations {
		if op.Type == opType {
			matched = append(matched, cloneOperation(op))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].PerformedAt.After(matched[j].PerformedAt) })
	return paginateSlice(matched, page, limit), nil
}

// Count counts all operations
func (r *OperationRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.operations)), nil
}
