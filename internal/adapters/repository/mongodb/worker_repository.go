package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WorkerRepository はドキュメントストアを利用した社員レコード永続化の実装です。
type WorkerRepository struct {
	coll *mongo.Collection
}

// NewWorkerRepository は WorkerRepository を生成します。
func NewWorkerRepository(coll *mongo.Collection) *WorkerRepository {
	return &WorkerRepository{coll: coll}
}

// NewID は ObjectID の 16 進表現を払い出します。
func (r *WorkerRepository) NewID() string {
	return primitive.NewObjectID().Hex()
}

// EnsureIndexes はコレクションのインデックスを作成します。
func (r *WorkerRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.coll.Indexes().CreateMany(ctx, WorkerIndexes); err != nil {
		return fmt.Errorf("mongodb: create indexes: %w", err)
	}
	return nil
}

// Insert は ID 付きのドキュメントを新規作成します。
func (r *WorkerRepository) Insert(ctx context.Context, w *worker.Worker) (*worker.Worker, error) {
	oid, err := primitive.ObjectIDFromHex(w.ID)
	if err != nil {
		return nil, worker.ErrInvalidID
	}

	doc := newWorkerDocument(oid, w)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, worker.ErrWorkerAlreadyExists
		}
		return nil, fmt.Errorf("mongodb: insert worker: %w", err)
	}
	return doc.toEntity(), nil
}

// Merge は patch に含まれるフィールドだけを $set で書き込みます。
func (r *WorkerRepository) Merge(ctx context.Context, id string, patch worker.Patch) error {
	if patch.Empty() {
		return worker.ErrEmptyPatch
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return worker.ErrWorkerNotFound
	}

	updatedAt := patch.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.D{{Key: "$set", Value: setDocument(patch, updatedAt)}})
	if err != nil {
		return fmt.Errorf("mongodb: merge worker: %w", err)
	}
	if res.MatchedCount == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

// Delete はドキュメントを削除します。
func (r *WorkerRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return worker.ErrWorkerNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongodb: delete worker: %w", err)
	}
	if res.DeletedCount == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

// FindByID は ID でドキュメントを取得します。
func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, worker.ErrWorkerNotFound
	}

	var doc workerDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, worker.ErrWorkerNotFound
		}
		return nil, fmt.Errorf("mongodb: find worker: %w", err)
	}
	return doc.toEntity(), nil
}

// List は全ドキュメントを作成順に取得します。
func (r *WorkerRepository) List(ctx context.Context) ([]*worker.Worker, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: list workers: %w", err)
	}
	defer cur.Close(ctx)

	workers := make([]*worker.Worker, 0)
	for cur.Next(ctx) {
		var doc workerDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongodb: decode worker: %w", err)
		}
		workers = append(workers, doc.toEntity())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongodb: iterate workers: %w", err)
	}

	return workers, nil
}
