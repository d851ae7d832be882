package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appetiteclub/gourmet/internal/storage"
	"github.com/aquamarinepk/aqm"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultURL   = "mongodb://localhost:27017"
	defaultDB    = "gourmet"
	kvCollection = "kv"
)

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// KVRepo keeps one document per key in the kv collection.
type KVRepo struct {
	client     *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
	logger     aqm.Logger
	config     *aqm.Config
}

func NewKVRepo(config *aqm.Config, logger aqm.Logger) *KVRepo {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &KVRepo{
		logger: logger,
		config: config,
	}
}

func (r *KVRepo) Start(ctx context.Context) error {
	mongoURL, dbName := defaultURL, defaultDB
	if r.config != nil {
		mongoURL = r.config.GetStringOrDef("db.mongo.url", defaultURL)
		dbName = r.config.GetStringOrDef("db.mongo.name", defaultDB)
	}

	clientOptions := options.Client().ApplyURI(mongoURL).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("cannot connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("cannot ping MongoDB: %w", err)
	}

	r.client = client
	r.db = client.Database(dbName)
	r.collection = r.db.Collection(kvCollection)

	r.logger.Infof("Connected to MongoDB: %s, database: %s, collection: %s", mongoURL, dbName, kvCollection)
	return nil
}

func (r *KVRepo) Stop(ctx context.Context) error {
	if r.client != nil {
		if err := r.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("cannot disconnect from MongoDB: %w", err)
		}
		r.logger.Info("Disconnected from MongoDB")
	}
	return nil
}

// GetDatabase returns the connected database, or nil before Start.
func (r *KVRepo) GetDatabase() *mongo.Database {
	return r.db
}

func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if r.collection == nil {
		return nil, errors.New("mongo repo not started")
	}

	var doc kvDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("cannot find key %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (r *KVRepo) Set(ctx context.Context, key string, value []byte) error {
	if r.collection == nil {
		return errors.New("mongo repo not started")
	}

	doc := kvDocument{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"value": doc.Value, "updated_at": doc.UpdatedAt}}

	if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("cannot upsert key %s: %w", key, err)
	}
	return nil
}
