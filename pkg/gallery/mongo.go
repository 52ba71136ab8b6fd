package gallery

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkplot/inkplot/pkg/errors"
)

const (
	defaultMongoDatabase   = "inkplot"
	defaultMongoCollection = "artworks"
)

// MongoStore keeps artwork metadata in a MongoDB collection. Use it
// when several gallery instances share one catalog.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection. An
// empty database selects "inkplot".
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = defaultMongoDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb at %s", uri)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(defaultMongoCollection),
	}, nil
}

func (s *MongoStore) Put(ctx context.Context, a *Artwork) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": a.ID}, a, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store artwork %s", a.ID)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Artwork, error) {
	var a Artwork
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeArtworkNotFound, "artwork not found: %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load artwork %s", id)
	}
	return &a, nil
}

func (s *MongoStore) List(ctx context.Context) ([]*Artwork, error) {
	cursor, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list artworks")
	}
	defer cursor.Close(ctx)

	var artworks []*Artwork
	if err := cursor.All(ctx, &artworks); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode artworks")
	}
	return artworks, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete artwork %s", id)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
