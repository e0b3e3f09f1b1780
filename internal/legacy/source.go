package legacy

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultDatabase = "portfolio"

// Source yields the raw documents of one legacy collection.
// A collection that does not exist yields no documents and no error.
type Source interface {
	Documents(ctx context.Context, collection string) ([]bson.M, error)
}

// MongoSource reads a live MongoDB deployment.
type MongoSource struct {
	client *mongo.Client
	db     *mongo.Database
}

// DialMongo connects to uri. The database is taken from the URI path,
// "portfolio" when the path is empty.
func DialMongo(ctx context.Context, uri string) (*MongoSource, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoSource{client: client, db: client.Database(databaseFromURI(uri))}, nil
}

func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return defaultDatabase
}

func (s *MongoSource) Documents(ctx context.Context, collection string) ([]bson.M, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Close disconnects the client.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// DumpSource reads a mongodump directory holding <collection>.bson files.
type DumpSource struct {
	Dir string
}

func (s DumpSource) Documents(_ context.Context, collection string) ([]bson.M, error) {
	payload, err := os.ReadFile(filepath.Join(s.Dir, collection+".bson"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeBSONStream(payload)
}

// decodeBSONStream splits concatenated BSON documents.
func decodeBSONStream(payload []byte) ([]bson.M, error) {
	docs := make([]bson.M, 0)
	cursor := 0
	for cursor < len(payload) {
		if cursor+4 > len(payload) {
			return nil, fmt.Errorf("invalid bson payload")
		}
		docLen := int(int32(binary.LittleEndian.Uint32(payload[cursor : cursor+4])))
		if docLen <= 0 || cursor+docLen > len(payload) {
			return nil, fmt.Errorf("invalid bson document length")
		}
		var doc bson.M
		if err := bson.Unmarshal(payload[cursor:cursor+docLen], &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
		cursor += docLen
	}
	return docs, nil
}
