package database

import (
	"context"
	"errors"
	"log"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var ErrMongoURIRequired = errors.New("MONGO_URI is required")

// Connector owns the Mongo client for the process. The connection is
// established lazily on first use; the mutex guarantees a single attempt is
// in flight at a time and concurrent callers share its outcome.
type Connector struct {
	uri    string
	dbName string

	mu     sync.Mutex
	client *mongo.Client
}

func NewConnector(uri, dbName string) *Connector {
	return &Connector{uri: uri, dbName: dbName}
}

// DB returns the database handle, connecting first if needed.
func (c *Connector) DB(ctx context.Context) (*mongo.Database, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(c.dbName), nil
}

func (c *Connector) connect(ctx context.Context) (*mongo.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.uri == "" {
		return nil, ErrMongoURIRequired
	}

	log.Println("[DB] [INFO] connecting to MongoDB")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.uri))
	if err != nil {
		log.Println("[DB] [ERROR] mongo connect failed:", err)
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Println("[DB] [ERROR] mongo ping failed:", err)
		_ = client.Disconnect(ctx)
		return nil, err
	}

	log.Println("[DB] [INFO] connected to MongoDB:", c.dbName)
	c.client = client
	return client, nil
}

// Ping reports whether the store is reachable. It never connects as a side
// effect of a health probe before the first real use.
func (c *Connector) Ping(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()

	if client == nil {
		return errors.New("not connected")
	}
	return client.Ping(ctx, readpref.Primary())
}

func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	return err
}
