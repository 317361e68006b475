package configs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const databaseName = "torget"

// ConnectDB dials MongoDB and verifies the connection with a ping. The client
// is constructed here and handed to the service container; nothing connects at
// package load.
func ConnectDB(ctx context.Context) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(LoadEnvFor("DATABASE_URL")))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	zlog.Info().Msg("MongoDB connection successful")
	return client, nil
}

// GetCollection Get collection from Db
func GetCollection(client *mongo.Client, name string) *mongo.Collection {
	return client.Database(databaseName).Collection(name)
}

// GetDatabase returns the application database.
func GetDatabase(client *mongo.Client) *mongo.Database {
	return client.Database(databaseName)
}

// ConnectRedis dials Redis and verifies the connection with a ping.
func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	opts, err := redis.ParseURL(LoadEnvFor("REDIS_URL"))
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	zlog.Info().Msg("Redis connection successful")
	return client, nil
}
