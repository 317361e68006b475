package main

import (
	"context"

	"torget-app-io/api/configs"
	"torget-app-io/api/internal/container"
	"torget-app-io/api/internal/routers"
	"torget-app-io/api/pkg/util"

	zlog "github.com/rs/zerolog/log"
)

func main() {
	util.InitLogger()

	ctx := context.Background()

	mongoClient, err := configs.ConnectDB(ctx)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			util.LogError("failed to disconnect from MongoDB", err)
		}
	}()

	redisClient, err := configs.ConnectRedis(ctx)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer redisClient.Close()

	sc, err := container.NewServiceContainer(mongoClient, redisClient)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to build service container")
	}

	router := routers.InitRoute(sc, redisClient)

	port := configs.LoadEnvFor("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		zlog.Fatal().Err(err).Msg("server stopped")
	}
}
