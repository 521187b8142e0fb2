package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"warbler/internal/cache"
	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/handler"
	"warbler/internal/redis"
	"warbler/internal/repository"
	"warbler/internal/service"
	"warbler/internal/validator"
)

// Run wires the whole application together and serves HTTP.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// The feed cache is best-effort: if Redis is down we serve feeds
	// straight from Postgres.
	var feedCache cache.FeedCache
	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Printf("Redis unavailable, feeds served from database only: %v", err)
	} else if err := redisClient.Ping(context.Background()); err != nil {
		log.Printf("Redis unavailable, feeds served from database only: %v", err)
		redisClient.Close()
	} else {
		defer redisClient.Close()
		feedCache = cache.NewFeedCache(redisClient.Client)
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	threadRepo := repository.NewThreadRepository(db)

	userService := service.NewUserService(userRepo, feedCache)
	authService := service.NewAuthService(cfg)
	followService := service.NewFollowService(followRepo, userRepo, feedCache)
	messageService := service.NewMessageService(messageRepo, followRepo, feedCache)
	reactionService := service.NewReactionService(reactionRepo, messageRepo)
	threadService := service.NewThreadService(threadRepo, userRepo)

	v := validator.New()

	router := NewRouter(RouterConfig{
		AuthHandler:     handler.NewAuthHandler(userService, authService, v, cfg),
		UserHandler:     handler.NewUserHandler(userService, messageService, reactionService, followService, v),
		FollowHandler:   handler.NewFollowHandler(followService),
		MessageHandler:  handler.NewMessageHandler(messageService, reactionService, v),
		ReactionHandler: handler.NewReactionHandler(reactionService, v),
		ThreadHandler:   handler.NewThreadHandler(threadService, userService, v),
		SecretKey:       cfg.SecretKey,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
