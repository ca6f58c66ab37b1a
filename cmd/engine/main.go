package main

import (
	"campus-grove/internal/config"
	"campus-grove/internal/database"
	"campus-grove/internal/engine"
	"campus-grove/internal/handlers"
	"campus-grove/internal/middleware"
	"campus-grove/internal/store"
	"campus-grove/internal/utils"
	"fmt"
	"log"
	"net/http"

	"github.com/asynkron/protoactor-go/actor"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	metrics := utils.NewMetricsCollector()

	ids := store.RandomIDs{}
	entityStore := store.NewStore(ids)
	feed := store.NewNotificationLog(ids)

	var mongodb *database.MongoDB
	if cfg.Database.URI != "" {
		mongodb, err = database.NewMongoDB(cfg.Database.URI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		log.Printf("Connected to MongoDB, state will be mirrored")
	} else {
		log.Printf("No MONGODB_URI set, running fully in-memory")
	}

	if cfg.SeedDemoData && mongodb == nil {
		entityStore.Seed()
		feed.SeedFeed()
		log.Printf("Seeded demo data: %d communities, %d posts", entityStore.CommunityCount(), entityStore.PostCount())
	}

	system := actor.NewActorSystem()
	groveEngine := engine.NewEngine(system, metrics, entityStore, feed, mongodb)

	server := handlers.NewServer(groveEngine, metrics)
	cors := middleware.DefaultCORSConfig(cfg.AllowedOrigins)

	route := func(path string, h http.HandlerFunc) {
		http.HandleFunc(path, middleware.ApplyCORS(h, cors))
	}

	route("/health", server.HandleHealth())
	route("/communities", server.HandleCommunities())
	route("/communities/join", server.HandleJoin())
	route("/communities/autojoin", server.HandleAutoJoin())
	route("/communities/joined", server.HandleJoinedCommunities())
	route("/requests", server.HandleJoinRequests())
	route("/requests/approve", server.HandleApproveRequest())
	route("/requests/reject", server.HandleRejectRequest())
	route("/requests/status", server.HandleRequestStatus())
	route("/posts", server.HandlePost())
	route("/posts/like", server.HandleLikePost())
	route("/posts/vote", server.HandleVote())
	route("/comments", server.HandleComment())
	route("/comments/like", server.HandleLikeComment())
	route("/notifications", server.HandleNotifications())
	route("/users/profile", server.HandleUserProfile())

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, nil); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
