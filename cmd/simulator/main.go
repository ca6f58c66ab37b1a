package main

import (
	"context"
	"log"
	"time"

	"campus-grove/simulator"
)

func main() {
	config := simulator.SimConfig{
		NumUsers:         50,
		NumCommunities:   5,
		ChildrenPerGroup: 2,
		SimulationTime:   10 * time.Minute,
		PostFrequency:    100.0,
		CommentFrequency: 60.0,
		VoteFrequency:    100.0,
		LikeFrequency:    80.0,
		AdminPercentage:  0.2,
		ZipfS:            1.07,
		EngineURL:        "http://localhost:8080",
	}

	sim := simulator.NewSimulator(config)
	ctx, cancel := context.WithTimeout(context.Background(), config.SimulationTime)
	defer cancel()

	log.Printf("Starting simulation with configuration:")
	log.Printf("- Engine URL: %s", config.EngineURL)
	log.Printf("- Number of users: %d", config.NumUsers)
	log.Printf("- Root communities: %d (with %d children each)", config.NumCommunities, config.ChildrenPerGroup)
	log.Printf("- Simulation time: %v", config.SimulationTime)
	log.Printf("- Post frequency: %.2f posts/user/hour", config.PostFrequency)
	log.Printf("- Comment frequency: %.2f comments/user/hour", config.CommentFrequency)
	log.Printf("- Admin percentage: %.1f%%", config.AdminPercentage*100)
	log.Printf("- Zipf parameter: %.2f", config.ZipfS)

	if err := sim.Run(ctx); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	metrics := sim.GetMetrics()
	log.Printf("\nSimulation completed. Final metrics:")
	log.Printf("- Total users: %d", metrics.TotalUsers)
	log.Printf("- Total communities: %d", metrics.TotalCommunities)
	log.Printf("- Total posts: %d", metrics.TotalPosts)
	log.Printf("- Total comments: %d", metrics.TotalComments)
	log.Printf("- Total votes: %d", metrics.TotalVotes)
	log.Printf("- Total likes: %d", metrics.TotalLikes)
	log.Printf("- Average latency: %v", metrics.AverageLatency)
	log.Printf("- Error count: %d", metrics.ErrorCount)
}
