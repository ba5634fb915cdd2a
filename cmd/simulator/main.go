package main

import (
	"context"
	"log"
	"time"

	"heron-feed/simulator"
)

func main() {
	// Define simulation configuration
	config := simulator.SimConfig{
		NumUsers:         20,
		NumPosts:         50,
		SimulationTime:   10 * time.Minute,
		RenderFrequency:  300.0,
		LikeFrequency:    120.0,
		CommentFrequency: 60.0,
		DeleteRate:       0.05,
		DisconnectRate:   0.01,
		ReconnectRate:    0.05,
		EngineURL:        "http://localhost:8080",
	}

	sim := simulator.NewFeedSimulator(config)
	ctx, cancel := context.WithTimeout(context.Background(), config.SimulationTime)
	defer cancel()

	log.Printf("Starting simulation with configuration:")
	log.Printf("- Engine URL: %s", config.EngineURL)
	log.Printf("- Number of users: %d", config.NumUsers)
	log.Printf("- Number of seeded posts: %d", config.NumPosts)
	log.Printf("- Simulation time: %v", config.SimulationTime)
	log.Printf("- Render frequency: %.2f renders/user/hour", config.RenderFrequency)
	log.Printf("- Like frequency: %.2f toggles/user/hour", config.LikeFrequency)
	log.Printf("- Comment frequency: %.2f comments/user/hour", config.CommentFrequency)
	log.Printf("- Delete rate: %.2f", config.DeleteRate)
	log.Printf("- Disconnect rate: %.2f", config.DisconnectRate)
	log.Printf("- Reconnect rate: %.2f", config.ReconnectRate)

	if err := sim.Run(ctx); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	metrics := sim.GetMetrics()
	log.Printf("\nSimulation completed. Final metrics:")
	log.Printf("- Total users: %d", metrics.TotalUsers)
	log.Printf("- Active users at end: %d", metrics.ActiveUsers)
	log.Printf("- Total renders: %d", metrics.TotalRenders)
	log.Printf("- Total like toggles: %d", metrics.TotalLikes)
	log.Printf("- Total comments: %d", metrics.TotalComments)
	log.Printf("- Total deletes: %d", metrics.TotalDeletes)
	log.Printf("- Error count: %d", metrics.ErrorCount)
}
