package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"recipeclip/internal/clipper"
	"recipeclip/internal/config"
	"recipeclip/internal/database"
	"recipeclip/internal/extract"
	"recipeclip/internal/llm"
	"recipeclip/internal/media"
	"recipeclip/internal/metrics"
	"recipeclip/internal/recipe"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var textGen llm.TextGenerator
	if cfg.AIProvider == "groq" {
		textGen = llm.NewGroqClient(cfg)
	} else {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		defer geminiClient.Close()
		textGen = geminiClient
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	recipeRepo := recipe.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	var mediaClient media.Client
	if cfg.MediaURL != "" {
		mediaClient = media.NewClient(cfg)
	}

	clip := clipper.NewClipper(extract.NewAIExtractor(textGen), mediaClient, recipeRepo, metricsStore)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "extract":
		if len(os.Args) < 3 {
			log.Fatal("Usage: recipeclip extract <url>")
		}
		result, err := clip.ClipURL(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Extraction failed: %v", err)
		}
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		fmt.Println(string(out))
	case "list":
		stored, err := recipeRepo.List(ctx, 50)
		if err != nil {
			log.Fatalf("Failed to list recipes: %v", err)
		}
		for _, s := range stored {
			fmt.Printf("%d\t%s\t%s\n", s.ID, s.Result.Recipe.Title, s.SourceURL)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(ctx, *days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: recipeclip <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  extract <url>      Import a recipe from a URL and print it")
	fmt.Println("  list               Show the most recent imported recipes")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
