package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/boilerbuddy/internal/ai"
	"github.com/example/boilerbuddy/internal/challenges"
	"github.com/example/boilerbuddy/internal/database"
	"github.com/example/boilerbuddy/internal/excel"
	"github.com/example/boilerbuddy/internal/quiz"
	"github.com/example/boilerbuddy/internal/scheduler"
	"github.com/example/boilerbuddy/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	importPath := flag.String("import-topics", "", "import a topic catalog spreadsheet and exit")
	flag.Parse()

	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if *importPath != "" {
		runImport(*importPath)
		return
	}

	var generator quiz.QuestionGenerator
	if gen, err := ai.New(); err != nil {
		log.Printf("Question generator unavailable (%v), serving fallback questions", err)
		generator = ai.Offline{}
	} else {
		generator = gen
	}

	quizSvc := quiz.NewService(
		database.NewProgressRepository(),
		database.NewAttemptRepository(),
		database.NewUserRepository(),
		database.NewAchievementRepository(),
		database.NewActivityRepository(),
		database.NewTopicRepository(),
		generator,
	)
	challengeSvc := challenges.NewService(
		database.NewChallengeRepository(),
		database.NewUserRepository(),
		database.NewActivityRepository(),
	)

	jobs := scheduler.New()
	jobs.Start()
	defer jobs.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: server.New(quizSvc, challengeSvc).Router(),
	}

	go func() {
		log.Printf("Server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped successfully")
}

func runImport(path string) {
	result, err := excel.ImportTopics(excel.DefaultImportConfig(path))
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Processed %d rows: %d imported, %d skipped",
		result.TotalProcessed, result.Imported, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("  %s", e)
	}
}
