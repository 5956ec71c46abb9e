package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"salesplan/calendar"
	"salesplan/database"
	"salesplan/handlers"
	repository "salesplan/repositories"
	routes "salesplan/routes"
	services "salesplan/services"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// Get MongoDB credentials from environment variables
	username := os.Getenv("MONGO_USERNAME")
	password := os.Getenv("MONGO_PASSWORD")
	cluster := os.Getenv("MONGO_CLUSTER")
	appName := os.Getenv("MONGO_APP_NAME")
	jwtSecret := os.Getenv("JWT_SECRET")

	if username == "" || password == "" || cluster == "" || appName == "" || jwtSecret == "" {
		log.Fatal("Missing required environment variables")
	}

	// Build MongoDB Atlas connection string
	uri := fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		username, password, cluster, appName)

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal("Failed to disconnect from MongoDB:", err)
		}
	}()

	// Set a timeout for the ping operation
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ping the primary to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	fmt.Println("Successfully connected to MongoDB Atlas!")

	// Agent-facing "today" is resolved in this timezone at the HTTP edge
	location, err := time.LoadLocation(envOr("APP_TIMEZONE", "Europe/Moscow"))
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE:", err)
	}

	defaultPlan := envInt("DEFAULT_MONTH_PLAN", services.DefaultMonthPlan)
	targetPct := float64(envInt("PENETRATION_TARGET_PCT", 50))

	// Initialize database
	db := client.Database("salesplan")

	fmt.Println("Creating database indexes...")
	if err := database.CreateIndexes(db); err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}

	// Initialize repositories, services, and handlers
	cal := calendar.Default()
	attemptRepo := repository.NewAttemptRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	planRepo := repository.NewPlanRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	logRepo := repository.NewLogRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	planService := services.NewPlanService(planRepo, attemptRepo, cal, defaultPlan)
	penetrationService := services.NewPenetrationService(attemptRepo, meetingRepo, employeeRepo)
	statsService := services.NewStatsService(attemptRepo, employeeRepo)

	mux := routes.SetupRoutes(routes.Handlers{
		Results:     handlers.NewResultsHandler(attemptRepo, meetingRepo, employeeRepo, logRepo, location),
		Plan:        handlers.NewPlanHandler(planService, location),
		Stats:       handlers.NewStatsHandler(statsService, employeeRepo, location),
		Penetration: handlers.NewPenetrationHandler(penetrationService, location, targetPct),
		Notes:       handlers.NewNotesHandler(noteRepo, employeeRepo, logRepo),
	}, jwtSecret)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	fmt.Printf("Server starting on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return v
}
