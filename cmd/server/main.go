package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/learnquest/backend/internal/auth"
	"github.com/learnquest/backend/internal/database"
	"github.com/learnquest/backend/internal/middleware"
	"github.com/learnquest/backend/internal/multiplier"
	"github.com/learnquest/backend/internal/perks"
	"github.com/learnquest/backend/internal/progression"
	"github.com/rs/cors"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	perkService := perks.NewService(perks.NewStore(db))
	multiplierService := multiplier.NewService(multiplier.NewStore(db))
	progressionStore := progression.NewStore(db)
	progressionService := progression.NewService(progressionStore, multiplierService, perkService)

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	progressionHandler := progression.NewHandler(progressionService)
	perkHandler := perks.NewHandler(perkService)
	multiplierHandler := multiplier.NewHandler(multiplierService, perkService, progressionService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/levels", progressionHandler.GetLevelInfo).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	// Progression
	protected.HandleFunc("/progress", progressionHandler.GetProgress).Methods("GET")
	protected.HandleFunc("/progress/xp", progressionHandler.AwardXP).Methods("POST")
	protected.HandleFunc("/progress/stats", progressionHandler.UpdateStats).Methods("POST")

	// Perks
	protected.HandleFunc("/courses/{courseID}/perks", perkHandler.GetPerks).Methods("GET")
	protected.HandleFunc("/courses/{courseID}/perks/{perkID}/request", perkHandler.RequestRedemption).Methods("POST")
	protected.HandleFunc("/courses/{courseID}/perk-usage", perkHandler.GetMyUsage).Methods("GET")
	protected.HandleFunc("/courses/{courseID}/xp-config", perkHandler.GetXPConfig).Methods("GET")

	// Multiplier events
	protected.HandleFunc("/courses/{courseID}/multiplier", multiplierHandler.GetMultiplier).Methods("GET")
	protected.HandleFunc("/courses/{courseID}/effective-xp", multiplierHandler.EffectiveXP).Methods("GET")

	// Teacher-only routes
	teacher := protected.PathPrefix("").Subrouter()
	teacher.Use(middleware.RequireTeacher)
	teacher.HandleFunc("/courses/{courseID}/perks", perkHandler.SavePerks).Methods("PUT")
	teacher.HandleFunc("/courses/{courseID}/xp-config", perkHandler.SaveXPConfig).Methods("PUT")
	teacher.HandleFunc("/courses/{courseID}/perk-requests", perkHandler.ListRequests).Methods("GET")
	teacher.HandleFunc("/perk-requests/{id}/approve", perkHandler.ApproveRequest).Methods("POST")
	teacher.HandleFunc("/perk-requests/{id}/deny", perkHandler.DenyRequest).Methods("POST")
	teacher.HandleFunc("/courses/{courseID}/multiplier", multiplierHandler.SetMultiplier).Methods("PUT")
	teacher.HandleFunc("/courses/{courseID}/multiplier", multiplierHandler.ClearMultiplier).Methods("DELETE")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
