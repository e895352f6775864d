package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/xnorik/xnorik-backend/internal/auth"
	"github.com/xnorik/xnorik-backend/internal/db"
	"github.com/xnorik/xnorik-backend/internal/handlers"
	"github.com/xnorik/xnorik-backend/internal/middleware"
	"github.com/xnorik/xnorik-backend/internal/notify"
	"github.com/xnorik/xnorik-backend/internal/tracking"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	log.Info("Connected to MongoDB")

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "xnorik"
	}
	database := client.Database(dbName)

	serviceColl := database.Collection("servicios")
	services := &db.MongoServiceCollection{Collection: serviceColl}
	technicians := &db.MongoTechnicianCollection{Collection: database.Collection("tecnicos")}

	if err := db.EnsureIndexes(context.Background(), serviceColl); err != nil {
		log.WithError(err).Warn("Failed to ensure indexes")
	}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("Failed to create auth service")
	}

	resolver := tracking.NewResolver(services)
	watcher := tracking.NewWatcher(services)

	authHandler := handlers.NewAuthHandler(authService, technicians)
	serviceHandler := handlers.NewServiceHandler(services)
	trackHandler := handlers.NewTrackHandler(resolver, watcher)
	chatHandler := handlers.NewChatHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/profile", authHandler.GetProfile)
	mux.HandleFunc("POST /api/services", serviceHandler.Create)
	mux.HandleFunc("GET /api/services", serviceHandler.List)
	mux.HandleFunc("GET /api/services/{id}", serviceHandler.Get)
	mux.HandleFunc("POST /api/services/{id}/start", serviceHandler.Start)
	mux.HandleFunc("POST /api/services/{id}/advance", serviceHandler.Advance)
	mux.HandleFunc("DELETE /api/services/{id}", serviceHandler.Delete)
	mux.HandleFunc("GET /api/track/{code}", trackHandler.Lookup)
	mux.HandleFunc("GET /api/track/{code}/live", trackHandler.Live)
	mux.HandleFunc("POST /api/chat", chatHandler.Respond)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	authMiddleware := middleware.NewAuthMiddleware(authService)
	handler := authMiddleware.Authenticate(mux)

	// Change streams need a replica set; the notifier is best-effort and
	// only runs when a broker is configured.
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		pub, err := notify.NewPublisher(broker, "xnorik-server")
		if err != nil {
			log.WithError(err).Warn("Failed to connect to MQTT broker, notifier disabled")
		} else {
			notifier := notify.NewNotifier(services, pub)
			go func() {
				if err := notifier.Run(context.Background()); err != nil && err != context.Canceled {
					log.WithError(err).Warn("Status-change notifier stopped")
				}
			}()
			log.WithField("broker", broker).Info("Status-change notifier started")
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
