package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/config"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/db"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/auth"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/chat"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/favorite"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/middleware"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/notifications"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/poster"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/profile"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/status"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/user"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/logger"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/favorites"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/messaging"
	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Loading configuration: %v", err)
	}

	zl, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Building logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.Database.URL)
	if err != nil {
		zl.Fatal("connecting to database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn); err != nil {
		zl.Fatal("migrating database", zap.Error(err))
	}

	tokens := auth.NewTokens(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	profileStore := profiles.NewStore(conn)
	favoriteService := favorites.NewService(favorites.NewPostgresStore(conn), profileStore, zl.Named("favorites"))
	gateway := messaging.NewGateway(conn)

	notificationHub := notifications.NewHub(zl)
	notifier := notifications.NewNotifier(conn, notificationHub, zl)

	chatHandler := chat.NewHandler(gateway, chat.NewHub(), notifier, tokens, zl)
	if cfg.Features.ChatRequiresConnection {
		chatHandler.RequireConnection(favoriteService)
	}
	favoriteHandler := favorite.NewHandler(favoriteService, notifier, zl)
	profileHandler := profile.NewHandler(profileStore, zl)

	r := mux.NewRouter()

	// Public routes (no auth required)
	r.HandleFunc("/api/auth/signup", auth.SignupHandler(conn, tokens, zl)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/login", auth.LoginHandler(conn, tokens, zl)).Methods("POST", "OPTIONS")
	if cfg.Features.SeedEnabled {
		seeder := handlers.NewSeeder(conn, handlers.SeedFromClock(), zl)
		r.HandleFunc("/api/dev/seed", seeder.GenerateTestDataHandler).Methods("POST", "OPTIONS")
	}

	// Websockets authenticate with the token query parameter
	r.HandleFunc("/ws/notifications", notifications.HandleNotificationWebSocket(notificationHub, tokens, zl))
	r.HandleFunc("/ws/conversations/{id}", chatHandler.HandleWebSocket)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.Middleware(tokens))

	// Me routes
	protected.HandleFunc("/me", user.GetMyBasicInfoHandler(conn, profileStore, zl)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/me/role", profileHandler.ChooseRole).Methods("POST", "OPTIONS")
	protected.HandleFunc("/me/profile", profileHandler.GetMyProfile).Methods("GET", "OPTIONS")
	protected.HandleFunc("/me/profile", profileHandler.UpdateMyProfile).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/users/{id}", user.GetUserHandler(conn, zl)).Methods("GET", "OPTIONS")

	// Profile routes
	protected.HandleFunc("/artists", profileHandler.ListArtists).Methods("GET", "OPTIONS")
	protected.HandleFunc("/artists/{id}", profileHandler.GetArtist).Methods("GET", "OPTIONS")
	protected.HandleFunc("/theaters", profileHandler.ListTheaters).Methods("GET", "OPTIONS")
	protected.HandleFunc("/theaters/{id}", profileHandler.GetTheater).Methods("GET", "OPTIONS")
	protected.HandleFunc("/discover", profileHandler.Discover).Methods("GET", "OPTIONS")

	// Connection routes
	protected.HandleFunc("/favorite", favoriteHandler.SendRequest).Methods("POST", "OPTIONS")
	protected.HandleFunc("/favorite", favoriteHandler.Remove).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/favorite", favoriteHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/favorite/accept", favoriteHandler.Accept).Methods("POST", "OPTIONS")
	protected.HandleFunc("/favorite/reject", favoriteHandler.Reject).Methods("POST", "OPTIONS")
	protected.HandleFunc("/favorite/requests", favoriteHandler.Requests).Methods("GET", "OPTIONS")
	protected.HandleFunc("/favorite/all", favoriteHandler.All).Methods("GET", "OPTIONS")

	// Chat routes
	protected.HandleFunc("/conversations", chatHandler.ListConversations).Methods("GET", "OPTIONS")
	protected.HandleFunc("/conversations", chatHandler.CreateConversation).Methods("POST", "OPTIONS")
	protected.HandleFunc("/conversations/{id}/messages", chatHandler.ListMessages).Methods("GET", "OPTIONS")
	protected.HandleFunc("/conversations/{id}/messages", chatHandler.SendMessage).Methods("POST", "OPTIONS")
	protected.HandleFunc("/conversations/{id}/read", chatHandler.MarkRead).Methods("POST", "OPTIONS")

	// Notification routes
	protected.HandleFunc("/notifications", notifications.GetNotificationsHandler(notifier, zl)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notifications/read", notifications.MarkNotificationsAsReadHandler(notifier, zl)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/dashboard", notifications.DashboardHandler(notifier, favoriteService, gateway, zl)).Methods("GET", "OPTIONS")

	// Poster routes
	protected.HandleFunc("/posters", poster.ListPostersHandler(conn, zl)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/posters", poster.CreatePosterHandler(conn, zl)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/posters/{id}", poster.DeletePosterHandler(conn, zl)).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/posters/{id}/like", poster.ToggleLikeHandler(conn, zl)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/posters/{id}/comments", poster.ListCommentsHandler(conn, zl)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/posters/{id}/comments", poster.CreateCommentHandler(conn, zl)).Methods("POST", "OPTIONS")

	// Status routes
	protected.HandleFunc("/status", status.GetMyStatusHandler(profileStore, zl)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/status/{id}", status.GetStatusHandler(profileStore, zl)).Methods("GET", "OPTIONS")

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(middleware.Logging(zl)(r)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zl.Warn("shutting down server", zap.Error(err))
		}
	}()

	zl.Info("server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("environment", cfg.Server.Environment),
		zap.Bool("chat_requires_connection", cfg.Features.ChatRequiresConnection))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
