// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/autovilla/dealership-backend/internal/config"
	"github.com/autovilla/dealership-backend/internal/controller"
	"github.com/autovilla/dealership-backend/internal/db"
	"github.com/autovilla/dealership-backend/internal/mailer"
	"github.com/autovilla/dealership-backend/internal/middleware"
	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/queue"
	"github.com/autovilla/dealership-backend/internal/repository"
	"github.com/autovilla/dealership-backend/internal/service"
	"github.com/autovilla/dealership-backend/internal/storage"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}

	conn, err := db.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}
	defer conn.Close()

	images, err := storage.NewS3Store(context.Background(), cfg.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing image store")
	}

	publisher, err := queue.NewAMQPPublisher(cfg.AMQP.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to RabbitMQ")
	}
	defer publisher.Close()

	zoho := mailer.NewZohoMailer(cfg.SMTP, cfg.MailSendTimeout, log)
	templates := mailer.NewTemplates(zoho, cfg.FrontendURL)

	adminRepo := &repository.AdminRepository{DB: conn}
	carRepo := &repository.CarRepository{DB: conn}
	blogRepo := &repository.BlogRepository{DB: conn}
	commentRepo := &repository.CommentRepository{DB: conn}
	reviewRepo := &repository.ReviewRepository{DB: conn}
	subscriberRepo := &repository.SubscriberRepository{DB: conn}
	sellRepo := &repository.SellRequestRepository{DB: conn}
	broadcastRepo := &repository.BroadcastRepository{DB: conn}

	authService := &service.AuthService{AdminRepo: adminRepo, JWT: cfg.JWT}
	adminService := &service.AdminService{AdminRepo: adminRepo}
	carService := &service.CarService{CarRepo: carRepo, Images: images, Log: log}
	blogService := &service.BlogService{BlogRepo: blogRepo, CommentRepo: commentRepo, Images: images, Log: log}
	reviewService := &service.ReviewService{ReviewRepo: reviewRepo}
	newsletterService := &service.NewsletterService{SubscriberRepo: subscriberRepo, Queue: publisher, Log: log}
	sellService := &service.SellRequestService{
		SellRepo:    sellRepo,
		Images:      images,
		Queue:       publisher,
		NotifyEmail: cfg.SMTP.From,
		Log:         log,
	}
	broadcastService := &service.BroadcastService{
		BroadcastRepo:  broadcastRepo,
		SubscriberRepo: subscriberRepo,
		Mailer:         templates,
		Images:         images,
		BatchSize:      cfg.BroadcastBatchSize,
		Log:            log,
	}
	dashboardService := &service.DashboardService{
		CarRepo:        carRepo,
		BlogRepo:       blogRepo,
		CommentRepo:    commentRepo,
		ReviewRepo:     reviewRepo,
		SubscriberRepo: subscriberRepo,
		SellRepo:       sellRepo,
		BroadcastRepo:  broadcastRepo,
	}

	authCtrl := &controller.AuthController{AuthService: authService}
	adminCtrl := &controller.AdminController{AdminService: adminService}
	carCtrl := &controller.CarController{CarService: carService}
	blogCtrl := &controller.BlogController{BlogService: blogService}
	reviewCtrl := &controller.ReviewController{ReviewService: reviewService}
	newsletterCtrl := &controller.NewsletterController{NewsletterService: newsletterService}
	sellCtrl := &controller.SellRequestController{SellRequestService: sellService}
	broadcastCtrl := &controller.BroadcastController{BroadcastService: broadcastService}
	dashboardCtrl := &controller.DashboardController{DashboardService: dashboardService}

	requireAuth := middleware.RequireAuth(authService)
	contentRoles := middleware.RequireRole(model.RoleSuperAdmin, model.RoleEditor, model.RoleModerator)
	editorRoles := middleware.RequireRole(model.RoleSuperAdmin, model.RoleEditor)
	superOnly := middleware.RequireRole(model.RoleSuperAdmin)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public surface
		r.Post("/auth/login", authCtrl.Login)

		r.Get("/cars", carCtrl.List)
		r.Get("/cars/featured", carCtrl.Featured)
		r.Get("/cars/{id}", carCtrl.Get)

		r.Get("/blogs", blogCtrl.List)
		r.Get("/blogs/{slug}", blogCtrl.Get)
		r.Get("/blogs/{slug}/related", blogCtrl.Related)
		r.Get("/blogs/{id}/comments", blogCtrl.Comments)
		r.Post("/blogs/{id}/comments", blogCtrl.AddComment)

		r.Get("/reviews", reviewCtrl.List)
		r.Post("/reviews", reviewCtrl.Create)

		r.Post("/newsletter/subscribe", newsletterCtrl.Subscribe)
		r.Get("/newsletter/unsubscribe", newsletterCtrl.Unsubscribe)

		r.Post("/sell-requests", sellCtrl.Create)

		// Authenticated admin surface
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/auth/me", authCtrl.Me)

			r.With(contentRoles).Route("/broadcasts", func(r chi.Router) {
				r.Post("/send", broadcastCtrl.Send)
				r.Get("/", broadcastCtrl.List)
				r.Get("/stats", broadcastCtrl.Stats)
				r.Get("/{id}", broadcastCtrl.Get)
				r.Delete("/{id}", broadcastCtrl.Delete)
			})

			r.With(editorRoles).Group(func(r chi.Router) {
				r.Post("/cars", carCtrl.Create)
				r.Put("/cars/{id}", carCtrl.Update)
				r.Delete("/cars/{id}", carCtrl.Delete)

				r.Get("/admin/blogs", blogCtrl.ListAll)
				r.Post("/blogs", blogCtrl.Create)
				r.Put("/blogs/{id}", blogCtrl.Update)
				r.Delete("/blogs/{id}", blogCtrl.Delete)
			})

			r.With(contentRoles).Group(func(r chi.Router) {
				r.Get("/admin/comments", blogCtrl.PendingComments)
				r.Put("/comments/{id}/approve", blogCtrl.ApproveComment)
				r.Delete("/comments/{id}", blogCtrl.DeleteComment)

				r.Get("/admin/reviews", reviewCtrl.ListAll)
				r.Put("/reviews/{id}/approve", reviewCtrl.Approve)
				r.Delete("/reviews/{id}", reviewCtrl.Delete)

				r.Get("/newsletter", newsletterCtrl.List)
				r.Delete("/newsletter/{id}", newsletterCtrl.Delete)

				r.Get("/sell-requests", sellCtrl.List)
				r.Put("/sell-requests/{id}/status", sellCtrl.UpdateStatus)
				r.Delete("/sell-requests/{id}", sellCtrl.Delete)

				r.Get("/dashboard/stats", dashboardCtrl.Stats)
			})

			r.With(superOnly).Route("/admins", func(r chi.Router) {
				r.Get("/", adminCtrl.List)
				r.Post("/", adminCtrl.Create)
				r.Put("/{id}", adminCtrl.Update)
				r.Delete("/{id}", adminCtrl.Delete)
			})
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("🚀 server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
