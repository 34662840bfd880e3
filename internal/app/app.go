package app

import (
	"binder-backend/internal/achievements"
	"binder-backend/internal/auth"
	"binder-backend/internal/cards"
	"binder-backend/internal/collection"
	"binder-backend/internal/config"
	"binder-backend/internal/currency"
	"binder-backend/internal/database"
	"binder-backend/internal/friends"
	"binder-backend/internal/health"
	"binder-backend/internal/middleware"
	"binder-backend/internal/stats"
	"binder-backend/internal/trade"
	"binder-backend/internal/wishlist"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the DB and Redis handles for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Session (Redis); need the Redis client for the health marker too
	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	// Health request marker (after session)
	app.Use(middleware.HealthMarker(rdb))

	// Response formatter + tracing + route logger
	app.Use(middleware.ResponseFormatter())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	// --- Routes (no auth) ---
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		DB:             db,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", healthHandlers.Dashboard)
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)

	// Auth: register/login are public, me/logout ride the session
	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{
		DB:         db,
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// --- Protected modules (auth required) ---
	if db != nil && rdb != nil {
		converter := currency.New(cfg.ReferenceCurrency, cfg.CurrencyRates)

		// Cards module (browse/search)
		cardsService := &cards.Service{DB: db}
		cardsHandlers := &cards.Handlers{Service: cardsService}
		cardsGroup := app.Group("/api/v1/cards", middleware.RequireAuth())
		cardsGroup.Get("/get-sets", cardsHandlers.GetSets)
		cardsGroup.Get("/get-set-cards/:set_code", cardsHandlers.GetSetCards)
		cardsGroup.Get("/view-card/:card_id", cardsHandlers.ViewCard)
		cardsGroup.Get("/search", cardsHandlers.Search)

		// Wishlist module
		wishlistService := &wishlist.Service{DB: db}
		wishlistHandlers := &wishlist.Handlers{Service: wishlistService}
		wishlistGroup := app.Group("/api/v1/wishlist", middleware.RequireAuth())
		wishlistGroup.Post("/add-card", wishlistHandlers.AddCard)
		wishlistGroup.Delete("/remove-card/:card_id", wishlistHandlers.RemoveCard)
		wishlistGroup.Get("/view-wishlist", wishlistHandlers.ViewWishlist)

		// Achievements module
		achievementsService := &achievements.Service{DB: db}
		achievementsHandlers := &achievements.Handlers{Service: achievementsService}
		achievementsGroup := app.Group("/api/v1/achievements", middleware.RequireAuth())
		achievementsGroup.Get("/view-achievements", achievementsHandlers.ViewAchievements)

		// Collection module (wishlist removal + achievement checks run as
		// post-commit effects of the variant toggles)
		collectionService := &collection.Service{
			DB:           db,
			Wishlist:     wishlistService,
			Achievements: achievementsService,
		}
		collectionHandlers := &collection.Handlers{Service: collectionService}
		collectionGroup := app.Group("/api/v1/collection", middleware.RequireAuth())
		collectionGroup.Post("/add-variant", collectionHandlers.AddVariant)
		collectionGroup.Post("/remove-variant", collectionHandlers.RemoveVariant)
		collectionGroup.Get("/view-collection", collectionHandlers.ViewCollection)
		collectionGroup.Get("/view-card/:card_id", collectionHandlers.ViewCard)

		// Trades module
		tradeService := &trade.Service{DB: db}
		tradeHandlers := &trade.Handlers{Service: tradeService}
		tradeGroup := app.Group("/api/v1/trades", middleware.RequireAuth())
		tradeGroup.Post("/submit-trade", tradeHandlers.SubmitTrade)
		tradeGroup.Get("/get-trades", tradeHandlers.GetTrades)
		tradeGroup.Get("/view-trade/:trade_id", tradeHandlers.ViewTrade)
		tradeGroup.Get("/counter-offer/:trade_id", tradeHandlers.CounterOffer)
		tradeGroup.Post("/respond-trade", tradeHandlers.RespondToTrade)

		// Friends module
		friendsService := &friends.Service{DB: db}
		friendsHandlers := &friends.Handlers{Service: friendsService}
		friendsGroup := app.Group("/api/v1/friends", middleware.RequireAuth())
		friendsGroup.Post("/send-request", friendsHandlers.SendRequest)
		friendsGroup.Post("/accept-request", friendsHandlers.AcceptRequest)
		friendsGroup.Delete("/remove-friend/:user_id", friendsHandlers.RemoveFriend)
		friendsGroup.Get("/view-friends", friendsHandlers.ViewFriends)
		friendsGroup.Get("/view-requests", friendsHandlers.ViewRequests)

		// Stats module
		statsService := &stats.Service{DB: db, Converter: converter}
		statsHandlers := &stats.Handlers{Service: statsService}
		statsGroup := app.Group("/api/v1/stats", middleware.RequireAuth())
		statsGroup.Get("/view-stats", statsHandlers.ViewStats)
	}

	return app, db, rdb, nil
}
