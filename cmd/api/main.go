package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"nuptio/internal/adapter/api"
	"nuptio/internal/adapter/api/handler"
	apimiddleware "nuptio/internal/adapter/api/middleware"
	"nuptio/internal/adapter/api/router"
	"nuptio/internal/adapter/repository"
	"nuptio/internal/domain/service"
	"nuptio/internal/infrastructure/firebase"
	"nuptio/internal/infrastructure/ratelimit"
	"nuptio/internal/infrastructure/storage"
	"nuptio/internal/infrastructure/websocket"
	"nuptio/internal/usecase"
	"nuptio/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	// Service account JSON from the environment wins (production); fall back
	// to a credentials file for local development.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			credentialsPath = "./service-account.json"
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}
		log.Printf("Using Firebase service account from file: %s", credentialsPath)
		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	categoryRepo := repository.NewFirestoreCategoryRepository(firestoreClient)
	storefrontRepo := repository.NewFirestoreStorefrontRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	quoteRepo := repository.NewFirestoreQuoteRepository(firestoreClient)
	subscriptionRepo := repository.NewFirestoreSubscriptionRepository(firestoreClient)
	searchHistoryRepo := repository.NewFirestoreSearchHistoryRepository(firestoreClient)
	fileMetadataRepo := repository.NewFirestoreFileMetadataRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	wsManager := websocket.NewManager(firebaseAuthClient, userRepo, storefrontRepo, conversationRepo, rateLimiter)
	wsManager.Start(ctx)

	billingService := service.NewFlatRateBillingService("EUR")

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, searchHistoryRepo, firebaseAuthClient)
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo)
	storefrontUseCase := usecase.NewStorefrontUseCase(storefrontRepo, categoryRepo, userRepo, searchHistoryRepo)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, storefrontRepo)
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, storefrontRepo, conversationRepo)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(subscriptionRepo, storefrontRepo, billingService)
	conversationUseCase := usecase.NewConversationUseCase(conversationRepo, userRepo, storefrontRepo, wsManager, rateLimiter)
	mediaUseCase := usecase.NewMediaUseCase(fileMetadataRepo, storefrontRepo, storageClient)

	handler.Setup(
		authUseCase,
		userUseCase,
		categoryUseCase,
		storefrontUseCase,
		favoriteUseCase,
		quoteUseCase,
		subscriptionUseCase,
		conversationUseCase,
		mediaUseCase,
	)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)
	providerMiddleware := apimiddleware.NewProviderMiddleware(userRepo)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(rateLimiter)

	wsHandler := handler.NewWebSocketHandler(wsManager)
	healthHandler := handler.NewHealthHandler(firebaseAuthClient, wsManager)
	devTokenIssuer := firebase.NewDevTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	devTokenHandler := handler.NewDevTokenHandler(firebaseAuthClient, devTokenIssuer)

	router.Setup(e, authMiddleware, adminMiddleware, providerMiddleware, rateLimitMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)
	router.SetupHealthRouter(e, healthHandler)
	router.SetupDevRouter(e, devTokenHandler, cfg.Environment)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
