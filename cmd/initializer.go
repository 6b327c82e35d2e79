package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"soundstageBack/internal/config"
	"soundstageBack/internal/handlers"
	"soundstageBack/internal/repositories"
	"soundstageBack/internal/search"
)

type application struct {
	errorLog      *log.Logger
	infoLog       *log.Logger
	searchHandler *handlers.SearchHandler
	searchService *search.Service
	db            *sql.DB
	signingKey    string
}

// searchLogger adapts the standard loggers to the search module's interface.
type searchLogger struct {
	info *log.Logger
	err  *log.Logger
}

func (l searchLogger) Infof(format string, args ...interface{})  { l.info.Printf(format, args...) }
func (l searchLogger) Errorf(format string, args ...interface{}) { l.err.Printf(format, args...) }

func initializeApp(db *sql.DB, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	logger := searchLogger{info: infoLog, err: errorLog}

	// Repositories
	eventRepo := &repositories.EventRepository{DB: db}
	businessRepo := &repositories.BusinessRepository{DB: db}
	contentRepo := &repositories.ContentRepository{DB: db}
	userRepo := &repositories.UserRepository{DB: db}
	organizationRepo := &repositories.OrganizationRepository{DB: db}
	analyticsRepo := &repositories.SearchAnalyticsRepository{DB: db}

	adapters := []search.SourceAdapter{
		search.NewEventAdapter(eventRepo),
		search.NewBusinessAdapter(businessRepo),
		search.NewContentAdapter(contentRepo),
		search.NewUserAdapter(userRepo),
		search.NewOrganizationAdapter(organizationRepo),
	}

	var cache search.ResponseCache
	if cfg.Cache.Driver == "redis" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		cache = search.NewRedisCache(client, search.ResponseTTL)
	} else {
		cache = search.NewMemoryCache(search.ResponseTTL)
	}

	suggestions := search.NewSuggestionGenerator(businessRepo, logger)
	searchService := search.NewService(adapters, suggestions, cache, analyticsRepo, logger)

	searchHandler := &handlers.SearchHandler{
		Service:    searchService,
		SigningKey: cfg.Auth.SigningKey,
	}

	return &application{
		errorLog:      errorLog,
		infoLog:       infoLog,
		searchHandler: searchHandler,
		searchService: searchService,
		db:            db,
		signingKey:    cfg.Auth.SigningKey,
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
