package main

import (
	"context"
	"database/sql"
	"log"

	fbauth "firebase.google.com/go/v4/auth"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/GestionTG-25-26/tg-backend/config"
	"github.com/GestionTG-25-26/tg-backend/internal/auth"
	"github.com/GestionTG-25-26/tg-backend/internal/bootstrap"
	"github.com/GestionTG-25-26/tg-backend/internal/eventbus"
	proyectorepo "github.com/GestionTG-25-26/tg-backend/internal/proyectos/repository"
	proyectoservice "github.com/GestionTG-25-26/tg-backend/internal/proyectos/service"
	"github.com/GestionTG-25-26/tg-backend/internal/storage/files"
	userrepo "github.com/GestionTG-25-26/tg-backend/internal/users/repository"
	userservice "github.com/GestionTG-25-26/tg-backend/internal/users/service"
)

const serviceName = "tg-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      cfg.Database.DSN(),
		MaxConns: int32(cfg.Database.MaxConns),
	})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	var authClient *fbauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, token verification disabled")
	}

	usersRepo := userrepo.NewUserRepository(db)
	if err := usersRepo.Migrate(ctx); err != nil {
		log.Fatalf("migrate usuarios: %v", err)
	}
	users := userservice.NewUserService(usersRepo)

	proyectosRepo := proyectorepo.NewProyectoRepository(db)
	if err := proyectosRepo.Migrate(ctx); err != nil {
		log.Fatalf("migrate proyectos: %v", err)
	}

	storage, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	proyectos := proyectoservice.NewProyectoService(
		proyectosRepo,
		eventbus.NewRedisPublisher(rdb),
		storage,
		users,
	)

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		DB:          pool,
		Redis:       rdb,
		AuthClient:  authClient,
		Users:       users,
		Proyectos:   proyectos,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func buildStorage(ctx context.Context, cfg *config.Config) (proyectoservice.FileStorage, error) {
	if cfg.Storage.Driver == "s3" {
		return files.NewS3Storage(ctx, cfg.Storage.AWSRegion, cfg.Storage.S3Bucket)
	}
	return files.NewLocalStorage(cfg.Storage.LocalDir), nil
}
