package main

import (
	"context"
	"database/sql"
	"log"
	"strings"

	_ "github.com/lib/pq"

	"github.com/GestionTG-25-26/tg-backend/config"
	usersdomain "github.com/GestionTG-25-26/tg-backend/internal/users/domain"
	userrepo "github.com/GestionTG-25-26/tg-backend/internal/users/repository"
	userservice "github.com/GestionTG-25-26/tg-backend/internal/users/service"
)

// RunProvision creates or updates a local account from the command line. The
// API exposes the same operation gated to jefatura; this subcommand exists to
// seed the first jefatura account on an empty database.
func RunProvision(args []string) {
	if len(args) < 3 {
		log.Fatal("usage: worker provision <firebase-uid> <email> <role> [full name]")
	}
	uid, email, role := args[0], args[1], args[2]
	if !usersdomain.IsValidRole(role) {
		log.Fatalf("unknown role %q", role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := userrepo.NewUserRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatalf("migrate usuarios: %v", err)
	}

	user := &usersdomain.User{FirebaseUID: uid, Email: email, Role: role}
	if len(args) > 3 {
		user.FullName = strings.Join(args[3:], " ")
	}
	if err := userservice.NewUserService(repo).Provision(ctx, user); err != nil {
		log.Fatalf("provision: %v", err)
	}
	log.Printf("usuario %s aprovisionado con rol %s", uid, role)
}
