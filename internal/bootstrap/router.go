package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/GestionTG-25-26/tg-backend/internal/api/http"
	apimw "github.com/GestionTG-25-26/tg-backend/internal/api/http/middleware"
	authmw "github.com/GestionTG-25-26/tg-backend/internal/auth/middleware"
	proyectoshttp "github.com/GestionTG-25-26/tg-backend/internal/proyectos/http"
	proyectoservice "github.com/GestionTG-25-26/tg-backend/internal/proyectos/service"
	usershttp "github.com/GestionTG-25-26/tg-backend/internal/users/http"
	userservice "github.com/GestionTG-25-26/tg-backend/internal/users/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	Redis       *redis.Client

	// AuthClient may be nil in local development; routes then run
	// without token verification.
	AuthClient *fbauth.Client
	Users      *userservice.UserService
	Proyectos  *proyectoservice.ProyectoService
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(apimw.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	if dep.AuthClient != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.AuthClient))
	}
	api.Use(authmw.WithUser(dep.Users))

	proyectosGroup := api.Group("/proyectos")
	proyectoshttp.Register(proyectosGroup, proyectoshttp.NewHandler(dep.Proyectos))

	usuariosGroup := api.Group("/usuarios")
	usershttp.Register(usuariosGroup, usershttp.NewHandler(dep.Users))

	return r
}
