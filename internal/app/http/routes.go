package routes

import (
	authapi "membership-app/internal/api/auth"
	contentapi "membership-app/internal/api/content"
	gateapi "membership-app/internal/api/gate"
	usersapi "membership-app/internal/api/users"
	"membership-app/internal/app/http/middleware"
	"membership-app/internal/identity"
	"membership-app/internal/store"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, idp *identity.Client, profiles store.Store) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth endpoints take raw visitor input
	public := r.Group("/")
	public.Use(middleware.SanitizeInput())
	public.POST("/auth/signup", authapi.SignUp(idp))
	public.POST("/auth/signin", authapi.SignIn(idp, profiles))

	// Everything else resolves the caller first; anonymous is fine here,
	// denial is per-route
	session := r.Group("/")
	session.Use(middleware.Session(idp, profiles))

	session.POST("/auth/signout", authapi.SignOut(profiles))
	session.GET("/auth/session", authapi.GetSession(idp))
	session.GET("/me", usersapi.GetCurrentUser())

	session.POST("/gate/region", gateapi.CheckRegion())
	session.GET("/gate/chip", gateapi.Chip())

	// Whole-page content behind the route policy table
	guarded := session.Group("/")
	guarded.Use(middleware.PageGuard())
	guarded.GET("/tools", contentapi.ListSection("/tools/"))
	guarded.GET("/tools/*page", contentapi.GetPage())
	guarded.GET("/core/briefing", contentapi.GetPage())
	guarded.GET("/edge/briefing", contentapi.GetPage())
	guarded.GET("/account", usersapi.GetCurrentUser())
}
