package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/domain/models"
	"github.com/robinoyako/sips/internal/server/handlers"
	"github.com/robinoyako/sips/internal/service/auth"
)

// Handlers bundles every HTTP adapter the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Stock     *handlers.StockHandler
	Remainder *handlers.RemainderHandler
	Report    *handlers.ReportHandler
	Reset     *handlers.ResetHandler
	Ingest    *handlers.IngestHandler
}

// New wires the Gin engine with required routes and middlewares.
//
// Read access to stock and remainder is open to every role; reports, uploads
// and baseline mutations stay with the owner and head kitchen, mirroring the
// stall's page-level access rules.
func New(h Handlers, authSvc *auth.Service, internalToken string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/login", h.Auth.Login)
	api.POST("/logout", h.Auth.Logout)

	managers := []string{models.RoleOwner, models.RoleHeadKitchen}
	everyone := []string{models.RoleOwner, models.RoleHeadKitchen, models.RoleKasir}

	session := sessionMiddleware(authSvc)

	laporan := api.Group("/laporan-harian", session, requireRole(managers...))
	laporan.GET("", h.Report.ListDates)
	laporan.GET("/:tanggal", h.Report.GetByDate)
	laporan.GET("/:tanggal/export", h.Report.Export)

	// The reset trigger also accepts the internal token so the external cron
	// job can call it without an interactive login.
	api.POST("/reset-harian", resetGuard(internalToken, authSvc, managers...), h.Reset.Run)

	sisa := api.Group("/sisa", session, requireRole(everyone...))
	sisa.GET("", h.Remainder.List)
	sisa.POST("", h.Remainder.Create)
	sisa.PUT("/:id", h.Remainder.Update)
	sisa.DELETE("/:id", h.Remainder.Delete)

	stok := api.Group("/stok_awal", session)
	stok.GET("", requireRole(everyone...), h.Stock.List)
	stok.GET("/:id", requireRole(everyone...), h.Stock.Get)
	stok.POST("", requireRole(managers...), h.Stock.Create)
	stok.PUT("/:id", requireRole(managers...), h.Stock.Update)
	stok.DELETE("/:id", requireRole(managers...), h.Stock.Delete)

	api.POST("/upload", session, requireRole(managers...), h.Ingest.Upload)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

const roleContextKey = "sessionRole"

// verifySession resolves the signed session cookie into claims. On failure it
// aborts the request with 401 and returns false.
func verifySession(c *gin.Context, authSvc *auth.Service) (*auth.Claims, bool) {
	token, err := c.Cookie(auth.SessionCookie)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "harus login"})
		return nil, false
	}

	claims, err := authSvc.Verify(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sesi tidak valid"})
		return nil, false
	}
	return claims, true
}

// sessionMiddleware validates the signed session cookie and stores the role
// in the request context.
func sessionMiddleware(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifySession(c, authSvc)
		if !ok {
			return
		}
		c.Set(roleContextKey, claims.Role)
		c.Next()
	}
}

// requireRole rejects sessions whose role is not in the allowed set.
func requireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, _ := c.Get(roleContextKey)
		roleStr, _ := role.(string)
		if _, ok := allowed[roleStr]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "akses ditolak"})
			return
		}
		c.Next()
	}
}

// resetGuard admits requests carrying the configured X-Internal-Token header;
// everything else goes through the regular session and role checks.
func resetGuard(token string, authSvc *auth.Service, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		if token != "" && c.GetHeader("X-Internal-Token") == token {
			c.Next()
			return
		}

		claims, ok := verifySession(c, authSvc)
		if !ok {
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "akses ditolak"})
			return
		}

		c.Set(roleContextKey, claims.Role)
		c.Next()
	}
}
