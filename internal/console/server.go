// Package console serves the admin console API on localhost. It is the
// routing layer of the client: every handler delegates to a page view-state
// or a remote-service client, and no business rule lives here.
package console

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shopadmin/internal/api"
	"shopadmin/internal/forecast"
	"shopadmin/internal/session"
	"shopadmin/internal/upload"
	"shopadmin/internal/view"
)

type Server struct {
	engine   *gin.Engine
	sess     *session.Store
	backend  *api.Client
	ml       *api.MLClient
	orders   *view.OrdersPage
	products *view.ProductsPage
	// one processor per form so a slow encode blocks only its own form
	createForm *upload.Processor
	updateForm *upload.Processor
	forecasts  *forecast.Generator
}

func NewServer(sess *session.Store, backend *api.Client, ml *api.MLClient) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{
		engine:     r,
		sess:       sess,
		backend:    backend,
		ml:         ml,
		orders:     view.NewOrdersPage(backend),
		products:   view.NewProductsPage(backend),
		createForm: upload.NewProcessor(),
		updateForm: upload.NewProcessor(),
		forecasts:  forecast.NewGenerator(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/login", s.login)
		v1.POST("/logout", s.logout)
		v1.GET("/session", s.sessionStatus)

		auth := v1.Group("", s.requireSession)
		{
			auth.GET("/report", s.report)

			orders := auth.Group("/orders")
			orders.GET("", s.listOrders)
			orders.POST("/refresh", s.refreshOrders)
			orders.PUT(":id/status", s.setOrderStatus)

			products := auth.Group("/products")
			products.GET("", s.listProducts)
			products.GET(":id", s.getProduct)
			products.POST("/refresh", s.refreshProducts)
			products.POST("/sort/:key", s.toggleProductSort)
			products.POST("", s.createProduct)
			products.PUT(":id", s.updateProduct)
			products.DELETE(":id", s.deleteProduct)

			categories := auth.Group("/categories")
			categories.GET("", s.listCategories)
			categories.POST("", s.createCategory)
			categories.PUT(":id", s.updateCategory)
			categories.DELETE(":id", s.deleteCategory)

			dash := auth.Group("/dashboard")
			dash.GET("", s.dashboard)
			dash.GET("/forecast", s.demandForecast)

			ml := auth.Group("/ml")
			ml.GET("/train", s.mlTrain)
			ml.POST("/predict", s.mlPredict)
			ml.GET("/dashboard", s.mlDashboard)
			ml.GET("/stats", s.mlStats)
		}
	}
}

// requireSession is the console-side login gate: without an active session
// every protected route answers 401 so the UI falls back to the login entry
// point. The 401-on-expiry from the backend lands here too, because
// api.Client clears the session before the handler returns.
func (s *Server) requireSession(c *gin.Context) {
	if !s.sess.Active() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "login required"})
		return
	}
	c.Next()
}

func mapErrorToStatus(err error) int {
	var (
		apiErr  *api.Error
		viewVal *view.ValidationError
		upVal   *upload.ValidationError
	)
	switch {
	case errors.As(err, &viewVal), errors.As(err, &upVal):
		return http.StatusBadRequest
	case errors.Is(err, view.ErrInvalidStatus),
		errors.Is(err, forecast.ErrUnknownCategory),
		errors.Is(err, forecast.ErrBadHorizon):
		return http.StatusBadRequest
	case errors.Is(err, view.ErrStatusInFlight), errors.Is(err, upload.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, api.ErrNoToken):
		return http.StatusUnauthorized
	case errors.As(err, &apiErr):
		if apiErr.Status == 0 {
			return http.StatusBadGateway
		}
		return apiErr.Status
	default:
		return http.StatusInternalServerError
	}
}

// fail reduces any error to the transient-notification shape the UI shows.
// Remote-service errors surface their server message verbatim.
func fail(c *gin.Context, err error) {
	msg := err.Error()
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	c.JSON(mapErrorToStatus(err), gin.H{"message": msg})
}
