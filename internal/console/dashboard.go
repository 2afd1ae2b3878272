package console

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/api"
	"shopadmin/internal/forecast"
)

// @Summary Dashboard data
// @Description Summary cards plus the precomputed sales series.
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]any
// @Router /dashboard [get]
func (s *Server) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"summary":        forecast.DashboardSummary(),
		"monthly_sales":  forecast.MonthlySales(),
		"category_sales": forecast.CategorySales(),
		"top_products":   forecast.TopProducts(),
		"categories":     forecast.CategoryNames(),
	})
}

// @Summary Demand forecast table
// @Description Synthetic demand per product and month for one category, a
// @Description specific brand or "all", over a 6- or 12-month horizon.
// @Tags dashboard
// @Produce json
// @Param category query string true "Forecast category"
// @Param brand query string false "Brand name or all"
// @Param months query int false "6 or 12" default(6)
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /dashboard/forecast [get]
func (s *Server) demandForecast(c *gin.Context) {
	category := c.Query("category")
	brand := c.DefaultQuery("brand", forecast.AllBrands)
	months, err := strconv.Atoi(c.DefaultQuery("months", "6"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid months"})
		return
	}

	table, err := s.forecasts.Table(category, brand, months)
	if err != nil {
		fail(c, err)
		return
	}
	products, err := forecast.ProductsFor(category)
	if err != nil {
		fail(c, err)
		return
	}
	brands, _ := forecast.BrandsFor(category)
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"brand":    brand,
		"products": products,
		"brands":   brands,
		"months":   table,
	})
}

// @Summary Trigger model training
// @Tags ml
// @Produce json
// @Success 200 {object} api.TrainResult
// @Router /ml/train [get]
func (s *Server) mlTrain(c *gin.Context) {
	res, err := s.ml.Train(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Predict a price
// @Tags ml
// @Accept json
// @Produce json
// @Param input body api.PredictRequest true "Prediction input"
// @Success 200 {object} api.Prediction
// @Router /ml/predict [post]
func (s *Server) mlPredict(c *gin.Context) {
	var req api.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	res, err := s.ml.Predict(c, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary ML service dashboard payload
// @Tags ml
// @Produce json
// @Success 200 {object} object
// @Router /ml/dashboard [get]
func (s *Server) mlDashboard(c *gin.Context) {
	raw, err := s.ml.Dashboard(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// @Summary ML service stats payload
// @Tags ml
// @Produce json
// @Success 200 {object} object
// @Router /ml/stats [get]
func (s *Server) mlStats(c *gin.Context) {
	raw, err := s.ml.Stats(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
