package console

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/domain"
)

// @Summary Log in
// @Tags session
// @Accept json
// @Produce json
// @Param input body domain.Credentials true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /login [post]
func (s *Server) login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	token, err := s.backend.Login(c, creds)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary Log out
// @Tags session
// @Success 204
// @Router /logout [post]
func (s *Server) logout(c *gin.Context) {
	s.sess.Clear()
	c.Status(http.StatusNoContent)
}

// @Summary Session status
// @Tags session
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /session [get]
func (s *Server) sessionStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"active": s.sess.Active()})
}

// @Summary Aggregate sales report
// @Tags report
// @Produce json
// @Success 200 {object} domain.SalesReport
// @Router /report [get]
func (s *Server) report(c *gin.Context) {
	rep, err := s.backend.Report(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// @Summary List orders
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.orders.Orders(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// @Summary Reload orders from the backend
// @Tags orders
// @Success 204
// @Router /orders/refresh [post]
func (s *Server) refreshOrders(c *gin.Context) {
	if err := s.orders.Reload(c); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type setStatusReq struct {
	Status domain.OrderStatus `json:"status"`
}

// @Summary Transition an order's status
// @Tags orders
// @Accept json
// @Param id path int true "Order ID"
// @Param input body setStatusReq true "New status"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/status [put]
func (s *Server) setOrderStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	var req setStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if err := s.orders.SetStatus(c, id, req.Status); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	cats, err := s.backend.Categories(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

type categoryReq struct {
	Name string `json:"name"`
}

// @Summary Create category
// @Tags categories
// @Accept json
// @Success 201
// @Router /categories [post]
func (s *Server) createCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "category name is required"})
		return
	}
	if err := s.backend.CreateCategory(c, req.Name); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// @Summary Rename category
// @Tags categories
// @Accept json
// @Param id path int true "Category ID"
// @Success 204
// @Router /categories/{id} [put]
func (s *Server) updateCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "category name is required"})
		return
	}
	if err := s.backend.UpdateCategory(c, id, req.Name); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete category
// @Tags categories
// @Param id path int true "Category ID"
// @Success 204
// @Router /categories/{id} [delete]
func (s *Server) deleteCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	if err := s.backend.DeleteCategory(c, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
