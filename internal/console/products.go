package console

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/domain"
	"shopadmin/internal/upload"
	"shopadmin/internal/view"
)

// @Summary Visible product list
// @Description Applies the free-text query and stock filter, then returns the
// @Description sorted visible subset of the fetched catalog.
// @Tags products
// @Produce json
// @Param q query string false "Free-text search"
// @Param stock query string false "all | in_stock | low_stock | out_of_stock"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	s.products.SetQuery(c.Query("q"))
	if f := c.Query("stock"); f != "" {
		if err := s.products.SetStockFilter(view.StockFilter(f)); err != nil {
			fail(c, err)
			return
		}
	}
	products, err := s.products.Visible(c)
	if err != nil {
		fail(c, err)
		return
	}
	sort := s.products.CurrentSort()
	c.JSON(http.StatusOK, gin.H{
		"data":     products,
		"sort_key": sort.Key,
		"sort_asc": sort.Asc,
	})
}

// @Summary Single product, as the edit form loads it
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	p, err := s.backend.Product(c, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Reload products from the backend
// @Tags products
// @Success 204
// @Router /products/refresh [post]
func (s *Server) refreshProducts(c *gin.Context) {
	if err := s.products.Reload(c); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Toggle the product sort column
// @Description Clicking the active column flips direction; a new column
// @Description starts ascending.
// @Tags products
// @Param key path string true "name | price | stock_quantity"
// @Success 204
// @Router /products/sort/{key} [post]
func (s *Server) toggleProductSort(c *gin.Context) {
	if err := s.products.ToggleSort(view.SortKey(c.Param("key"))); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// productForm reads the multipart product fields. Numeric fields are parsed
// leniently; the view-level validation owns the real checks.
func productForm(c *gin.Context) domain.ProductInput {
	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)
	stock, _ := strconv.ParseInt(c.PostForm("stock_quantity"), 10, 64)
	categoryID, _ := strconv.ParseInt(c.PostForm("category_id"), 10, 64)
	return domain.ProductInput{
		Name:          c.PostForm("name"),
		Description:   c.PostForm("description"),
		CategoryID:    categoryID,
		Price:         price,
		StockQuantity: stock,
		Unit:          c.PostForm("unit"),
		Barcode:       c.PostForm("barcode"),
	}
}

// attachImage runs the selected file through the form's processor and fills
// in the encoded payload. The encode finishes before the product request is
// issued; the two steps are never concurrent for one submission.
func attachImage(c *gin.Context, form *upload.Processor, mode upload.Mode, in *domain.ProductInput) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil // no file selected
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	img, err := form.Process(data, mode)
	if err != nil {
		return err
	}
	in.ImageBase64 = img.DataURI
	return nil
}

// @Summary Create product
// @Description Multipart form: product fields plus a required "image" file
// @Description (JPEG, PNG or GIF, at most 5MB).
// @Tags products
// @Accept mpfd
// @Produce json
// @Success 201
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	in := productForm(c)
	if err := attachImage(c, s.createForm, upload.ModeCreate, &in); err != nil {
		fail(c, err)
		return
	}
	if err := s.products.Create(c, in); err != nil {
		fail(c, err)
		return
	}
	s.createForm.Reset()
	c.Status(http.StatusCreated)
}

// @Summary Update product
// @Description Multipart form: product fields plus an optional "image" file
// @Description (at most 10MB, recompressed client-side before upload).
// @Tags products
// @Accept mpfd
// @Param id path int true "Product ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	in := productForm(c)
	if err := attachImage(c, s.updateForm, upload.ModeUpdate, &in); err != nil {
		fail(c, err)
		return
	}
	if err := s.products.Update(c, id, in); err != nil {
		fail(c, err)
		return
	}
	s.updateForm.Reset()
	c.Status(http.StatusNoContent)
}

// @Summary Delete product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	if err := s.products.Delete(c, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
