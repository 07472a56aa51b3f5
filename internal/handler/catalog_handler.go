package handler

import (
	"net/http"
	"strconv"

	"approvals/internal/middleware"
	"approvals/internal/service"
	"approvals/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	catalog := router.Group("/api/catalog")
	{
		catalog.GET("/products", middleware.RequirePermission(service.PermCatalogRead), h.SearchProducts)
		catalog.GET("/products/:id", middleware.RequirePermission(service.PermCatalogRead), h.GetProduct)
		catalog.GET("/products/:id/availability", middleware.RequirePermission(service.PermCatalogRead), h.ProductAvailability)
		catalog.GET("/vendors", middleware.RequirePermission(service.PermCatalogRead), h.SearchVendors)
		catalog.POST("/vendors", middleware.RequirePermission(service.PermCatalogWrite), h.FindOrCreateVendor)
	}
}

// SearchProducts returns products whose name matches the search term
// @Summary      Search products
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        search  query     string  false  "Name fragment"
// @Param        limit   query     int     false  "Max results (default 20)"
// @Success      200     {object}  response.Response{data=[]service.ProductResponse}
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	products, err := h.catalogService.SearchProducts(c.Request.Context(), c.Query("search"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, products))
}

// GetProduct returns one product
// @Summary      Get product
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=service.ProductResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// ProductAvailability returns unreserved on-hand quantity per internal location
// @Summary      Product availability
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=service.ProductAvailabilityResponse}
// @Router       /api/catalog/products/{id}/availability [get]
func (h *CatalogHandler) ProductAvailability(c *gin.Context) {
	actor := actorFrom(c)

	result, err := h.catalogService.ProductAvailability(c.Request.Context(), c.Param("id"), actor.CompanyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// SearchVendors returns vendor partners whose name matches the search term
// @Summary      Search vendors
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        search  query     string  false  "Name fragment"
// @Param        limit   query     int     false  "Max results (default 20)"
// @Success      200     {object}  response.Response{data=[]service.VendorResponse}
// @Router       /api/catalog/vendors [get]
func (h *CatalogHandler) SearchVendors(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	vendors, err := h.catalogService.SearchVendors(c.Request.Context(), c.Query("search"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendors))
}

// FindOrCreateVendor returns the vendor company with this name, creating it if needed
// @Summary      Find or create vendor
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.VendorInput  true  "Vendor"
// @Success      200      {object}  response.Response{data=service.VendorResponse}
// @Router       /api/catalog/vendors [post]
func (h *CatalogHandler) FindOrCreateVendor(c *gin.Context) {
	var req service.VendorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vendor, err := h.catalogService.FindOrCreateVendor(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendor))
}
