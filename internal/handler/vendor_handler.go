package handler

import (
	"net/http"

	"prs-backend/internal/service"
	"prs-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type VendorHandler struct {
	vendorService service.VendorService
}

func NewVendorHandler(vendorService service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

func (h *VendorHandler) RegisterRoutes(router *gin.RouterGroup) {
	vendors := router.Group("/vendors")
	{
		vendors.GET("", h.ListVendors)
		vendors.GET("/:id", h.GetVendorByID)
		vendors.POST("", h.CreateVendor)
		vendors.PUT("/:id", h.UpdateVendor)
		vendors.DELETE("/:id", h.DeleteVendor)
	}
}

// ListVendors handles GET /vendors
// @Summary      List vendors
// @Tags         vendors
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Vendor}
// @Router       /vendors [get]
func (h *VendorHandler) ListVendors(c *gin.Context) {
	vendors, err := h.vendorService.ListVendors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendors))
}

// GetVendorByID handles GET /vendors/:id
// @Summary      Get vendor by ID
// @Tags         vendors
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=model.Vendor}
// @Failure      404  {object}  response.Response
// @Router       /vendors/{id} [get]
func (h *VendorHandler) GetVendorByID(c *gin.Context) {
	vendor, err := h.vendorService.GetVendorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendor))
}

// CreateVendor handles POST /vendors
// @Summary      Create vendor
// @Description  Creates a vendor; code, name, address, city, state and zip must be non-blank
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateVendorRequest  true  "Create Vendor Payload"
// @Success      201      {object}  response.Response{data=model.Vendor}
// @Failure      400      {object}  response.Response
// @Router       /vendors [post]
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var req service.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/vendors/"+vendor.ID.String())
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, vendor))
}

// UpdateVendor handles PUT /vendors/:id
// @Summary      Update vendor
// @Tags         vendors
// @Accept       json
// @Param        id       path   string                       true  "Vendor ID"
// @Param        payload  body   service.UpdateVendorRequest  true  "Update Vendor Payload"
// @Success      204
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vendors/{id} [put]
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	var req service.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	if err := h.vendorService.UpdateVendor(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteVendor handles DELETE /vendors/:id
// @Summary      Delete vendor
// @Tags         vendors
// @Param        id   path  string  true  "Vendor ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /vendors/{id} [delete]
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	if err := h.vendorService.DeleteVendor(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
