package handler

import (
	"net/http"

	"prs-backend/internal/service"
	"prs-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type LineItemHandler struct {
	lineItemService service.LineItemService
}

func NewLineItemHandler(lineItemService service.LineItemService) *LineItemHandler {
	return &LineItemHandler{lineItemService: lineItemService}
}

func (h *LineItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	lineItems := router.Group("/lineitems")
	{
		lineItems.GET("", h.ListLineItems)
		lineItems.GET("/:id", h.GetLineItemByID)
		lineItems.GET("/lineItems-for-request/:reqId", h.ListForRequest)
		lineItems.POST("", h.CreateLineItem)
		lineItems.PUT("/:id", h.UpdateLineItem)
		lineItems.DELETE("/:id", h.DeleteLineItem)
	}
}

// ListLineItems handles GET /lineitems
// @Summary      List line items
// @Tags         lineitems
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.LineItem}
// @Router       /lineitems [get]
func (h *LineItemHandler) ListLineItems(c *gin.Context) {
	items, err := h.lineItemService.ListLineItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// GetLineItemByID handles GET /lineitems/:id
// @Summary      Get line item by ID
// @Tags         lineitems
// @Produce      json
// @Param        id   path      string  true  "Line Item ID"
// @Success      200  {object}  response.Response{data=model.LineItem}
// @Failure      404  {object}  response.Response
// @Router       /lineitems/{id} [get]
func (h *LineItemHandler) GetLineItemByID(c *gin.Context) {
	item, err := h.lineItemService.GetLineItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// ListForRequest handles GET /lineitems/lineItems-for-request/:reqId
// @Summary      List line items for a request
// @Tags         lineitems
// @Produce      json
// @Param        reqId  path      string  true  "Request ID"
// @Success      200    {object}  response.Response{data=[]model.LineItem}
// @Failure      404    {object}  response.Response
// @Router       /lineitems/lineItems-for-request/{reqId} [get]
func (h *LineItemHandler) ListForRequest(c *gin.Context) {
	items, err := h.lineItemService.ListForRequest(c.Request.Context(), c.Param("reqId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// CreateLineItem handles POST /lineitems
// @Summary      Create line item
// @Description  Creates a line item and recomputes the parent request's total; the product must exist with a positive price
// @Tags         lineitems
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateLineItemRequest  true  "Create Line Item Payload"
// @Success      201      {object}  response.Response{data=model.LineItem}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /lineitems [post]
func (h *LineItemHandler) CreateLineItem(c *gin.Context) {
	var req service.CreateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.lineItemService.CreateLineItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/lineitems/"+item.ID.String())
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// UpdateLineItem handles PUT /lineitems/:id
// @Summary      Update line item
// @Description  Full replacement of the line item; parent totals are recomputed afterwards
// @Tags         lineitems
// @Accept       json
// @Param        id       path   string                         true  "Line Item ID"
// @Param        payload  body   service.UpdateLineItemRequest  true  "Update Line Item Payload"
// @Success      204
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /lineitems/{id} [put]
func (h *LineItemHandler) UpdateLineItem(c *gin.Context) {
	var req service.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	if err := h.lineItemService.UpdateLineItem(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteLineItem handles DELETE /lineitems/:id
// @Summary      Delete line item
// @Description  Removes the line item, then recomputes the parent request's total
// @Tags         lineitems
// @Param        id   path  string  true  "Line Item ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /lineitems/{id} [delete]
func (h *LineItemHandler) DeleteLineItem(c *gin.Context) {
	if err := h.lineItemService.DeleteLineItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
