package handler

import (
	"net/http"

	"prs-backend/internal/service"
	"prs-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/requests")
	{
		requests.GET("", h.ListRequests)
		requests.GET("/:id", h.GetRequestByID)
		requests.POST("", h.CreateRequest)
		requests.PUT("/:id", h.UpdateRequest)
		requests.DELETE("/:id", h.DeleteRequest)

		// Workflow transitions
		requests.PUT("/submit-review/:id", h.SubmitForReview)
		requests.PUT("/approve/:id", h.ApproveRequest)
		requests.PUT("/reject/:id", h.RejectRequest)
		requests.GET("/list-review/:id", h.ListReview)
	}
}

// ListRequests handles GET /requests
// @Summary      List requests
// @Tags         requests
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Request}
// @Router       /requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	requests, err := h.requestService.ListRequests(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// GetRequestByID handles GET /requests/:id
// @Summary      Get request by ID
// @Tags         requests
// @Produce      json
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=model.Request}
// @Failure      404  {object}  response.Response
// @Router       /requests/{id} [get]
func (h *RequestHandler) GetRequestByID(c *gin.Context) {
	request, err := h.requestService.GetRequestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

// CreateRequest handles POST /requests
// @Summary      Create request
// @Description  Creates a purchase request with its line items; every referenced product must exist with a positive price
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateRequestDTO  true  "Create Request Payload"
// @Success      201      {object}  response.Response{data=model.Request}
// @Failure      400      {object}  response.Response
// @Router       /requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req service.CreateRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/requests/"+request.ID.String())
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, request))
}

// UpdateRequest handles PUT /requests/:id
// @Summary      Update request
// @Tags         requests
// @Accept       json
// @Param        id       path   string                    true  "Request ID"
// @Param        payload  body   service.UpdateRequestDTO  true  "Update Request Payload"
// @Success      204
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /requests/{id} [put]
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	var req service.UpdateRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	if err := h.requestService.UpdateRequest(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteRequest handles DELETE /requests/:id
// @Summary      Delete request
// @Tags         requests
// @Param        id   path  string  true  "Request ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /requests/{id} [delete]
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	if err := h.requestService.DeleteRequest(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitForReview recomputes the total, routes the request to APPROVED or
// REVIEW based on the threshold, and stamps the submitted date.
func (h *RequestHandler) SubmitForReview(c *gin.Context) {
	request, err := h.requestService.SubmitForReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

// ApproveRequest unconditionally approves the request.
func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	request, err := h.requestService.ApproveRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

// RejectRequest rejects the request; a non-blank reason is required.
func (h *RequestHandler) RejectRequest(c *gin.Context) {
	var req service.RejectRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		// Missing body surfaces as a blank reason below
		req.ReasonForRejection = ""
	}

	request, err := h.requestService.RejectRequest(c.Request.Context(), c.Param("id"), req.ReasonForRejection)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

// ListReview returns requests pending review, excluding those submitted by
// the given user. An empty result reports 404.
func (h *RequestHandler) ListReview(c *gin.Context) {
	requests, err := h.requestService.ListReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}
