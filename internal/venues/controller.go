package venues

import (
	"net/http"

	"venuebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{service: service, validator: validator.New()}
}

func (c *Controller) bind(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return false
	}
	if err := c.validator.Struct(req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return false
	}
	return true
}

//  VENUES

// CreateVenue godoc
// @Summary Create a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body VenueRequest true "venue"
// @Success 201 {object} response.StandardApiResponse
// @Router /venues [post]
func (c *Controller) CreateVenue(ctx *gin.Context) {
	var req VenueRequest
	if !c.bind(ctx, &req) {
		return
	}

	venue, err := c.service.CreateVenue(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Venue created successfully", venue, nil)
}

func (c *Controller) UpdateVenue(ctx *gin.Context) {
	id, ok := response.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	var req VenueRequest
	if !c.bind(ctx, &req) {
		return
	}

	venue, err := c.service.UpdateVenue(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue updated successfully", venue, nil)
}

func (c *Controller) DeleteVenue(ctx *gin.Context) {
	id, ok := response.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.service.DeleteVenue(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue deleted successfully", nil, nil)
}

// GetVenue godoc
// @Summary Get a venue with its images and additional services
// @Tags venues
// @Produce json
// @Param id path string true "venue id"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Router /venues/{id} [get]
func (c *Controller) GetVenue(ctx *gin.Context) {
	id, ok := response.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	venue, err := c.service.GetVenueByID(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue retrieved successfully", venue, nil)
}

func (c *Controller) GetVenues(ctx *gin.Context) {
	venues, err := c.service.GetAllVenues(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venues retrieved successfully", venues, nil)
}

//  ADDITIONAL SERVICES

func (c *Controller) CreateAdditionalService(ctx *gin.Context) {
	var req AdditionalServiceRequest
	if !c.bind(ctx, &req) {
		return
	}

	svc, err := c.service.CreateAdditionalService(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Additional service created successfully", svc, nil)
}

func (c *Controller) UpdateAdditionalService(ctx *gin.Context) {
	id, ok := response.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	var req UpdateAdditionalServiceRequest
	if !c.bind(ctx, &req) {
		return
	}

	svc, err := c.service.UpdateAdditionalService(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Additional service updated successfully", svc, nil)
}

func (c *Controller) DeleteAdditionalService(ctx *gin.Context) {
	id, ok := response.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.service.DeleteAdditionalService(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Additional service deleted successfully", nil, nil)
}

func (c *Controller) GetAdditionalService(ctx *gin.Context) {
	id, ok := response.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	svc, err := c.service.GetAdditionalServiceByID(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Additional service retrieved successfully", svc, nil)
}

func (c *Controller) GetAdditionalServicesByVenue(ctx *gin.Context) {
	venueID, ok := response.ParseUUIDParam(ctx, "venueId")
	if !ok {
		return
	}

	services, err := c.service.GetAdditionalServicesByVenue(ctx.Request.Context(), venueID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Additional services retrieved successfully", services, nil)
}

func (c *Controller) GetAllAdditionalServices(ctx *gin.Context) {
	services, err := c.service.GetAllAdditionalServices(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Additional services retrieved successfully", services, nil)
}
