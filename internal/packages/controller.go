package packages

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

// FilterPackages godoc
// @Summary Filter active packages
// @Description Price and capacity bounds are inclusive; results are ordered by base price.
// @Tags packages
// @Accept json
// @Produce json
// @Param body body FilterCriteria true "filter criteria"
// @Success 200 {object} response.StandardApiResponse
// @Router /packages/filter [post]
func (c *Controller) FilterPackages(ctx *gin.Context) {
	var criteria FilterCriteria
	if err := ctx.ShouldBindJSON(&criteria); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid filter criteria", nil, err.Error())
		return
	}

	pkgs, err := c.service.FilterPackages(ctx.Request.Context(), criteria)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Packages retrieved successfully", pkgs, nil)
}

// GetFilterOptions godoc
// @Summary Price and capacity ranges plus tier and venue-type facets
// @Tags packages
// @Produce json
// @Success 200 {object} response.StandardApiResponse
// @Router /packages/filter-options [get]
func (c *Controller) GetFilterOptions(ctx *gin.Context) {
	opts, err := c.service.GetFilterOptions(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Filter options retrieved successfully", opts, nil)
}

func (c *Controller) SearchPackages(ctx *gin.Context) {
	var req SearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.SearchPackages(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Packages retrieved successfully", result, nil)
}

func (c *Controller) CreatePackage(ctx *gin.Context) {
	var req PackageRequest
	if !c.bind(ctx, &req) {
		return
	}

	pkg, err := c.service.CreatePackage(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Package created successfully", pkg, nil)
}

func (c *Controller) UpdatePackage(ctx *gin.Context) {
	id, ok := response.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	var req PackageRequest
	if !c.bind(ctx, &req) {
		return
	}

	pkg, err := c.service.UpdatePackage(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Package updated successfully", pkg, nil)
}

func (c *Controller) DeletePackage(ctx *gin.Context) {
	id, ok := response.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.service.DeletePackage(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Package deleted successfully", nil, nil)
}

func (c *Controller) GetPackage(ctx *gin.Context) {
	id, ok := response.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	pkg, err := c.service.GetPackageByID(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Package retrieved successfully", pkg, nil)
}

func (c *Controller) GetPackagesByVenue(ctx *gin.Context) {
	venueID, ok := response.ParseUUIDParam(ctx, "venueId")
	if !ok {
		return
	}

	pkgs, err := c.service.GetPackagesByVenue(ctx.Request.Context(), venueID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Packages retrieved successfully", pkgs, nil)
}

func (c *Controller) GetAllPackages(ctx *gin.Context) {
	pkgs, err := c.service.GetAllPackages(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Packages retrieved successfully", pkgs, nil)
}

func (c *Controller) bind(ctx *gin.Context, req *PackageRequest) bool {
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
