package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/app/services"
	"github.com/arjunm/placementpulse/internal/middleware"
	"github.com/arjunm/placementpulse/internal/pkg/helpers"
)

// CompanyController handles the company registry endpoints
type CompanyController struct {
	companyService services.CompanyService
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(companyService services.CompanyService) *CompanyController {
	return &CompanyController{
		companyService: companyService,
	}
}

// List returns active companies
// @Summary Browse companies
// @Description Active companies with approved experience counts
// @Tags companies
// @Produce json
// @Param tier query string false "Tier filter"
// @Param category query string false "Category filter"
// @Param search query string false "Name search"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyListResponse} "Companies"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /companies [get]
func (c *CompanyController) List(ctx *gin.Context) {
	filter := dto.CompanyFilter{
		Tier:     ctx.Query("tier"),
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.companyService.ListCompanies(ctx, &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GetBySlug returns one company
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param slug path string true "Company slug"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyResponse} "Company"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /companies/{slug} [get]
func (c *CompanyController) GetBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")

	resp, err := c.companyService.GetCompanyBySlug(ctx, slug)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
