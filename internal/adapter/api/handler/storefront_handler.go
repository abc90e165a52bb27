package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nuptio/internal/usecase"
	"nuptio/pkg/response"
	"nuptio/pkg/utils"
)

type StorefrontHandler struct {
	storefrontUseCase *usecase.StorefrontUseCase
}

func NewStorefrontHandler(storefrontUseCase *usecase.StorefrontUseCase) *StorefrontHandler {
	return &StorefrontHandler{
		storefrontUseCase: storefrontUseCase,
	}
}

// Search is the public listing endpoint. "uid" may or may not be set; a
// signed-in search lands in the caller's history.
func (h *StorefrontHandler) Search(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	viewerID, _ := c.Get("uid").(string)

	storefronts, total, err := h.storefrontUseCase.Search(c.Request().Context(), viewerID, usecase.SearchStorefrontsInput{
		Query:      c.QueryParam("q"),
		CategoryID: c.QueryParam("category_id"),
		City:       c.QueryParam("city"),
		Featured:   c.QueryParam("featured") == "true",
		Sort:       c.QueryParam("sort"),
		Limit:      params.PageSize,
		Offset:     params.Offset,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, storefronts, total, params.Page, params.PageSize)
}

func (h *StorefrontHandler) Get(c echo.Context) error {
	viewerID, _ := c.Get("uid").(string)

	storefront, err := h.storefrontUseCase.GetByID(c.Request().Context(), c.Param("id"), viewerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, storefront)
}

func (h *StorefrontHandler) ListMine(c echo.Context) error {
	uid := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	storefronts, total, err := h.storefrontUseCase.ListMine(c.Request().Context(), uid, c.QueryParam("status"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, storefronts, total, params.Page, params.PageSize)
}

type storefrontRequest struct {
	CategoryID  string                          `json:"category_id" validate:"required"`
	Name        string                          `json:"name" validate:"required,min=2"`
	Description string                          `json:"description"`
	City        string                          `json:"city" validate:"required"`
	Region      string                          `json:"region"`
	Address     string                          `json:"address"`
	Phone       string                          `json:"phone" validate:"omitempty,e164"`
	Email       string                          `json:"email" validate:"omitempty,email"`
	Website     string                          `json:"website" validate:"omitempty,url"`
	Capacity    int                             `json:"capacity" validate:"omitempty,min=0"`
	PriceMin    float64                         `json:"price_min" validate:"omitempty,min=0"`
	PriceMax    float64                         `json:"price_max" validate:"omitempty,min=0"`
	Status      string                          `json:"status" validate:"omitempty,oneof=draft published"`
	Images      []usecase.StorefrontImageInput  `json:"images"`
}

func (h *StorefrontHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req storefrontRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	storefront, err := h.storefrontUseCase.Create(c.Request().Context(), uid, h.toInput(req), req.Images)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, storefront)
}

func (h *StorefrontHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req storefrontRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	storefront, err := h.storefrontUseCase.Update(c.Request().Context(), c.Param("id"), uid, h.toInput(req), req.Images)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, storefront)
}

func (h *StorefrontHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.storefrontUseCase.Delete(c.Request().Context(), c.Param("id"), uid); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}

func (h *StorefrontHandler) SetFeatured(c echo.Context) error {
	var req struct {
		Featured bool `json:"featured"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	storefront, err := h.storefrontUseCase.SetFeatured(c.Request().Context(), c.Param("id"), req.Featured)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, storefront)
}

func (h *StorefrontHandler) SetStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status" validate:"required,oneof=published suspended"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	storefront, err := h.storefrontUseCase.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, storefront)
}

func (h *StorefrontHandler) toInput(req storefrontRequest) usecase.StorefrontInput {
	return usecase.StorefrontInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Region:      req.Region,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Capacity:    req.Capacity,
		PriceMin:    req.PriceMin,
		PriceMax:    req.PriceMax,
		Status:      req.Status,
	}
}
