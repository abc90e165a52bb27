package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nuptio/internal/usecase"
	"nuptio/pkg/response"
	"nuptio/pkg/utils"
)

type CategoryHandler struct {
	categoryUseCase *usecase.CategoryUseCase
}

func NewCategoryHandler(categoryUseCase *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{
		categoryUseCase: categoryUseCase,
	}
}

func (h *CategoryHandler) List(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	categories, total, err := h.categoryUseCase.List(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, categories, total, params.Page, params.PageSize)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.categoryUseCase.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, category)
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Slug        string `json:"slug" validate:"omitempty,min=2"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.categoryUseCase.Create(c.Request().Context(), usecase.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, category)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryUseCase.Update(c.Request().Context(), c.Param("id"), usecase.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.categoryUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}
