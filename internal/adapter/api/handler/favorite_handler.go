package handler

import (
	"github.com/labstack/echo/v4"

	"nuptio/internal/usecase"
	"nuptio/pkg/response"
	"nuptio/pkg/utils"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

func (h *FavoriteHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	favorites, total, err := h.favoriteUseCase.List(c.Request().Context(), uid, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, favorites, total, params.Page, params.PageSize)
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	uid := c.Get("uid").(string)

	favorite, err := h.favoriteUseCase.Add(c.Request().Context(), uid, c.Param("storefrontId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, favorite)
}

func (h *FavoriteHandler) Remove(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.favoriteUseCase.Remove(c.Request().Context(), uid, c.Param("storefrontId")); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}

func (h *FavoriteHandler) Check(c echo.Context) error {
	uid := c.Get("uid").(string)

	isFavorite, err := h.favoriteUseCase.IsFavorite(c.Request().Context(), uid, c.Param("storefrontId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"is_favorite": isFavorite})
}

func (h *FavoriteHandler) Count(c echo.Context) error {
	uid := c.Get("uid").(string)

	count, err := h.favoriteUseCase.Count(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{"count": count})
}
