package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nuptio/internal/usecase"
	"nuptio/pkg/errors"
	"nuptio/pkg/response"
)

type MediaHandler struct {
	mediaUseCase *usecase.MediaUseCase
}

func NewMediaHandler(mediaUseCase *usecase.MediaUseCase) *MediaHandler {
	return &MediaHandler{
		mediaUseCase: mediaUseCase,
	}
}

func (h *MediaHandler) Upload(c echo.Context) error {
	uid := c.Get("uid").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	storefrontID := c.FormValue("storefront_id")
	if storefrontID == "" {
		return response.Error(c, errors.BadRequest("storefront_id is required", nil))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer file.Close()

	metadata, err := h.mediaUseCase.UploadStorefrontImage(c.Request().Context(), uid, usecase.UploadInput{
		StorefrontID: storefrontID,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		File:         file,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, metadata)
}

func (h *MediaHandler) SignedUpload(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		StorefrontID string `json:"storefront_id" validate:"required"`
		ContentType  string `json:"content_type" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uploadURL, publicURL, err := h.mediaUseCase.SignedUpload(c.Request().Context(), uid, req.StorefrontID, req.ContentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"upload_url": uploadURL,
		"public_url": publicURL,
	})
}

func (h *MediaHandler) ListStorefrontFiles(c echo.Context) error {
	uid := c.Get("uid").(string)

	files, err := h.mediaUseCase.ListStorefrontFiles(c.Request().Context(), uid, c.Param("storefrontId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, files)
}

func (h *MediaHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.mediaUseCase.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}
