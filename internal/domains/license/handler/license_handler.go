package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"diary-backend/internal/domains/license/model"
	"diary-backend/internal/domains/license/service"
	"diary-backend/internal/shared/response"
)

type LicenseHandler struct {
	licenseService service.LicenseService
}

func NewLicenseHandler(licenseService service.LicenseService) *LicenseHandler {
	return &LicenseHandler{licenseService: licenseService}
}

// ListActive handles GET /licenses
func (h *LicenseHandler) ListActive(c *gin.Context) {
	licenses, err := h.licenseService.ListActive(c.Request.Context())
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Licenses retrieved", licenses)
}

// GetByID handles GET /licenses/:id
func (h *LicenseHandler) GetByID(c *gin.Context) {
	licenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid license id")
		return
	}

	license, err := h.licenseService.GetByID(c.Request.Context(), licenseID)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "License retrieved", license)
}
