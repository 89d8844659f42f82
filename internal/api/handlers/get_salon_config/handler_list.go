package get_salon_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/service/config"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgSalonNotFound = "салон не найден"
	msgForbidden     = "доступ запрещен"
)

// HandleList GET /api/v1/salons/{salonId}/configs
// Возвращает все конфигурации салона (общую и по услугам)
// Доступно только владельцу салона
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	// Извлекаем salonId из URL
	vars := mux.Vars(r)
	salonIDStr := vars["salonId"]

	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/configs - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /salons/{id}/configs - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем все конфигурации салона (сервис сам проверит права владельца)
	result, err := h.service.GetAllBySalon(r.Context(), salonID, userID)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/configs - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("GET /salons/{id}/configs - Access denied: salon_id=%d, user_id=%d",
				salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /salons/{id}/configs - Failed to get configs: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/configs - Configs retrieved successfully: salon_id=%d, count=%d",
		salonID, len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
