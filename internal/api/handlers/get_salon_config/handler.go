package get_salon_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidParams  = "некорректные параметры запроса"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/config
// Query params: serviceId (опционально)
// Публичный endpoint - без авторизации
// Если конфигурация не настроена, возвращаются дефолтные значения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем salonId из URL
	vars := mux.Vars(r)
	salonIDStr := vars["salonId"]

	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/config - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Получаем опциональный serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(salonID, serviceIDStr)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/config - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем конфигурацию с иерархическим поиском
	// Сервис сам вернет дефолтные значения, если конфигурация не настроена
	result, err := h.service.GetWithHierarchy(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /salons/{id}/config - Failed to get config: salon_id=%d, error=%v",
			salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/config - Config retrieved successfully: salon_id=%d, config_id=%d",
		salonID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
