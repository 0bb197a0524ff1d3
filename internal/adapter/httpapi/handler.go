package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/httpapi/middleware"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/usecase"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("property-service/http-handler")

const bookingDateLayout = "2006-01-02"

// PropertyHandler exposes the property operations over HTTP.
type PropertyHandler struct {
	propertyUC *usecase.PropertyUsecase
	bookingUC  *usecase.BookingUsecase
	metrics    *metrics.MetricsManager
	logger     *logger.Logger
}

func NewPropertyHandler(
	propertyUC *usecase.PropertyUsecase,
	bookingUC *usecase.BookingUsecase,
	mm *metrics.MetricsManager,
	log *logger.Logger,
) *PropertyHandler {
	return &PropertyHandler{
		propertyUC: propertyUC,
		bookingUC:  bookingUC,
		metrics:    mm,
		logger:     log.Named("PropertyHandler"),
	}
}

// ---- request / response shapes ----

type imagePayload struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        string `json:"data"` // base64-encoded bytes
}

type createPropertyRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Location    string       `json:"location"`
	Type        string       `json:"type"`
	Image       imagePayload `json:"image"`
}

type updatePropertyRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Location    *string  `json:"location"`
	Type        *string  `json:"type"`
	Image       *string  `json:"image"`
}

type bookPropertyRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type propertyResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Location    string     `json:"location"`
	Type        string     `json:"type"`
	ImageKey    string     `json:"image_key"`
	Owner       string     `json:"owner"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	IsBooked    bool       `json:"is_booked"`
	BookedFrom  *time.Time `json:"booked_from,omitempty"`
	BookedTo    *time.Time `json:"booked_to,omitempty"`
}

func toPropertyResponse(p *domain.Property) *propertyResponse {
	if p == nil {
		return nil
	}
	return &propertyResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Location:    p.Location,
		Type:        string(p.Type),
		ImageKey:    p.ImageKey,
		Owner:       p.Owner,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		IsBooked:    p.IsBooked,
		BookedFrom:  p.BookedFrom,
		BookedTo:    p.BookedTo,
	}
}

// ---- handlers ----

func (h *PropertyHandler) HandleCreateProperty(w http.ResponseWriter, r *http.Request) {
	const op = "CreateProperty"
	defer h.observeLatency(op)()

	callerEmail, ok := middleware.CallerEmail(r.Context())
	if !ok {
		h.writeError(w, op, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body for CreateProperty", zap.Error(err))
		h.writeError(w, op, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, span := tracer.Start(r.Context(), "Handler.CreateProperty")
	defer span.End()
	span.SetAttributes(
		attribute.String("owner", callerEmail),
		attribute.String("title", req.Title),
	)

	input := usecase.CreatePropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Type:        domain.PropertyType(req.Type),
	}
	image := domain.ImageFile{
		Name:        req.Image.Name,
		ContentType: req.Image.ContentType,
		Data:        req.Image.Data,
	}

	propertyID, err := h.propertyUC.CreateProperty(ctx, input, image, callerEmail)
	if err != nil {
		span.RecordError(err)
		h.writeDomainError(w, op, err)
		return
	}
	span.SetAttributes(attribute.String("property_id", propertyID))
	h.metrics.PropertiesCreatedTotal.Inc()

	h.writeJSON(w, http.StatusCreated, map[string]string{"property_id": propertyID})
}

func (h *PropertyHandler) HandleGetProperty(w http.ResponseWriter, r *http.Request) {
	const op = "GetProperty"
	defer h.observeLatency(op)()

	id := chi.URLParam(r, "id")
	ctx, span := tracer.Start(r.Context(), "Handler.GetProperty")
	defer span.End()
	span.SetAttributes(attribute.String("property_id", id))

	property, err := h.propertyUC.GetPropertyByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		h.writeDomainError(w, op, err)
		return
	}
	if property == nil {
		h.writeError(w, op, http.StatusNotFound, "property not found")
		return
	}
	h.writeJSON(w, http.StatusOK, toPropertyResponse(property))
}

func (h *PropertyHandler) HandleListProperties(w http.ResponseWriter, r *http.Request) {
	const op = "ListProperties"
	defer h.observeLatency(op)()

	ctx, span := tracer.Start(r.Context(), "Handler.ListProperties")
	defer span.End()

	properties, err := h.propertyUC.ListProperties(ctx)
	if err != nil {
		span.RecordError(err)
		h.writeDomainError(w, op, err)
		return
	}
	responses := make([]*propertyResponse, 0, len(properties))
	for _, p := range properties {
		responses = append(responses, toPropertyResponse(p))
	}
	span.SetAttributes(attribute.Int("count", len(responses)))
	h.writeJSON(w, http.StatusOK, responses)
}

func (h *PropertyHandler) HandleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	const op = "UpdateProperty"
	defer h.observeLatency(op)()

	callerEmail, ok := middleware.CallerEmail(r.Context())
	if !ok {
		h.writeError(w, op, http.StatusUnauthorized, "authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	var req updatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body for UpdateProperty", zap.String("property_id", id), zap.Error(err))
		h.writeError(w, op, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, span := tracer.Start(r.Context(), "Handler.UpdateProperty")
	defer span.End()
	span.SetAttributes(
		attribute.String("property_id", id),
		attribute.String("caller", callerEmail),
	)

	update := domain.PropertyUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Type:        req.Type,
		ImageKey:    req.Image,
	}
	if err := h.propertyUC.UpdateProperty(ctx, id, update, callerEmail); err != nil {
		span.RecordError(err)
		h.writeDomainError(w, op, err)
		return
	}
	h.metrics.PropertyUpdatesTotal.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) HandleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	const op = "DeleteProperty"
	defer h.observeLatency(op)()

	callerEmail, ok := middleware.CallerEmail(r.Context())
	if !ok {
		h.writeError(w, op, http.StatusUnauthorized, "authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	ctx, span := tracer.Start(r.Context(), "Handler.DeleteProperty")
	defer span.End()
	span.SetAttributes(
		attribute.String("property_id", id),
		attribute.String("caller", callerEmail),
	)

	if err := h.propertyUC.DeleteProperty(ctx, id, callerEmail); err != nil {
		span.RecordError(err)
		h.writeDomainError(w, op, err)
		return
	}
	h.metrics.PropertyDeletesTotal.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) HandleBookProperty(w http.ResponseWriter, r *http.Request) {
	const op = "BookProperty"
	defer h.observeLatency(op)()

	callerEmail, ok := middleware.CallerEmail(r.Context())
	if !ok {
		h.writeError(w, op, http.StatusUnauthorized, "authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	var req bookPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body for BookProperty", zap.String("property_id", id), zap.Error(err))
		h.writeError(w, op, http.StatusBadRequest, "invalid request body")
		return
	}

	from, err := time.Parse(bookingDateLayout, req.From)
	if err != nil {
		h.writeError(w, op, http.StatusBadRequest, "invalid 'from' date, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse(bookingDateLayout, req.To)
	if err != nil {
		h.writeError(w, op, http.StatusBadRequest, "invalid 'to' date, expected YYYY-MM-DD")
		return
	}

	ctx, span := tracer.Start(r.Context(), "Handler.BookProperty")
	defer span.End()
	span.SetAttributes(
		attribute.String("property_id", id),
		attribute.String("caller", callerEmail),
		attribute.String("from", req.From),
		attribute.String("to", req.To),
	)

	if err := h.bookingUC.BookProperty(ctx, id, from, to, callerEmail); err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrBookingConflict) {
			h.metrics.BookingConflictsTotal.Inc()
		}
		h.writeDomainError(w, op, err)
		return
	}
	h.metrics.PropertiesBookedTotal.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// ---- helpers ----

// writeDomainError maps the closed domain error set onto HTTP status codes.
func (h *PropertyHandler) writeDomainError(w http.ResponseWriter, op string, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrPropertyNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotRentable):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrBookingConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotificationFailed):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
		h.logger.Error(op+" failed", zap.Error(err))
	}
	h.writeError(w, op, status, err.Error())
}

func (h *PropertyHandler) writeError(w http.ResponseWriter, op string, status int, message string) {
	h.metrics.APIErrorsTotal.WithLabelValues(op, http.StatusText(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (h *PropertyHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *PropertyHandler) observeLatency(op string) func() {
	start := time.Now()
	return func() {
		h.metrics.APILatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
