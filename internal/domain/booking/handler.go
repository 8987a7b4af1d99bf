package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinio/clinio/internal/domain/availability"
	"github.com/clinio/clinio/internal/domain/provider"
	"github.com/clinio/clinio/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/providers/:id/slots", h.ListSlots)
	api.POST("/bookings", h.CreateBooking)
	api.GET("/bookings", h.ListBookings)
	api.GET("/bookings/:id", h.GetBooking)
	api.GET("/patients/:id/bookings", h.ListByPatient)
	api.GET("/providers/:id/bookings", h.ListByProvider)
	api.PUT("/bookings/:id/reschedule", h.RescheduleBooking)
	api.POST("/bookings/:id/cancel", h.CancelBooking)
	api.PUT("/bookings/:id/status", h.UpdateStatus)
	api.PUT("/bookings/:id/payment", h.UpdatePayment)
	api.PUT("/bookings/:id/notes", h.UpdateNotes)
	api.DELETE("/bookings/:id", h.DeleteBooking)
}

// httpError maps service errors to HTTP responses. Eligibility rejections
// are 422, a taken slot is 409, lifecycle violations are 409, and missing
// records are 404.
func httpError(err error) error {
	var rej *availability.Rejection
	switch {
	case errors.As(err, &rej):
		status := http.StatusUnprocessableEntity
		if rej.Reason == availability.ReasonSlotTaken {
			status = http.StatusConflict
		}
		return echo.NewHTTPError(status, map[string]string{
			"reason":  string(rej.Reason),
			"message": rej.Error(),
		})
	case errors.Is(err, ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	case errors.Is(err, provider.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "provider not found")
	case errors.Is(err, ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

type slotsResponse struct {
	ProviderID uuid.UUID `json:"provider_id"`
	Date       string    `json:"date"`
	Slots      []string  `json:"slots"`
}

func (h *Handler) ListSlots(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	dateParam := c.QueryParam("date")
	var date time.Time
	if dateParam == "" {
		date = h.svc.Today()
	} else {
		date, err = h.svc.ParseDate(dateParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date: want YYYY-MM-DD")
		}
	}
	slots, err := h.svc.AvailableSlots(c.Request().Context(), id, date)
	if err != nil {
		return httpError(err)
	}
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format("15:04"))
	}
	return c.JSON(http.StatusOK, slotsResponse{
		ProviderID: id,
		Date:       date.Format("2006-01-02"),
		Slots:      out,
	})
}

func (h *Handler) CreateBooking(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.Book(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) GetBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListBookings(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListByPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListByProvider(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByProvider(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) RescheduleBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.Reschedule(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) CancelBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.Cancel(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

type statusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !req.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	b, err := h.svc.ChangeStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

type paymentRequest struct {
	PaymentStatus PaymentStatus `json:"payment_status"`
}

func (h *Handler) UpdatePayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !req.PaymentStatus.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment status")
	}
	b, err := h.svc.RecordPayment(c.Request().Context(), id, req.PaymentStatus)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

type notesRequest struct {
	Notes *string `json:"notes"`
}

func (h *Handler) UpdateNotes(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req notesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.UpdateNotes(c.Request().Context(), id, req.Notes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
