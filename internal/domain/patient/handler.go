package patient

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ftk-keit/medi-application/internal/domain/billing"
	"github.com/Ftk-keit/medi-application/internal/domain/records"
	"github.com/Ftk-keit/medi-application/internal/platform/auth"
	"github.com/Ftk-keit/medi-application/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("reception", "cashier", "doctor", "hr"))
	read.GET("/patients", h.List)
	read.GET("/patients/:id", h.Get)
	read.GET("/patients/qr/:code", h.GetByQRCode)
	read.POST("/patients/scan", h.Scan)
	read.GET("/patients/hospitalized", h.Hospitalized)
	read.GET("/queue/payment", h.PaymentQueue)
	read.GET("/queue/consultation/:department", h.ConsultationQueue)

	reception := api.Group("", auth.RequireRole("reception", "hr"))
	reception.POST("/patients", h.Register)

	cashier := api.Group("", auth.RequireRole("cashier"))
	cashier.POST("/patients/:id/payment", h.RecordPayment)

	doctor := api.Group("", auth.RequireRole("doctor"))
	doctor.POST("/patients/:id/consultation/start", h.StartConsultation)
	doctor.POST("/patients/:id/consultation/complete", h.CompleteConsultation)
	doctor.POST("/patients/:id/discharge", h.Discharge)
	doctor.POST("/patients/:id/labs", h.RequestLab)
	doctor.PUT("/patients/:id/labs/:labId/complete", h.CompleteLab)
	doctor.PUT("/patients/:id/labs/:labId/review", h.ReviewLab)
	doctor.POST("/patients/:id/records/:recordId/prescription/print", h.PrintPrescription)
}

// domainError maps the workflow error taxonomy onto HTTP statuses:
// validation 400, not found 404, illegal transition 409.
func domainError(err error) error {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return echo.NewHTTPError(http.StatusBadRequest, vErr.Error())
	}
	var tErr *IllegalTransitionError
	if errors.As(err, &tErr) {
		return echo.NewHTTPError(http.StatusConflict, tErr.Error())
	}
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	return id, nil
}

func (h *Handler) Register(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Register(c.Request().Context(), &p); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetByQRCode(c echo.Context) error {
	p, err := h.svc.GetByQRCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Scan(c echo.Context) error {
	p, err := h.svc.ScanRandom(c.Request().Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no registered patients to scan")
		}
		return domainError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	patients, total, err := h.svc.List(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(patients, total, p.Limit, p.Offset))
}

func (h *Handler) Hospitalized(c echo.Context) error {
	patients, err := h.svc.Hospitalized(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) PaymentQueue(c echo.Context) error {
	queue, err := h.svc.PaymentQueue(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, queue)
}

func (h *Handler) ConsultationQueue(c echo.Context) error {
	queue, err := h.svc.ConsultationQueue(c.Request().Context(), c.Param("department"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, queue)
}

type paymentRequest struct {
	Method billing.PaymentMethod `json:"method"`
}

func (h *Handler) RecordPayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.RecordPayment(c.Request().Context(), id, req.Method, auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) StartConsultation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.StartConsultation(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, p)
}

type completeRequest struct {
	Diagnosis    string               `json:"diagnosis"`
	Symptoms     []string             `json:"symptoms"`
	Treatment    string               `json:"treatment"`
	Notes        string               `json:"notes"`
	VitalSigns   *records.VitalSigns  `json:"vital_signs"`
	Medications  []records.Medication `json:"medications"`
	Instructions string               `json:"instructions"`
	FollowUpDate *time.Time           `json:"follow_up_date"`
	Hospitalize  bool                 `json:"hospitalize"`
	HospitalRoom string               `json:"hospital_room"`
}

func (h *Handler) CompleteConsultation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req completeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.svc.CompleteConsultation(c.Request().Context(), id, CompleteInput{
		DoctorID:     auth.UserIDFromContext(c.Request().Context()),
		DoctorName:   auth.UsernameFromContext(c.Request().Context()),
		Diagnosis:    req.Diagnosis,
		Symptoms:     req.Symptoms,
		Treatment:    req.Treatment,
		Notes:        req.Notes,
		VitalSigns:   req.VitalSigns,
		Medications:  req.Medications,
		Instructions: req.Instructions,
		FollowUpDate: req.FollowUpDate,
		Hospitalize:  req.Hospitalize,
		HospitalRoom: req.HospitalRoom,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Discharge(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Discharge(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, p)
}

type labRequest struct {
	TestName string `json:"test_name"`
}

func (h *Handler) RequestLab(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req labRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.RequestLab(c.Request().Context(), id, req.TestName, auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

type labValuesRequest struct {
	Values []records.LabValue `json:"values"`
}

func (h *Handler) CompleteLab(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req labValuesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.CompleteLab(c.Request().Context(), id, c.Param("labId"), req.Values)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ReviewLab(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.ReviewLab(c.Request().Context(), id, c.Param("labId"), auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) PrintPrescription(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.MarkPrescriptionPrinted(c.Request().Context(), id, c.Param("recordId"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, p)
}
