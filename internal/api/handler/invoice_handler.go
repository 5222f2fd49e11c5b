package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/salesbridge/dashboard-api/internal/api/metrics"
	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

// maxInvoiceFileSize caps uploaded invoice documents at 15 MiB.
const maxInvoiceFileSize = 15 << 20

// InvoiceHandler handles admin-side invoice management, the billing
// calendar and invoice document storage.
type InvoiceHandler struct {
	invoiceService ports.InvoiceService
	billingService ports.BillingService
	audit          ports.AuditSink
	validRef       RefValidator
}

func NewInvoiceHandler(invoiceService ports.InvoiceService, billingService ports.BillingService, audit ports.AuditSink, validRef RefValidator) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		billingService: billingService,
		audit:          audit,
		validRef:       validRef,
	}
}

type createInvoiceRequest struct {
	ClientID      string     `json:"clientId" validate:"required"`
	Month         int        `json:"month" validate:"required,min=1,max=12"`
	Year          int        `json:"year" validate:"required,min=2000"`
	Amount        float64    `json:"amount" validate:"gte=0"`
	Currency      string     `json:"currency"`
	TypeOfService string     `json:"typeOfService" validate:"required"`
	Description   string     `json:"description"`
	InvoiceDate   *time.Time `json:"invoiceDate"`
	DueDate       time.Time  `json:"dueDate" validate:"required"`
}

type updateInvoiceRequest struct {
	Amount        *float64              `json:"amount"`
	Currency      *string               `json:"currency"`
	TypeOfService *string               `json:"typeOfService"`
	Description   *string               `json:"description"`
	Status        *domain.InvoiceStatus `json:"status"`
	InvoiceDate   *time.Time            `json:"invoiceDate"`
	DueDate       *time.Time            `json:"dueDate"`
}

type markPaidRequest struct {
	PaidAt *time.Time `json:"paidAt"`
}

type bulkPayRequest struct {
	InvoiceIDs []string   `json:"invoiceIds" validate:"required,min=1"`
	PaidAt     *time.Time `json:"paidAt"`
}

type bulkPayResponse struct {
	Requested     int   `json:"requested"`
	ValidIDs      int   `json:"validIds"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// Create handles POST /admin/invoices. At most one invoice may exist per
// client and billing period.
func (h *InvoiceHandler) Create(c echo.Context) error {
	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !h.validRef(req.ClientID) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid clientId")
	}

	invoice, err := h.invoiceService.Create(c.Request().Context(), ports.CreateInvoiceInput{
		ClientID:      req.ClientID,
		Month:         req.Month,
		Year:          req.Year,
		Amount:        req.Amount,
		Currency:      req.Currency,
		TypeOfService: req.TypeOfService,
		Description:   req.Description,
		InvoiceDate:   req.InvoiceDate,
		DueDate:       req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, invoice)
}

// Get handles GET /admin/invoices/:id.
func (h *InvoiceHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	invoice, err := h.invoiceService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// ListByClient handles GET /admin/clients/:id/invoices.
func (h *InvoiceHandler) ListByClient(c echo.Context) error {
	clientID, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	invoices, err := h.invoiceService.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoices)
}

// Update handles PUT /admin/invoices/:id. Paid invoices cannot be reopened.
func (h *InvoiceHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	var req updateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	invoice, err := h.invoiceService.Update(c.Request().Context(), id, ports.InvoicePatch{
		Amount:        req.Amount,
		Currency:      req.Currency,
		TypeOfService: req.TypeOfService,
		Description:   req.Description,
		Status:        req.Status,
		InvoiceDate:   req.InvoiceDate,
		DueDate:       req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// MarkPaid handles POST /admin/invoices/:id/pay.
func (h *InvoiceHandler) MarkPaid(c echo.Context) error {
	actorID, actorRole, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	var req markPaidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	invoice, err := h.invoiceService.MarkPaid(c.Request().Context(), id, req.PaidAt)
	if err != nil {
		return err
	}

	metrics.InvoicesPaidTotal.WithLabelValues("single").Inc()
	h.audit.Record(auditEntry(actorID, actorRole, "invoice.pay", "invoice", id, ""))

	return c.JSON(http.StatusOK, invoice)
}

// BulkMarkPaid handles POST /admin/invoices/bulk-pay. Malformed ids are
// dropped rather than failing the batch; already-paid invoices are left
// untouched and excluded from modifiedCount.
func (h *InvoiceHandler) BulkMarkPaid(c echo.Context) error {
	actorID, actorRole, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req bulkPayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.invoiceService.BulkMarkPaid(c.Request().Context(), req.InvoiceIDs, req.PaidAt)
	if err != nil {
		return err
	}

	if result.ModifiedCount > 0 {
		metrics.InvoicesPaidTotal.WithLabelValues("bulk").Add(float64(result.ModifiedCount))
	}
	h.audit.Record(auditEntry(actorID, actorRole, "invoice.bulk_pay", "invoice", "",
		"modified="+strconv.FormatInt(result.ModifiedCount, 10)))

	return c.JSON(http.StatusOK, bulkPayResponse{
		Requested:     result.Requested,
		ValidIDs:      result.ValidIDs,
		ModifiedCount: result.ModifiedCount,
	})
}

// Calendar handles GET /admin/billing/calendar?year=&month=.
func (h *InvoiceHandler) Calendar(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
	}

	calendar, err := h.billingService.Calendar(c.Request().Context(), year, month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, calendar)
}

// UploadFile handles POST /admin/invoices/:id/file (multipart form, field
// "file"). Re-uploading replaces the previous document.
func (h *InvoiceHandler) UploadFile(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	if fileHeader.Size > maxInvoiceFileSize {
		return echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	invoice, err := h.invoiceService.AttachFile(c.Request().Context(), id, fileHeader.Filename, contentType, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// DownloadFile handles GET /admin/invoices/:id/file.
func (h *InvoiceHandler) DownloadFile(c echo.Context) error {
	id, err := pathID(c, "id", h.validRef)
	if err != nil {
		return err
	}

	rc, info, err := h.invoiceService.OpenFile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	defer rc.Close()

	return streamFile(c, rc, info)
}

// streamFile writes a stored blob to the response with download headers.
func streamFile(c echo.Context, r io.Reader, info *ports.FileInfo) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+info.Name+`"`)
	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(info.Length, 10))
	return c.Stream(http.StatusOK, info.ContentType, r)
}
