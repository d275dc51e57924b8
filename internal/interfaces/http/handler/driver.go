package handler

import (
	fleetapp "github.com/fleet/backend/internal/application/fleet"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// DriverHandler handles driver endpoints
type DriverHandler struct {
	BaseHandler
	driverService *fleetapp.DriverService
}

// NewDriverHandler creates a new DriverHandler
func NewDriverHandler(driverService *fleetapp.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// DriverRequest represents a request to create or update a driver
type DriverRequest struct {
	FirstName          string `json:"first_name" binding:"required,min=1,max=100"`
	LastName           string `json:"last_name" binding:"required,min=1,max=100"`
	Email              string `json:"email" binding:"required,email,max=200"`
	DNI                string `json:"dni" binding:"required,max=20"`
	CUIL               string `json:"cuil" binding:"required,max=20"`
	PhoneNumber        string `json:"phone_number" binding:"max=50"`
	CBU                string `json:"cbu" binding:"max=30"`
	EnrollmentDate     string `json:"enrollment_date" binding:"required"`
	LicenseDueDate     string `json:"license_due_date"`
	MedicalExamDueDate string `json:"medical_exam_due_date"`
}

// DeactivateDriverRequest represents a request to deactivate a driver
type DeactivateDriverRequest struct {
	TerminationDate string `json:"termination_date" binding:"required"`
}

func (r *DriverRequest) toInput() (fleetapp.DriverInput, error) {
	enrollment, err := parseDate(r.EnrollmentDate)
	if err != nil {
		return fleetapp.DriverInput{}, err
	}
	license, err := parseOptionalDate(r.LicenseDueDate)
	if err != nil {
		return fleetapp.DriverInput{}, err
	}
	medical, err := parseOptionalDate(r.MedicalExamDueDate)
	if err != nil {
		return fleetapp.DriverInput{}, err
	}
	return fleetapp.DriverInput{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Email:              r.Email,
		DNI:                r.DNI,
		CUIL:               r.CUIL,
		PhoneNumber:        r.PhoneNumber,
		CBU:                r.CBU,
		EnrollmentDate:     enrollment,
		LicenseDueDate:     license,
		MedicalExamDueDate: medical,
	}, nil
}

// Create godoc
// @Summary  Register a new driver
// @Tags     drivers
// @Router   /drivers [post]
func (h *DriverHandler) Create(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, driver)
}

// Update godoc
// @Summary  Update a driver
// @Tags     drivers
// @Router   /drivers/{id} [put]
func (h *DriverHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	driver, err := h.driverService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, driver)
}

// Deactivate godoc
// @Summary  Deactivate a driver
// @Tags     drivers
// @Router   /drivers/{id}/deactivate [post]
func (h *DriverHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}
	var req DeactivateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	termination, err := parseDate(req.TerminationDate)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	driver, err := h.driverService.Deactivate(c.Request.Context(), id, termination)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, driver)
}

// GetByID godoc
// @Summary  Get a driver by ID
// @Tags     drivers
// @Router   /drivers/{id} [get]
func (h *DriverHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}
	driver, err := h.driverService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, driver)
}

// List godoc
// @Summary  List drivers
// @Tags     drivers
// @Router   /drivers [get]
func (h *DriverHandler) List(c *gin.Context) {
	filter := bindListFilter(c)
	drivers, total, err := h.driverService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, drivers, total, filter.Page, filter.PageSize)
}

// bindListFilter binds common pagination query parameters
func bindListFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()
	var query struct {
		Page     int    `form:"page"`
		PageSize int    `form:"page_size"`
		Search   string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err == nil {
		if query.Page > 0 {
			filter.Page = query.Page
		}
		if query.PageSize > 0 && query.PageSize <= 100 {
			filter.PageSize = query.PageSize
		}
		filter.Search = query.Search
	}
	return filter
}
