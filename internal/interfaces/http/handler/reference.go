package handler

import (
	fleetapp "github.com/fleet/backend/internal/application/fleet"
	"github.com/gin-gonic/gin"
)

// ReferenceHandler handles truck and client reference data endpoints
type ReferenceHandler struct {
	BaseHandler
	referenceService *fleetapp.ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(referenceService *fleetapp.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

// TruckRequest represents a request to register a truck
type TruckRequest struct {
	LicensePlate string `json:"license_plate" binding:"required,min=1,max=20"`
	Brand        string `json:"brand" binding:"max=100"`
	Model        string `json:"model" binding:"max=100"`
	Year         int    `json:"year" binding:"omitempty,min=1950,max=2100"`
}

// ClientRequest represents a request to register a client
type ClientRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	TaxID       string `json:"tax_id" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	PhoneNumber string `json:"phone_number" binding:"max=50"`
}

// CreateTruck godoc
// @Summary  Register a truck
// @Tags     trucks
// @Router   /trucks [post]
func (h *ReferenceHandler) CreateTruck(c *gin.Context) {
	var req TruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	truck, err := h.referenceService.CreateTruck(c.Request.Context(), req.LicensePlate, req.Brand, req.Model, req.Year)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, truck)
}

// GetTruck godoc
// @Summary  Get a truck by ID
// @Tags     trucks
// @Router   /trucks/{id} [get]
func (h *ReferenceHandler) GetTruck(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid truck ID format")
		return
	}
	truck, err := h.referenceService.GetTruck(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, truck)
}

// ListTrucks godoc
// @Summary  List trucks
// @Tags     trucks
// @Router   /trucks [get]
func (h *ReferenceHandler) ListTrucks(c *gin.Context) {
	filter := bindListFilter(c)
	trucks, total, err := h.referenceService.ListTrucks(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, trucks, total, filter.Page, filter.PageSize)
}

// DeleteTruck godoc
// @Summary  Delete a truck
// @Tags     trucks
// @Router   /trucks/{id} [delete]
func (h *ReferenceHandler) DeleteTruck(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid truck ID format")
		return
	}
	if err := h.referenceService.DeleteTruck(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateClient godoc
// @Summary  Register a client
// @Tags     clients
// @Router   /clients [post]
func (h *ReferenceHandler) CreateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	client, err := h.referenceService.CreateClient(c.Request.Context(), req.Name, req.TaxID, req.Email, req.PhoneNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, client)
}

// GetClient godoc
// @Summary  Get a client by ID
// @Tags     clients
// @Router   /clients/{id} [get]
func (h *ReferenceHandler) GetClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid client ID format")
		return
	}
	client, err := h.referenceService.GetClient(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, client)
}

// ListClients godoc
// @Summary  List clients
// @Tags     clients
// @Router   /clients [get]
func (h *ReferenceHandler) ListClients(c *gin.Context) {
	filter := bindListFilter(c)
	clients, total, err := h.referenceService.ListClients(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, clients, total, filter.Page, filter.PageSize)
}

// DeleteClient godoc
// @Summary  Delete a client
// @Tags     clients
// @Router   /clients/{id} [delete]
func (h *ReferenceHandler) DeleteClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid client ID format")
		return
	}
	if err := h.referenceService.DeleteClient(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
