package handler

import (
	fleetapp "github.com/fleet/backend/internal/application/fleet"
	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripHandler handles trip endpoints
type TripHandler struct {
	BaseHandler
	tripService *fleetapp.TripService
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(tripService *fleetapp.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// TripRequest represents a request to create or update a trip
type TripRequest struct {
	DocumentNumber       string   `json:"document_number" binding:"max=50"`
	Origin               string   `json:"origin" binding:"required,min=1,max=200"`
	Destination          string   `json:"destination" binding:"required,min=1,max=200"`
	DriverID             string   `json:"driver_id" binding:"required,uuid"`
	ClientID             string   `json:"client_id" binding:"required,uuid"`
	TruckID              string   `json:"truck_id" binding:"omitempty,uuid"`
	StartDate            string   `json:"start_date" binding:"required"`
	BillingMode          string   `json:"billing_mode" binding:"required,oneof=PER_DISTANCE PER_WEIGHT"`
	Rate                 *float64 `json:"rate"`
	EstimatedKms         *float64 `json:"estimated_kms"`
	LoadWeightOnLoad     *float64 `json:"load_weight_on_load"`
	ClientAdvancePayment *float64 `json:"client_advance_payment"`
}

// FinishTripRequest represents a request to finish a trip
type FinishTripRequest struct {
	EndDate            string  `json:"end_date" binding:"required"`
	LoadWeightOnUnload float64 `json:"load_weight_on_unload" binding:"min=0"`
}

func (r *TripRequest) toInput() (fleetapp.TripInput, error) {
	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return fleetapp.TripInput{}, err
	}
	driverID, err := uuid.Parse(r.DriverID)
	if err != nil {
		return fleetapp.TripInput{}, err
	}
	clientID, err := uuid.Parse(r.ClientID)
	if err != nil {
		return fleetapp.TripInput{}, err
	}

	input := fleetapp.TripInput{
		DocumentNumber: r.DocumentNumber,
		Origin:         r.Origin,
		Destination:    r.Destination,
		DriverID:       driverID,
		ClientID:       clientID,
		StartDate:      startDate,
		BillingMode:    fleet.BillingMode(r.BillingMode),
	}
	if r.TruckID != "" {
		truckID, err := uuid.Parse(r.TruckID)
		if err != nil {
			return fleetapp.TripInput{}, err
		}
		input.TruckID = &truckID
	}
	if r.Rate != nil {
		input.Rate = decimal.NewFromFloat(*r.Rate)
	}
	if r.EstimatedKms != nil {
		input.EstimatedKms = decimal.NewFromFloat(*r.EstimatedKms)
	}
	if r.LoadWeightOnLoad != nil {
		input.LoadWeightOnLoad = decimal.NewFromFloat(*r.LoadWeightOnLoad)
	}
	if r.ClientAdvancePayment != nil {
		input.ClientAdvancePayment = decimal.NewFromFloat(*r.ClientAdvancePayment)
	}
	return input, nil
}

// Create godoc
// @Summary  Register a new trip
// @Tags     trips
// @Router   /trips [post]
func (h *TripHandler) Create(c *gin.Context) {
	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid trip payload: "+err.Error())
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, trip)
}

// Update godoc
// @Summary  Update a trip
// @Tags     trips
// @Router   /trips/{id} [put]
func (h *TripHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid trip ID format")
		return
	}
	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid trip payload: "+err.Error())
		return
	}

	trip, err := h.tripService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, trip)
}

// Start godoc
// @Summary  Mark a trip as in progress
// @Tags     trips
// @Router   /trips/{id}/start [post]
func (h *TripHandler) Start(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid trip ID format")
		return
	}
	trip, err := h.tripService.Start(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, trip)
}

// Finish godoc
// @Summary  Mark a trip as finished
// @Tags     trips
// @Router   /trips/{id}/finish [post]
func (h *TripHandler) Finish(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid trip ID format")
		return
	}
	var req FinishTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	trip, err := h.tripService.Finish(c.Request.Context(), id, endDate, decimal.NewFromFloat(req.LoadWeightOnUnload))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, trip)
}

// GetByID godoc
// @Summary  Get a trip by ID
// @Tags     trips
// @Router   /trips/{id} [get]
func (h *TripHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid trip ID format")
		return
	}
	trip, err := h.tripService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, trip)
}

// List godoc
// @Summary  List trips
// @Tags     trips
// @Router   /trips [get]
func (h *TripHandler) List(c *gin.Context) {
	filter := bindListFilter(c)
	trips, total, err := h.tripService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, trips, total, filter.Page, filter.PageSize)
}

// Delete godoc
// @Summary  Delete a trip
// @Tags     trips
// @Router   /trips/{id} [delete]
func (h *TripHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid trip ID format")
		return
	}
	if err := h.tripService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
