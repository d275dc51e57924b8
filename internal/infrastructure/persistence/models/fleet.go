package models

import (
	"time"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DriverModel is the persistence model for the Driver entity.
type DriverModel struct {
	BaseModel
	FirstName          string `gorm:"type:varchar(100);not null"`
	LastName           string `gorm:"type:varchar(100);not null"`
	Email              string `gorm:"type:varchar(255)"`
	DNI                string `gorm:"type:varchar(20);not null;index"`
	CUIL               string `gorm:"type:varchar(20)"`
	PhoneNumber        string `gorm:"type:varchar(50)"`
	CBU                string `gorm:"type:varchar(30)"`
	Active             bool   `gorm:"not null;default:true;index"`
	EnrollmentDate     time.Time
	TerminationDate    *time.Time
	LicenseDueDate     *time.Time
	MedicalExamDueDate *time.Time
}

// TableName returns the table name for GORM
func (DriverModel) TableName() string {
	return "drivers"
}

// ToDomain converts the persistence model to a domain Driver entity.
func (m *DriverModel) ToDomain() *fleet.Driver {
	return &fleet.Driver{
		BaseEntity:         m.BaseModel.ToDomain(),
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		Email:              m.Email,
		DNI:                m.DNI,
		CUIL:               m.CUIL,
		PhoneNumber:        m.PhoneNumber,
		CBU:                m.CBU,
		Active:             m.Active,
		EnrollmentDate:     m.EnrollmentDate,
		TerminationDate:    m.TerminationDate,
		LicenseDueDate:     m.LicenseDueDate,
		MedicalExamDueDate: m.MedicalExamDueDate,
	}
}

// FromDomain populates the persistence model from a domain Driver entity.
func (m *DriverModel) FromDomain(d *fleet.Driver) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.FirstName = d.FirstName
	m.LastName = d.LastName
	m.Email = d.Email
	m.DNI = d.DNI
	m.CUIL = d.CUIL
	m.PhoneNumber = d.PhoneNumber
	m.CBU = d.CBU
	m.Active = d.Active
	m.EnrollmentDate = d.EnrollmentDate
	m.TerminationDate = d.TerminationDate
	m.LicenseDueDate = d.LicenseDueDate
	m.MedicalExamDueDate = d.MedicalExamDueDate
}

// TruckModel is the persistence model for the Truck entity.
type TruckModel struct {
	BaseModel
	LicensePlate string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Brand        string `gorm:"type:varchar(100)"`
	Model        string `gorm:"type:varchar(100)"`
	Year         int
	Active       bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (TruckModel) TableName() string {
	return "trucks"
}

// ToDomain converts the persistence model to a domain Truck entity.
func (m *TruckModel) ToDomain() *fleet.Truck {
	return &fleet.Truck{
		BaseEntity:   m.BaseModel.ToDomain(),
		LicensePlate: m.LicensePlate,
		Brand:        m.Brand,
		Model:        m.Model,
		Year:         m.Year,
		Active:       m.Active,
	}
}

// FromDomain populates the persistence model from a domain Truck entity.
func (m *TruckModel) FromDomain(t *fleet.Truck) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.LicensePlate = t.LicensePlate
	m.Brand = t.Brand
	m.Model = t.Model
	m.Year = t.Year
	m.Active = t.Active
}

// ClientModel is the persistence model for the Client entity.
type ClientModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null;index"`
	TaxID       string `gorm:"type:varchar(20)"`
	Email       string `gorm:"type:varchar(255)"`
	PhoneNumber string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *fleet.Client {
	return &fleet.Client{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		TaxID:       m.TaxID,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *fleet.Client) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.TaxID = c.TaxID
	m.Email = c.Email
	m.PhoneNumber = c.PhoneNumber
}

// TripModel is the persistence model for the Trip entity.
type TripModel struct {
	BaseModel
	DocumentNumber       string            `gorm:"type:varchar(50);index"`
	Origin               string            `gorm:"type:varchar(200);not null"`
	Destination          string            `gorm:"type:varchar(200);not null"`
	DriverID             uuid.UUID         `gorm:"type:uuid;not null;index:idx_trips_driver_start"`
	ClientID             uuid.UUID         `gorm:"type:uuid;not null;index"`
	TruckID              *uuid.UUID        `gorm:"type:uuid;index"`
	StartDate            time.Time         `gorm:"not null;index:idx_trips_driver_start"`
	EndDate              *time.Time
	State                fleet.TripState   `gorm:"type:varchar(20);not null;index"`
	BillingMode          fleet.BillingMode `gorm:"type:varchar(20);not null"`
	Rate                 decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	EstimatedKms         decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	LoadWeightOnLoad     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	LoadWeightOnUnload   decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	ClientAdvancePayment decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (TripModel) TableName() string {
	return "trips"
}

// ToDomain converts the persistence model to a domain Trip entity.
func (m *TripModel) ToDomain() *fleet.Trip {
	return &fleet.Trip{
		BaseEntity:           m.BaseModel.ToDomain(),
		DocumentNumber:       m.DocumentNumber,
		Origin:               m.Origin,
		Destination:          m.Destination,
		DriverID:             m.DriverID,
		ClientID:             m.ClientID,
		TruckID:              m.TruckID,
		StartDate:            m.StartDate,
		EndDate:              m.EndDate,
		State:                m.State,
		BillingMode:          m.BillingMode,
		Rate:                 m.Rate,
		EstimatedKms:         m.EstimatedKms,
		LoadWeightOnLoad:     m.LoadWeightOnLoad,
		LoadWeightOnUnload:   m.LoadWeightOnUnload,
		ClientAdvancePayment: m.ClientAdvancePayment,
	}
}

// FromDomain populates the persistence model from a domain Trip entity.
func (m *TripModel) FromDomain(t *fleet.Trip) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.DocumentNumber = t.DocumentNumber
	m.Origin = t.Origin
	m.Destination = t.Destination
	m.DriverID = t.DriverID
	m.ClientID = t.ClientID
	m.TruckID = t.TruckID
	m.StartDate = t.StartDate
	m.EndDate = t.EndDate
	m.State = t.State
	m.BillingMode = t.BillingMode
	m.Rate = t.Rate
	m.EstimatedKms = t.EstimatedKms
	m.LoadWeightOnLoad = t.LoadWeightOnLoad
	m.LoadWeightOnUnload = t.LoadWeightOnUnload
	m.ClientAdvancePayment = t.ClientAdvancePayment
}

// ExpenseModel is the persistence model for the Expense entity.
type ExpenseModel struct {
	BaseModel
	DriverID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_expenses_driver_date"`
	TripID      *uuid.UUID        `gorm:"type:uuid;index"`
	Type        fleet.ExpenseType `gorm:"type:varchar(20);not null;index"`
	Date        time.Time         `gorm:"not null;index:idx_expenses_driver_date"`
	Amount      decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Description string            `gorm:"type:varchar(500)"`
	PaidByAdmin bool              `gorm:"not null;default:false"`
	ReceiptURL  string            `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *fleet.Expense {
	return &fleet.Expense{
		BaseEntity:  m.BaseModel.ToDomain(),
		DriverID:    m.DriverID,
		TripID:      m.TripID,
		Type:        m.Type,
		Date:        m.Date,
		Amount:      m.Amount,
		Description: m.Description,
		PaidByAdmin: m.PaidByAdmin,
		ReceiptURL:  m.ReceiptURL,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *fleet.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.DriverID = e.DriverID
	m.TripID = e.TripID
	m.Type = e.Type
	m.Date = e.Date
	m.Amount = e.Amount
	m.Description = e.Description
	m.PaidByAdmin = e.PaidByAdmin
	m.ReceiptURL = e.ReceiptURL
}

// AdvancePaymentModel is the persistence model for the AdvancePayment entity.
type AdvancePaymentModel struct {
	BaseModel
	DriverID uuid.UUID       `gorm:"type:uuid;not null;index:idx_advances_driver_date"`
	Date     time.Time       `gorm:"not null;index:idx_advances_driver_date"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes    string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (AdvancePaymentModel) TableName() string {
	return "advance_payments"
}

// ToDomain converts the persistence model to a domain AdvancePayment entity.
func (m *AdvancePaymentModel) ToDomain() *fleet.AdvancePayment {
	return &fleet.AdvancePayment{
		BaseEntity: m.BaseModel.ToDomain(),
		DriverID:   m.DriverID,
		Date:       m.Date,
		Amount:     m.Amount,
		Notes:      m.Notes,
	}
}

// FromDomain populates the persistence model from a domain AdvancePayment entity.
func (m *AdvancePaymentModel) FromDomain(a *fleet.AdvancePayment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.DriverID = a.DriverID
	m.Date = a.Date
	m.Amount = a.Amount
	m.Notes = a.Notes
}
