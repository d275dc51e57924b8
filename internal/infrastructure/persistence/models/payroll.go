package models

import (
	"encoding/json"
	"time"

	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollPeriodModel is the persistence model for the PayrollPeriod entity.
type PayrollPeriodModel struct {
	BaseModel
	Year               int       `gorm:"not null;uniqueIndex:idx_periods_year_month"`
	Month              int       `gorm:"not null;uniqueIndex:idx_periods_year_month"`
	StartDate          time.Time `gorm:"not null"`
	EndDate            time.Time `gorm:"not null"`
	HasTripsInProgress bool      `gorm:"not null;default:false"`
	NotifiedAt         *time.Time
}

// TableName returns the table name for GORM
func (PayrollPeriodModel) TableName() string {
	return "payroll_periods"
}

// ToDomain converts the persistence model to a domain PayrollPeriod entity.
func (m *PayrollPeriodModel) ToDomain() *payroll.PayrollPeriod {
	return &payroll.PayrollPeriod{
		BaseEntity:         m.BaseModel.ToDomain(),
		Year:               m.Year,
		Month:              m.Month,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		HasTripsInProgress: m.HasTripsInProgress,
		NotifiedAt:         m.NotifiedAt,
	}
}

// FromDomain populates the persistence model from a domain PayrollPeriod entity.
func (m *PayrollPeriodModel) FromDomain(p *payroll.PayrollPeriod) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Year = p.Year
	m.Month = p.Month
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
	m.HasTripsInProgress = p.HasTripsInProgress
	m.NotifiedAt = p.NotifiedAt
}

// CommissionHistoryModel is the persistence model for CommissionHistoryEntry.
// Percentage is stored as a fraction in [0, 1].
type CommissionHistoryModel struct {
	BaseModel
	DriverID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_commission_history_driver"`
	Percentage     decimal.Decimal `gorm:"type:decimal(8,6);not null"`
	EffectiveFrom  time.Time       `gorm:"not null;index:idx_commission_history_driver"`
	EffectiveUntil *time.Time
}

// TableName returns the table name for GORM
func (CommissionHistoryModel) TableName() string {
	return "commission_history"
}

// ToDomain converts the persistence model to a domain CommissionHistoryEntry.
func (m *CommissionHistoryModel) ToDomain() *payroll.CommissionHistoryEntry {
	return &payroll.CommissionHistoryEntry{
		BaseEntity:     m.BaseModel.ToDomain(),
		DriverID:       m.DriverID,
		Percentage:     valueobject.MustFraction(m.Percentage),
		EffectiveFrom:  m.EffectiveFrom,
		EffectiveUntil: m.EffectiveUntil,
	}
}

// FromDomain populates the persistence model from a domain CommissionHistoryEntry.
func (m *CommissionHistoryModel) FromDomain(e *payroll.CommissionHistoryEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.DriverID = e.DriverID
	m.Percentage = e.Percentage.Value()
	m.EffectiveFrom = e.EffectiveFrom
	m.EffectiveUntil = e.EffectiveUntil
}

// MinimumGuaranteedModel is the persistence model for MinimumGuaranteedEntry.
type MinimumGuaranteedModel struct {
	BaseModel
	DriverID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_minimum_guaranteed_driver"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EffectiveFrom  time.Time       `gorm:"not null;index:idx_minimum_guaranteed_driver"`
	EffectiveUntil *time.Time
}

// TableName returns the table name for GORM
func (MinimumGuaranteedModel) TableName() string {
	return "minimum_guaranteed_history"
}

// ToDomain converts the persistence model to a domain MinimumGuaranteedEntry.
func (m *MinimumGuaranteedModel) ToDomain() *payroll.MinimumGuaranteedEntry {
	return &payroll.MinimumGuaranteedEntry{
		BaseEntity:     m.BaseModel.ToDomain(),
		DriverID:       m.DriverID,
		Amount:         m.Amount,
		EffectiveFrom:  m.EffectiveFrom,
		EffectiveUntil: m.EffectiveUntil,
	}
}

// FromDomain populates the persistence model from a domain MinimumGuaranteedEntry.
func (m *MinimumGuaranteedModel) FromDomain(e *payroll.MinimumGuaranteedEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.DriverID = e.DriverID
	m.Amount = e.Amount
	m.EffectiveFrom = e.EffectiveFrom
	m.EffectiveUntil = e.EffectiveUntil
}

// OtherItemModel is the persistence model for the OtherItem entity.
type OtherItemModel struct {
	BaseModel
	DriverID    uuid.UUID             `gorm:"type:uuid;not null;index:idx_other_items_driver_period"`
	PeriodID    uuid.UUID             `gorm:"type:uuid;not null;index:idx_other_items_driver_period"`
	Type        payroll.OtherItemType `gorm:"type:varchar(30);not null"`
	Amount      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Description string                `gorm:"type:varchar(500);not null"`
	Date        time.Time             `gorm:"not null"`
	Reference   string                `gorm:"type:varchar(100)"`
	CreatedBy   *uuid.UUID            `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (OtherItemModel) TableName() string {
	return "payroll_other_items"
}

// ToDomain converts the persistence model to a domain OtherItem entity.
func (m *OtherItemModel) ToDomain() *payroll.OtherItem {
	return &payroll.OtherItem{
		BaseEntity:  m.BaseModel.ToDomain(),
		DriverID:    m.DriverID,
		PeriodID:    m.PeriodID,
		Type:        m.Type,
		Amount:      m.Amount,
		Description: m.Description,
		Date:        m.Date,
		Reference:   m.Reference,
		CreatedBy:   m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain OtherItem entity.
func (m *OtherItemModel) FromDomain(i *payroll.OtherItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.DriverID = i.DriverID
	m.PeriodID = i.PeriodID
	m.Type = i.Type
	m.Amount = i.Amount
	m.Description = i.Description
	m.Date = i.Date
	m.Reference = i.Reference
	m.CreatedBy = i.CreatedBy
}

// PayrollSummaryModel is the persistence model for the PayrollSummary
// aggregate. The unique (period, driver) index is the concurrency guard:
// two simultaneous calculations for the same pair cannot both insert.
type PayrollSummaryModel struct {
	BaseModel
	PeriodID                 uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_summaries_period_driver"`
	DriverID                 uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_summaries_period_driver"`
	CommissionPercentageUsed decimal.Decimal       `gorm:"type:decimal(8,6);not null"`
	MinimumGuaranteedUsed    decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	CommissionFromTrips      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	ExpensesToReimburse      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	ExpensesToDeduct         decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	GuaranteedMinimumApplied decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	AdvancesDeducted         decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	OtherItemsTotal          decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	BalanceInFavor           decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	BalanceAgainst           decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	TotalAmount              decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Status                   payroll.SummaryStatus `gorm:"type:varchar(30);not null;index"`
	ErrorMessage             string                `gorm:"type:text"`
	IsAutoGenerated          bool                  `gorm:"not null;default:false"`
	Notes                    string                `gorm:"type:text"`
	ApprovedAt               *time.Time
}

// TableName returns the table name for GORM
func (PayrollSummaryModel) TableName() string {
	return "payroll_summaries"
}

// ToDomain converts the persistence model to a domain PayrollSummary.
func (m *PayrollSummaryModel) ToDomain() *payroll.PayrollSummary {
	return &payroll.PayrollSummary{
		BaseEntity:               m.BaseModel.ToDomain(),
		PeriodID:                 m.PeriodID,
		DriverID:                 m.DriverID,
		CommissionPercentageUsed: valueobject.MustFraction(m.CommissionPercentageUsed),
		MinimumGuaranteedUsed:    m.MinimumGuaranteedUsed,
		CommissionFromTrips:      m.CommissionFromTrips,
		ExpensesToReimburse:      m.ExpensesToReimburse,
		ExpensesToDeduct:         m.ExpensesToDeduct,
		GuaranteedMinimumApplied: m.GuaranteedMinimumApplied,
		AdvancesDeducted:         m.AdvancesDeducted,
		OtherItemsTotal:          m.OtherItemsTotal,
		BalanceInFavor:           m.BalanceInFavor,
		BalanceAgainst:           m.BalanceAgainst,
		TotalAmount:              m.TotalAmount,
		Status:                   m.Status,
		ErrorMessage:             m.ErrorMessage,
		IsAutoGenerated:          m.IsAutoGenerated,
		Notes:                    m.Notes,
		ApprovedAt:               m.ApprovedAt,
	}
}

// FromDomain populates the persistence model from a domain PayrollSummary.
func (m *PayrollSummaryModel) FromDomain(s *payroll.PayrollSummary) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.PeriodID = s.PeriodID
	m.DriverID = s.DriverID
	m.CommissionPercentageUsed = s.CommissionPercentageUsed.Value()
	m.MinimumGuaranteedUsed = s.MinimumGuaranteedUsed
	m.CommissionFromTrips = s.CommissionFromTrips
	m.ExpensesToReimburse = s.ExpensesToReimburse
	m.ExpensesToDeduct = s.ExpensesToDeduct
	m.GuaranteedMinimumApplied = s.GuaranteedMinimumApplied
	m.AdvancesDeducted = s.AdvancesDeducted
	m.OtherItemsTotal = s.OtherItemsTotal
	m.BalanceInFavor = s.BalanceInFavor
	m.BalanceAgainst = s.BalanceAgainst
	m.TotalAmount = s.TotalAmount
	m.Status = s.Status
	m.ErrorMessage = s.ErrorMessage
	m.IsAutoGenerated = s.IsAutoGenerated
	m.Notes = s.Notes
	m.ApprovedAt = s.ApprovedAt
}

// PayrollDetailModel is the persistence model for the PayrollDetail entity.
// CalculationData is stored as a JSON column for audit display.
type PayrollDetailModel struct {
	BaseModel
	SummaryID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	Type        payroll.DetailType `gorm:"type:varchar(30);not null"`
	Description string             `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	TripID      *uuid.UUID         `gorm:"type:uuid;index"`
	ExpenseID   *uuid.UUID         `gorm:"type:uuid"`
	AdvanceID   *uuid.UUID         `gorm:"type:uuid"`
	OtherItemID *uuid.UUID         `gorm:"type:uuid"`
	Calculation []byte             `gorm:"column:calculation_data;type:jsonb"`
}

// TableName returns the table name for GORM
func (PayrollDetailModel) TableName() string {
	return "payroll_details"
}

// ToDomain converts the persistence model to a domain PayrollDetail.
// A malformed calculation blob is treated as absent rather than failing
// the whole read.
func (m *PayrollDetailModel) ToDomain() *payroll.PayrollDetail {
	var calc *payroll.CalculationData
	if len(m.Calculation) > 0 {
		var data payroll.CalculationData
		if err := json.Unmarshal(m.Calculation, &data); err == nil {
			calc = &data
		}
	}
	return &payroll.PayrollDetail{
		BaseEntity:  m.BaseModel.ToDomain(),
		SummaryID:   m.SummaryID,
		Type:        m.Type,
		Description: m.Description,
		Amount:      m.Amount,
		TripID:      m.TripID,
		ExpenseID:   m.ExpenseID,
		AdvanceID:   m.AdvanceID,
		OtherItemID: m.OtherItemID,
		Calculation: calc,
	}
}

// FromDomain populates the persistence model from a domain PayrollDetail.
func (m *PayrollDetailModel) FromDomain(d *payroll.PayrollDetail) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.SummaryID = d.SummaryID
	m.Type = d.Type
	m.Description = d.Description
	m.Amount = d.Amount
	m.TripID = d.TripID
	m.ExpenseID = d.ExpenseID
	m.AdvanceID = d.AdvanceID
	m.OtherItemID = d.OtherItemID
	m.Calculation = nil
	if d.Calculation != nil {
		if raw, err := json.Marshal(d.Calculation); err == nil {
			m.Calculation = raw
		}
	}
}
