package export

import (
	"context"
	"fmt"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExcelExporter renders a period's settlement into an xlsx workbook:
// one overview sheet with a row per driver, one detail sheet per summary.
type ExcelExporter struct {
	summaryRepo payroll.SummaryRepository
	periodRepo  payroll.PeriodRepository
	driverRepo  fleet.DriverRepository
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter(summaryRepo payroll.SummaryRepository, periodRepo payroll.PeriodRepository, driverRepo fleet.DriverRepository) *ExcelExporter {
	return &ExcelExporter{
		summaryRepo: summaryRepo,
		periodRepo:  periodRepo,
		driverRepo:  driverRepo,
	}
}

var overviewHeaders = []string{
	"Driver", "Commission", "Reimbursed", "Deducted",
	"Guaranteed minimum", "Advances", "Other items", "Total",
}

// ExportPeriod renders the period workbook. It refuses to export while
// any summary is not yet approved: the report is a settlement document,
// not a progress snapshot.
func (e *ExcelExporter) ExportPeriod(ctx context.Context, periodID uuid.UUID) (string, []byte, error) {
	period, err := e.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return "", nil, err
	}
	pending, err := e.summaryRepo.CountByPeriodNotInStatus(ctx, periodID, payroll.StatusApproved)
	if err != nil {
		return "", nil, err
	}
	if pending > 0 {
		return "", nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Period %s still has %d unapproved summaries", period.Label(), pending))
	}

	summaries, err := e.summaryRepo.FindByPeriod(ctx, periodID)
	if err != nil {
		return "", nil, err
	}

	driverIDs := make([]uuid.UUID, len(summaries))
	for i := range summaries {
		driverIDs[i] = summaries[i].DriverID
	}
	drivers, err := e.driverRepo.FindByIDs(ctx, driverIDs)
	if err != nil {
		return "", nil, err
	}
	names := make(map[uuid.UUID]string, len(drivers))
	for i := range drivers {
		names[drivers[i].ID] = drivers[i].FullName()
	}

	f := excelize.NewFile()
	defer f.Close()

	overview := "Summary " + period.Label()
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		return "", nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return "", nil, err
	}

	for col, header := range overviewHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(overview, cell, header)
		f.SetCellStyle(overview, cell, cell, headerStyle)
	}
	f.SetColWidth(overview, "A", "A", 28)
	f.SetColWidth(overview, "B", "H", 18)

	usedSheets := map[string]bool{overview: true}
	for i := range summaries {
		s := &summaries[i]
		row := i + 2
		name := names[s.DriverID]
		if name == "" {
			name = s.DriverID.String()
		}
		f.SetCellValue(overview, fmt.Sprintf("A%d", row), name)
		f.SetCellValue(overview, fmt.Sprintf("B%d", row), toFloat(s.CommissionFromTrips))
		f.SetCellValue(overview, fmt.Sprintf("C%d", row), toFloat(s.ExpensesToReimburse))
		f.SetCellValue(overview, fmt.Sprintf("D%d", row), toFloat(s.ExpensesToDeduct))
		f.SetCellValue(overview, fmt.Sprintf("E%d", row), toFloat(s.GuaranteedMinimumApplied))
		f.SetCellValue(overview, fmt.Sprintf("F%d", row), toFloat(s.AdvancesDeducted))
		f.SetCellValue(overview, fmt.Sprintf("G%d", row), toFloat(s.OtherItemsTotal))
		f.SetCellValue(overview, fmt.Sprintf("H%d", row), toFloat(s.TotalAmount))

		if err := e.writeDetailSheet(ctx, f, headerStyle, s, sheetNameFor(name, usedSheets)); err != nil {
			return "", nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, err
	}
	filename := fmt.Sprintf("payroll_%s.xlsx", period.Label())
	return filename, buf.Bytes(), nil
}

// sheetNameFor returns a workbook-unique sheet name for the driver,
// within the 31-char cap of the xlsx format. Drivers sharing a name (or a
// 31-char prefix) get a numeric suffix instead of clobbering each other's
// sheet.
func sheetNameFor(driverName string, used map[string]bool) string {
	base := driverName
	if len(base) > 31 {
		base = base[:31]
	}
	candidate := base
	for n := 2; used[candidate]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		candidate = trimmed + suffix
	}
	used[candidate] = true
	return candidate
}

func (e *ExcelExporter) writeDetailSheet(ctx context.Context, f *excelize.File, headerStyle int, s *payroll.PayrollSummary, sheet string) error {
	details, err := e.summaryRepo.FindDetails(ctx, s.ID)
	if err != nil {
		return err
	}

	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	for col, header := range []string{"Concept", "Description", "Amount"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 50)
	f.SetColWidth(sheet, "C", "C", 16)

	row := 2
	for i := range details {
		d := &details[i]
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), detailLabel(d.Type))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), d.Description)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), toFloat(d.Amount))
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), toFloat(s.TotalAmount))
	return nil
}

func detailLabel(t payroll.DetailType) string {
	switch t {
	case payroll.DetailTripCommission:
		return "Trip commission"
	case payroll.DetailExpenseReimburse:
		return "Expense reimbursed"
	case payroll.DetailExpenseDeduct:
		return "Expense deducted"
	case payroll.DetailAdvance:
		return "Advance"
	case payroll.DetailClientAdvance:
		return "Client advance"
	case payroll.DetailOtherItem:
		return "Other item"
	case payroll.DetailGuaranteedMinimum:
		return "Guaranteed minimum"
	case payroll.DetailMissingRate:
		return "Missing rate"
	default:
		return string(t)
	}
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
