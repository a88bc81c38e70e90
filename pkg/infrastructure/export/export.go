// Package export renders transfer plan results as spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/transferplan/pkg/domain/entities"
)

const (
	AssignmentsSheet = "Assignments"
	SummarySheet     = "Summary"
	ContentType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// AssignmentHeader is the column order shared by the CSV and workbook exports
var AssignmentHeader = []string{
	"product_id", "source_plant_id", "target_plant_id", "assigned_volume",
	"utilization", "is_transfer", "transfer_cost", "monthly_production_cost",
	"total_cost", "start_month",
}

func assignmentValues(a entities.TransferAssignment) []interface{} {
	source := ""
	if a.SourcePlantID != nil {
		source = string(*a.SourcePlantID)
	}
	return []interface{}{
		string(a.ProductID), source, string(a.TargetPlantID), a.AssignedVolume,
		a.Utilization, a.IsTransfer, a.TransferCost, a.MonthlyProductionCost,
		a.TotalCost, a.StartMonth,
	}
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}

// WriteAssignmentsCSV writes one row per assignment
func WriteAssignmentsCSV(w io.Writer, result *entities.TransferPlanResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(AssignmentHeader); err != nil {
		return err
	}
	for _, a := range result.Assignments {
		values := assignmentValues(a)
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatCell(v)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func summaryRows(result *entities.TransferPlanResult) [][]interface{} {
	rows := [][]interface{}{
		{"run_id", result.RunID},
		{"objective_function", string(result.ObjectiveFunction)},
		{"mode", result.Mode.String()},
		{"feasible", result.Feasible},
		{"solver_status", result.SolverStatus},
		{"total_transfer_cost", result.TotalTransferCost},
		{"total_monthly_cost", result.TotalMonthlyCost},
		{"total_cost", result.TotalCost},
		{"average_utilization", result.AverageUtilization},
		{"optimization_time_seconds", result.OptimizationTimeSeconds},
	}
	for _, diagnostic := range result.ConstraintsViolated {
		rows = append(rows, []interface{}{"constraint_violated", diagnostic})
	}
	return rows
}

// Workbook builds an xlsx workbook with the assignments and a summary sheet
func Workbook(result *entities.TransferPlanResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), AssignmentsSheet); err != nil {
		f.Close()
		return nil, err
	}

	header := make([]interface{}, len(AssignmentHeader))
	for i, h := range AssignmentHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(AssignmentsSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	for i, a := range result.Assignments {
		values := assignmentValues(a)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(AssignmentsSheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("assignment row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()
		return nil, err
	}
	for i, row := range summaryRows(result) {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("summary row %d: %w", i+1, err)
		}
	}
	return f, nil
}

// WriteWorkbook streams the xlsx workbook for result to w
func WriteWorkbook(w io.Writer, result *entities.TransferPlanResult) error {
	f, err := Workbook(result)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
