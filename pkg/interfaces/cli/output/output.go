package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/infrastructure/export"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	SolveTime time.Duration
	// Stdout receives console output; os.Stdout when nil
	Stdout io.Writer
}

func (c Config) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// Generate creates output in the specified format
func Generate(result *entities.TransferPlanResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "xlsx":
		return generateXLSXOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *entities.TransferPlanResult, config Config) error {
	w := config.stdout()
	fmt.Fprintf(w, "📊 Transfer Plan Summary\n")
	fmt.Fprintf(w, "========================\n\n")

	fmt.Fprintf(w, "Objective: %s (%s)\n", result.ObjectiveFunction, result.Mode)
	fmt.Fprintf(w, "Solver Status: %s\n", result.SolverStatus)
	fmt.Fprintf(w, "Feasible: %t\n", result.Feasible)
	fmt.Fprintf(w, "Assignments: %d\n", len(result.Assignments))
	fmt.Fprintf(w, "Transfer Cost: %.2f\n", result.TotalTransferCost)
	fmt.Fprintf(w, "Monthly Production Cost: %.2f\n", result.TotalMonthlyCost)
	fmt.Fprintf(w, "Total Cost: %.2f\n", result.TotalCost)
	fmt.Fprintf(w, "Average Utilization: %.2f%%\n", result.AverageUtilization)
	fmt.Fprintf(w, "Optimization Time: %.3fs\n", result.OptimizationTimeSeconds)
	if config.SolveTime > 0 {
		fmt.Fprintf(w, "Wall Time: %v\n", config.SolveTime)
	}
	fmt.Fprintln(w)

	if len(result.Assignments) > 0 {
		fmt.Fprintf(w, "📋 Assignments:\n")
		fmt.Fprintf(w, "%-12s %-12s %-12s %12s %8s %-8s %14s %14s %5s\n",
			"Product", "Source", "Target", "Volume", "Util %", "Transfer", "Transfer Cost", "Monthly Cost", "Start")
		fmt.Fprintf(w, "%-12s %-12s %-12s %12s %8s %-8s %14s %14s %5s\n",
			"------------", "------------", "------------", "------------", "--------", "--------", "--------------", "--------------", "-----")

		for _, a := range result.Assignments {
			source := "-"
			if a.SourcePlantID != nil {
				source = string(*a.SourcePlantID)
			}
			transfer := "no"
			if a.IsTransfer {
				transfer = "yes"
			}
			fmt.Fprintf(w, "%-12s %-12s %-12s %12.2f %8.2f %-8s %14.2f %14.2f %5d\n",
				a.ProductID, source, a.TargetPlantID, a.AssignedVolume, a.Utilization,
				transfer, a.TransferCost, a.MonthlyProductionCost, a.StartMonth)
		}
		fmt.Fprintln(w)
	}

	if len(result.ConstraintsViolated) > 0 {
		fmt.Fprintf(w, "⚠️  Diagnostics:\n")
		for _, diagnostic := range result.ConstraintsViolated {
			fmt.Fprintf(w, "  - %s\n", diagnostic)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *entities.TransferPlanResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.stdout(), string(jsonData))
		return nil
	}

	filename, err := outputPath(config, "transfer_plan.json")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.stdout(), "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes the assignments as CSV, to stdout without an output directory
func generateCSVOutput(result *entities.TransferPlanResult, config Config) error {
	if config.OutputDir == "" {
		return export.WriteAssignmentsCSV(config.stdout(), result)
	}

	filename, err := outputPath(config, "assignments.csv")
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := export.WriteAssignmentsCSV(file, result); err != nil {
		return fmt.Errorf("failed to write assignments CSV: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.stdout(), "💾 CSV results saved to: %s\n", filename)
	}
	return nil
}

// generateXLSXOutput writes the assignments and summary workbook
func generateXLSXOutput(result *entities.TransferPlanResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for xlsx format")
	}

	filename, err := outputPath(config, "transfer_plan.xlsx")
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	defer file.Close()

	if err := export.WriteWorkbook(file, result); err != nil {
		return err
	}

	if config.Verbose {
		fmt.Fprintf(config.stdout(), "💾 Workbook saved to: %s\n", filename)
	}
	return nil
}

func outputPath(config Config, name string) (string, error) {
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return filepath.Join(config.OutputDir, name), nil
}
