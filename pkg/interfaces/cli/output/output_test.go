package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vsinha/transferplan/pkg/domain/entities"
)

func sampleResult() *entities.TransferPlanResult {
	source := entities.PlantID("X")
	return &entities.TransferPlanResult{
		RunID:             "run-1",
		ObjectiveFunction: entities.MinimizeCost,
		Mode:              entities.BinaryAssignment,
		Assignments: []entities.TransferAssignment{
			{ProductID: "P1", SourcePlantID: &source, TargetPlantID: "Y", AssignedVolume: 100, Utilization: 50, IsTransfer: true, TransferCost: 5000, MonthlyProductionCost: 1200, TotalCost: 6200},
		},
		TotalTransferCost:   5000,
		TotalMonthlyCost:    1200,
		TotalCost:           6200,
		AverageUtilization:  50,
		Feasible:            true,
		ConstraintsViolated: []string{},
		SolverStatus:        "Optimal",
	}
}

func TestGenerate_Text(t *testing.T) {
	var out bytes.Buffer
	if err := Generate(sampleResult(), Config{Format: "text", Stdout: &out}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{"Solver Status: Optimal", "Total Cost: 6200.00", "P1", "yes"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected text output to contain %q, got:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Diagnostics") {
		t.Errorf("Did not expect diagnostics section for a clean result")
	}
}

func TestGenerate_JSONToDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	if err := Generate(sampleResult(), Config{Format: "json", OutputDir: dir, Stdout: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "transfer_plan.json"))
	if err != nil {
		t.Fatalf("Expected JSON file: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if decoded["mode"] != "binary" {
		t.Errorf("Expected mode binary, got %v", decoded["mode"])
	}
}

func TestGenerate_CSVAndXLSX(t *testing.T) {
	var out bytes.Buffer
	if err := Generate(sampleResult(), Config{Format: "csv", Stdout: &out}); err != nil {
		t.Fatalf("Generate csv failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "product_id,source_plant_id") {
		t.Errorf("Unexpected CSV output: %s", out.String())
	}

	if err := Generate(sampleResult(), Config{Format: "xlsx"}); err == nil {
		t.Errorf("Expected xlsx without output directory to fail")
	}

	dir := t.TempDir()
	if err := Generate(sampleResult(), Config{Format: "xlsx", OutputDir: dir}); err != nil {
		t.Fatalf("Generate xlsx failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "transfer_plan.xlsx")); err != nil {
		t.Errorf("Expected workbook file: %v", err)
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	if err := Generate(sampleResult(), Config{Format: "pdf"}); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
