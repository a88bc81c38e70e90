package entities

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTransferPlanConfig_Defaults(t *testing.T) {
	var cfg TransferPlanConfig
	if cfg.Objective() != MinimizeCost {
		t.Errorf("Expected empty objective to mean minimize_cost, got %s", cfg.Objective())
	}
	if cfg.Mode() != BinaryAssignment {
		t.Errorf("Expected binary mode by default, got %s", cfg.Mode())
	}

	cfg.AllowFractionalAssignment = true
	if cfg.Mode() != FractionalAssignment {
		t.Errorf("Expected fractional mode, got %s", cfg.Mode())
	}
}

func TestTransferPlanConfig_BudgetCap(t *testing.T) {
	zero, limit := 0.0, 1500.0

	if _, ok := (TransferPlanConfig{}).BudgetCap(); ok {
		t.Error("Unset budget should not cap")
	}
	if _, ok := (TransferPlanConfig{BudgetCapital: &zero}).BudgetCap(); ok {
		t.Error("Zero budget should not cap")
	}
	if got, ok := (TransferPlanConfig{BudgetCapital: &limit}).BudgetCap(); !ok || got != 1500 {
		t.Errorf("Expected cap 1500, got %v (%v)", got, ok)
	}
}

func TestTransferPlanConfig_Validate(t *testing.T) {
	negative := -1.0
	zero := 0.0
	rate := 1.5

	if err := (TransferPlanConfig{BudgetCapital: &zero}).Validate(); err != nil {
		t.Errorf("Zero budget should be accepted: %v", err)
	}
	err := (TransferPlanConfig{BudgetCapital: &negative}).Validate()
	if err == nil || !strings.Contains(err.Error(), "budget capital cannot be negative") {
		t.Errorf("Expected negative budget error, got %v", err)
	}
	err = (TransferPlanConfig{DiscountRate: &rate}).Validate()
	if err == nil || !strings.Contains(err.Error(), "discount rate") {
		t.Errorf("Expected discount rate error, got %v", err)
	}
}

func TestObjectiveFunction_IsDeclared(t *testing.T) {
	for _, o := range []ObjectiveFunction{MinimizeCost, MinimizeTime, BalanceUtilization, MultiObjective} {
		if !o.IsDeclared() {
			t.Errorf("Expected %s to be declared", o)
		}
	}
	if ObjectiveFunction("maximize_profit").IsDeclared() {
		t.Errorf("Expected unknown objective to be undeclared")
	}
}

func TestExcludedSets(t *testing.T) {
	cfg := TransferPlanConfig{
		ExcludedProducts: []ProductID{"A", "B", "A"},
		ExcludedPlants:   []PlantID{"X"},
	}
	if len(cfg.ExcludedProductSet()) != 2 {
		t.Errorf("Expected 2 distinct excluded products, got %d", len(cfg.ExcludedProductSet()))
	}
	if _, ok := cfg.ExcludedPlantSet()["X"]; !ok {
		t.Errorf("Expected plant X to be excluded")
	}
}

func TestAssignmentMode_JSON(t *testing.T) {
	data, err := json.Marshal(TransferPlanResult{Mode: FractionalAssignment})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"mode":"fractional"`) {
		t.Errorf("Expected mode rendered by name, got %s", data)
	}
}
