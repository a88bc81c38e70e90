package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vsinha/transferplan/pkg/application/services/catalog"
	"github.com/vsinha/transferplan/pkg/application/services/optimization"
	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/transferplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/transferplan/pkg/infrastructure/seed"
	"github.com/vsinha/transferplan/pkg/interfaces/cli/output"
	"github.com/vsinha/transferplan/pkg/lp/simplex"
)

// Config holds configuration for the plan command
type Config struct {
	ScenarioDir     string
	ProductsFile    string
	PlantsFile      string
	Example         bool
	Objective       string
	Fractional      bool
	Budget          *float64
	ExcludeProducts string
	ExcludePlants   string
	TimeLimit       time.Duration
	OutputDir       string
	Format          string
	Verbose         bool
	Help            bool
	// Stdout receives console output; os.Stdout when nil
	Stdout io.Writer
}

// PlanCommand loads a catalog, optimizes it and renders the transfer plan
type PlanCommand struct {
	config Config
	out    io.Writer
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config) *PlanCommand {
	out := config.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &PlanCommand{config: config, out: out}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	// Validate inputs
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files)
	}

	products, plants, err := c.loadCatalog(files)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Fprintf(c.out, "✅ Data loaded successfully:\n")
		fmt.Fprintf(c.out, "  Products: %d\n", len(products))
		fmt.Fprintf(c.out, "  Plants: %d\n", len(plants))
		fmt.Fprintln(c.out)
	}

	// Load into an in-memory catalog so the run sees the same snapshot path as the server
	catalogService := catalog.NewCatalogService(memory.NewProductRepository(0), memory.NewPlantRepository(0), nil)
	if _, err := catalogService.Replace(ctx, products, plants, "catalog loaded"); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	engine := optimization.NewTransferPlanServiceWithConfig(
		optimization.EngineConfig{TimeLimit: c.config.TimeLimit, RelativeGap: optimization.DefaultRelativeGap},
		simplex.New(),
	)

	config := c.planConfig()
	if c.config.Verbose {
		fmt.Fprintf(c.out, "🔄 Optimizing (%s, %s)...\n", config.Objective(), config.Mode())
	}

	startTime := time.Now()
	result, err := engine.GenerateTransferPlan(ctx, config, catalogService.Products(), catalogService.Plants())
	solveTime := time.Since(startTime)
	if err != nil {
		var validationErr *optimization.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("catalog not ready for optimization: %w", err)
		}
		return fmt.Errorf("error running optimization: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintf(c.out, "✅ Optimization completed in %v\n\n", solveTime)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		SolveTime: solveTime,
		Stdout:    c.out,
	}
	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintln(c.out, "🏁 Transfer plan complete!")
	}
	return nil
}

// validateInputs validates the command configuration
func (c *PlanCommand) validateInputs() error {
	if !c.config.Example && c.config.ScenarioDir == "" &&
		(c.config.ProductsFile == "" || c.config.PlantsFile == "") {
		return fmt.Errorf("must specify -example, a -scenario directory, or both -products and -plants")
	}
	if c.config.Objective != "" && !entities.ObjectiveFunction(c.config.Objective).IsDeclared() {
		return fmt.Errorf("unknown objective %q (expected minimize_cost, minimize_time, balance_utilization or multi_objective)", c.config.Objective)
	}
	if c.config.Budget != nil && *c.config.Budget < 0 {
		return fmt.Errorf("budget cannot be negative")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use
func (c *PlanCommand) resolveInputFiles() (map[string]string, error) {
	if c.config.Example {
		return nil, nil
	}

	productsPath, plantsPath := c.config.ProductsFile, c.config.PlantsFile
	if c.config.ScenarioDir != "" {
		productsPath = filepath.Join(c.config.ScenarioDir, csv.ProductsFile)
		plantsPath = filepath.Join(c.config.ScenarioDir, csv.PlantsFile)
	}

	files := map[string]string{
		"Products": productsPath,
		"Plants":   plantsPath,
	}

	// Validate files exist
	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}
	return files, nil
}

func (c *PlanCommand) loadCatalog(files map[string]string) ([]*entities.Product, []*entities.Plant, error) {
	if files == nil {
		if c.config.Verbose {
			fmt.Fprintln(c.out, "📂 Using built-in automotive example data...")
		}
		return seed.ExampleProducts(), seed.ExamplePlants(), nil
	}

	if c.config.Verbose {
		fmt.Fprintln(c.out, "📂 Loading data from CSV files...")
	}
	loader := csv.NewLoader()
	products, err := loader.LoadProducts(files["Products"])
	if err != nil {
		return nil, nil, fmt.Errorf("error loading products: %w", err)
	}
	plants, err := loader.LoadPlants(files["Plants"])
	if err != nil {
		return nil, nil, fmt.Errorf("error loading plants: %w", err)
	}
	return products, plants, nil
}

func (c *PlanCommand) planConfig() entities.TransferPlanConfig {
	config := entities.DefaultTransferPlanConfig()
	if c.config.Objective != "" {
		config.ObjectiveFunction = entities.ObjectiveFunction(c.config.Objective)
	}
	config.AllowFractionalAssignment = c.config.Fractional
	config.BudgetCapital = c.config.Budget
	for _, id := range splitList(c.config.ExcludeProducts) {
		config.ExcludedProducts = append(config.ExcludedProducts, entities.ProductID(id))
	}
	for _, id := range splitList(c.config.ExcludePlants) {
		config.ExcludedPlants = append(config.ExcludedPlants, entities.PlantID(id))
	}
	return config
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// printHeader prints the command header information
func (c *PlanCommand) printHeader(files map[string]string) {
	fmt.Fprintf(c.out, "🚀 Transfer Plan CLI\n")
	if files == nil {
		fmt.Fprintf(c.out, "Input: built-in example data\n")
	} else {
		fmt.Fprintf(c.out, "Input files:\n")
		fmt.Fprintf(c.out, "  Products: %s\n", files["Products"])
		fmt.Fprintf(c.out, "  Plants: %s\n", files["Plants"])
	}
	fmt.Fprintf(c.out, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(c.out, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(c.out)
}

// showHelp displays the help message
func (c *PlanCommand) showHelp() {
	fmt.Fprintf(c.out, `Transfer Plan CLI - production transfer recommendations across plants

USAGE:
    transferplan -scenario <directory>           # Use scenario directory with CSV files
    transferplan -products <file> -plants <file> # Use individual CSV files
    transferplan -example                        # Use the built-in automotive example

OPTIONS:
    -scenario <dir>          Path to scenario directory containing products.csv and plants.csv
    -products <file>         Path to products CSV file
    -plants <file>           Path to plants CSV file
    -example                 Use the built-in example catalog (12 products, 4 plants)
    -objective <name>        minimize_cost, minimize_time, balance_utilization, multi_objective
    -fractional              Allow a product's volume to be split across plants
    -budget <amount>         Cap on total transfer fixed cost (binary mode only, 0 = no cap)
    -exclude-products <ids>  Comma-separated products that must stay at their current plant
    -exclude-plants <ids>    Comma-separated plants that may not receive volume
    -time-limit <dur>        Solver time limit (default: 10s)
    -output <dir>            Output directory for results (optional)
    -format <fmt>            Output format: text, json, csv, xlsx (default: text)
    -verbose                 Enable verbose output
    -help                    Show this help message

CSV FILE FORMATS:

products.csv:
    product_id,monthly_demand,current_unit_cost,current_plant_id
    BRK-001,12000,45.5,PLANT_MI

plants.csv:
    plant_id,available_capacity,unit_production_cost,transfer_fixed_cost,effective_oee,lead_time_to_start
    PLANT_MI,100000,42,0,0.85,0

EXAMPLES:
    # Optimize the example catalog
    transferplan -example -verbose

    # Balance utilization with fractional assignment
    transferplan -scenario data/q3 -objective balance_utilization -fractional

    # Export a workbook
    transferplan -example -format xlsx -output results/
`)
}
