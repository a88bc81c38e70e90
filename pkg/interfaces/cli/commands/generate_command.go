package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	csvloader "github.com/vsinha/transferplan/pkg/infrastructure/repositories/csv"
)

const (
	minDemand = 500
	maxDemand = 20000
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Products  int     // Number of products to generate
	Plants    int     // Number of plants to generate
	Headroom  float64 // Total effective capacity as a multiple of total demand (e.g. 1.2)
	OutputDir string  // Output directory for generated files
	Seed      int64   // Random seed for reproducible generation
	Help      bool    // Show help
	Verbose   bool    // Verbose output
	Stdout    io.Writer
}

// GenerateCommand writes a synthetic products.csv and plants.csv scenario
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
	out    io.Writer
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	out := config.Stdout
	if out == nil {
		out = os.Stdout
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
		out:    out,
	}
}

type generatedPlant struct {
	id        string
	capacity  float64
	unitCost  float64
	fixedCost float64
	oee       float64
	leadTime  float64
}

type generatedProduct struct {
	id           string
	demand       float64
	unitCost     float64
	currentPlant string
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}
	if err := cmd.validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out,
			"🔧 Generating scenario with %d products, %d plants, %.2fx capacity headroom\n",
			cmd.config.Products, cmd.config.Plants, cmd.config.Headroom)
		fmt.Fprintf(cmd.out, "📁 Output directory: %s\n", cmd.config.OutputDir)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	products := cmd.generateProducts()
	plants := cmd.generatePlants(products)
	for i, p := range products {
		p.currentPlant = plants[i%len(plants)].id
	}

	if cmd.config.Verbose {
		fmt.Fprintln(cmd.out, "🏭 Generating plants.csv...")
	}
	if err := cmd.writePlants(plants); err != nil {
		return fmt.Errorf("failed to generate plants: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintln(cmd.out, "📦 Generating products.csv...")
	}
	if err := cmd.writeProducts(products); err != nil {
		return fmt.Errorf("failed to generate products: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out, "✅ Scenario generated successfully in %s\n", cmd.config.OutputDir)
	}
	return nil
}

func (cmd *GenerateCommand) validate() error {
	switch {
	case cmd.config.Products <= 0:
		return fmt.Errorf("products must be positive")
	case cmd.config.Plants <= 0:
		return fmt.Errorf("plants must be positive")
	case cmd.config.Headroom < 1:
		return fmt.Errorf("headroom must be at least 1.0, got %g", cmd.config.Headroom)
	case cmd.config.OutputDir == "":
		return fmt.Errorf("output directory is required")
	}
	return nil
}

func (cmd *GenerateCommand) generateProducts() []*generatedProduct {
	families := []string{"BRK", "SEN", "ECU", "PMP", "INJ", "ALT", "HVC", "STR"}
	products := make([]*generatedProduct, cmd.config.Products)
	for i := range products {
		// round to hundreds so the CSV reads like planner data
		demand := math.Round((minDemand+cmd.rand.Float64()*(maxDemand-minDemand))/100) * 100
		products[i] = &generatedProduct{
			id:       fmt.Sprintf("%s-%03d", families[i%len(families)], i+1),
			demand:   demand,
			unitCost: math.Round((20+cmd.rand.Float64()*80)*100) / 100,
		}
	}
	return products
}

// generatePlants sizes plants so every product fits in any plant and the
// total effective capacity is at least Headroom times total demand
func (cmd *GenerateCommand) generatePlants(products []*generatedProduct) []*generatedPlant {
	total, largest := 0.0, 0.0
	for _, p := range products {
		total += p.demand
		largest = math.Max(largest, p.demand)
	}
	share := total * cmd.config.Headroom / float64(cmd.config.Plants)

	regions := []string{"MI", "TX", "OH", "MX", "TN", "KY", "IN", "AL"}
	plants := make([]*generatedPlant, cmd.config.Plants)
	for i := range plants {
		oee := 0.75 + cmd.rand.Float64()*0.2
		effective := math.Max(share*(1+cmd.rand.Float64()*0.2), largest)
		plant := &generatedPlant{
			id:        fmt.Sprintf("PLANT_%s", regions[i%len(regions)]),
			capacity:  math.Ceil(effective/oee/100) * 100,
			unitCost:  math.Round((18+cmd.rand.Float64()*70)*100) / 100,
			fixedCost: math.Round((50000+cmd.rand.Float64()*450000)/1000) * 1000,
			oee:       math.Round(oee*100) / 100,
			leadTime:  float64(cmd.rand.Intn(7)),
		}
		if i >= len(regions) {
			plant.id = fmt.Sprintf("%s_%d", plant.id, i/len(regions)+1)
		}
		// rounding the OEE down can shrink effective capacity below the target
		for plant.capacity*plant.oee < effective {
			plant.capacity += 100
		}
		plants[i] = plant
	}
	return plants
}

func (cmd *GenerateCommand) writePlants(plants []*generatedPlant) error {
	return writeCSV(filepath.Join(cmd.config.OutputDir, csvloader.PlantsFile),
		[]string{"plant_id", "available_capacity", "unit_production_cost", "transfer_fixed_cost", "effective_oee", "lead_time_to_start"},
		len(plants), func(i int) []string {
			p := plants[i]
			return []string{p.id, formatFloat(p.capacity), formatFloat(p.unitCost), formatFloat(p.fixedCost), formatFloat(p.oee), formatFloat(p.leadTime)}
		})
}

func (cmd *GenerateCommand) writeProducts(products []*generatedProduct) error {
	return writeCSV(filepath.Join(cmd.config.OutputDir, csvloader.ProductsFile),
		[]string{"product_id", "monthly_demand", "current_unit_cost", "current_plant_id"},
		len(products), func(i int) []string {
			p := products[i]
			return []string{p.id, formatFloat(p.demand), formatFloat(p.unitCost), p.currentPlant}
		})
}

func writeCSV(path string, header []string, rows int, row func(int) []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		if err := writer.Write(row(i)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// printHelp shows usage information
func (cmd *GenerateCommand) printHelp() {
	fmt.Fprintln(cmd.out, `Transfer Plan Scenario Generator

USAGE:
    transferplan generate [OPTIONS]

OPTIONS:
    -products <N>       Number of products to generate (default: 20)
    -plants <N>         Number of plants to generate (default: 4)
    -headroom <F>       Total effective capacity over total demand (default: 1.2)
    -output <DIR>       Output directory for generated files (required)
    -seed <N>           Random seed for reproducible generation (optional)
    -verbose            Enable verbose output
    -help               Show this help message

EXAMPLES:
    # Generate a small scenario and optimize it
    transferplan generate -products 20 -plants 4 -output ./scenario
    transferplan -scenario ./scenario -verbose

    # Generate a reproducible scenario
    transferplan generate -products 200 -plants 8 -headroom 1.1 -output ./large -seed 12345`)
}
