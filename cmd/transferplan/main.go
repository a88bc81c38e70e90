package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vsinha/transferplan/pkg/application/services/optimization"
	"github.com/vsinha/transferplan/pkg/interfaces/cli/commands"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "generate" {
		runGenerate(os.Args[2:])
		return
	}

	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing products.csv and plants.csv",
		)
		productsFile    = flag.String("products", "", "Path to products CSV file")
		plantsFile      = flag.String("plants", "", "Path to plants CSV file")
		example         = flag.Bool("example", false, "Use the built-in automotive example catalog")
		objective       = flag.String("objective", "minimize_cost", "Objective: minimize_cost, minimize_time, balance_utilization, multi_objective")
		fractional      = flag.Bool("fractional", false, "Allow fractional assignment across plants")
		budget          = flag.Float64("budget", -1, "Cap on total transfer fixed cost (zero or negative: no cap)")
		excludeProducts = flag.String("exclude-products", "", "Comma-separated products that stay at their current plant")
		excludePlants   = flag.String("exclude-plants", "", "Comma-separated plants that may not receive volume")
		timeLimit       = flag.Duration("time-limit", optimization.DefaultTimeLimit, "Solver time limit")
		outputDir       = flag.String("output", "", "Output directory for results (optional)")
		format          = flag.String("format", "text", "Output format: text, json, csv, xlsx")
		verbose         = flag.Bool("verbose", false, "Enable verbose output")
		help            = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	var budgetCap *float64
	if *budget > 0 {
		budgetCap = budget
	}

	// Create command configuration
	config := commands.Config{
		ScenarioDir:     *scenarioDir,
		ProductsFile:    *productsFile,
		PlantsFile:      *plantsFile,
		Example:         *example,
		Objective:       *objective,
		Fractional:      *fractional,
		Budget:          budgetCap,
		ExcludeProducts: *excludeProducts,
		ExcludePlants:   *excludePlants,
		TimeLimit:       *timeLimit,
		OutputDir:       *outputDir,
		Format:          *format,
		Verbose:         *verbose,
		Help:            *help,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create and execute command
	cmd := commands.NewPlanCommand(config)
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		products  = fs.Int("products", 20, "Number of products to generate")
		plants    = fs.Int("plants", 4, "Number of plants to generate")
		headroom  = fs.Float64("headroom", 1.2, "Total effective capacity over total demand")
		outputDir = fs.String("output", "", "Output directory for generated files")
		seed      = fs.Int64("seed", 0, "Random seed for reproducible generation")
		verbose   = fs.Bool("verbose", false, "Enable verbose output")
		help      = fs.Bool("help", false, "Show help message")
	)
	_ = fs.Parse(args)

	cmd := commands.NewGenerateCommand(commands.GenerateConfig{
		Products:  *products,
		Plants:    *plants,
		Headroom:  *headroom,
		OutputDir: *outputDir,
		Seed:      *seed,
		Verbose:   *verbose,
		Help:      *help,
	})
	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
