package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vsinha/transferplan/pkg/domain/entities"
)

const (
	// ProductsFile and PlantsFile are the file names expected in a scenario directory
	ProductsFile = "products.csv"
	PlantsFile   = "plants.csv"
)

var (
	productHeader = []string{"product_id", "monthly_demand", "current_unit_cost", "current_plant_id"}
	plantHeader   = []string{"plant_id", "available_capacity", "unit_production_cost", "transfer_fixed_cost", "effective_oee", "lead_time_to_start"}
)

// Loader handles loading product and plant catalogs from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadScenario loads products.csv and plants.csv from a directory
func (l *Loader) LoadScenario(dir string) ([]*entities.Product, []*entities.Plant, error) {
	products, err := l.LoadProducts(filepath.Join(dir, ProductsFile))
	if err != nil {
		return nil, nil, err
	}
	plants, err := l.LoadPlants(filepath.Join(dir, PlantsFile))
	if err != nil {
		return nil, nil, err
	}
	return products, plants, nil
}

// LoadProducts loads products from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open products file %s: %w", filename, err)
	}
	defer file.Close()
	return l.ReadProducts(file)
}

// ReadProducts parses a products CSV stream
func (l *Loader) ReadProducts(r io.Reader) ([]*entities.Product, error) {
	records, err := readRecords(r, "products", productHeader)
	if err != nil {
		return nil, err
	}

	var products []*entities.Product
	seen := make(map[string]int)
	for i, record := range records {
		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		if first, dup := seen[string(product.ProductID)]; dup {
			return nil, fmt.Errorf("products CSV row %d: duplicate product_id %s (first seen in row %d)", i+2, product.ProductID, first)
		}
		seen[string(product.ProductID)] = i + 2
		products = append(products, product)
	}
	return products, nil
}

// LoadPlants loads plants from a CSV file
func (l *Loader) LoadPlants(filename string) ([]*entities.Plant, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open plants file %s: %w", filename, err)
	}
	defer file.Close()
	return l.ReadPlants(file)
}

// ReadPlants parses a plants CSV stream
func (l *Loader) ReadPlants(r io.Reader) ([]*entities.Plant, error) {
	records, err := readRecords(r, "plants", plantHeader)
	if err != nil {
		return nil, err
	}

	var plants []*entities.Plant
	seen := make(map[string]int)
	for i, record := range records {
		plant, err := parsePlant(record)
		if err != nil {
			return nil, fmt.Errorf("plants CSV row %d: %w", i+2, err)
		}
		if first, dup := seen[string(plant.PlantID)]; dup {
			return nil, fmt.Errorf("plants CSV row %d: duplicate plant_id %s (first seen in row %d)", i+2, plant.PlantID, first)
		}
		seen[string(plant.PlantID)] = i + 2
		plants = append(plants, plant)
	}
	return plants, nil
}

// Helper functions for parsing CSV records

func readRecords(r io.Reader, kind string, expectedHeader []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	// Validate header
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	rows := records[1:]
	for i, record := range rows {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}
	return rows, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		name := strings.TrimPrefix(actual[i], "\ufeff")
		if strings.ToLower(strings.TrimSpace(name)) != col {
			return false
		}
	}

	return true
}

func parseProduct(record []string) (*entities.Product, error) {
	demand, err := parseFloat("monthly_demand", record[1], nil)
	if err != nil {
		return nil, err
	}
	unitCost, err := parseFloat("current_unit_cost", record[2], floatDefault(0))
	if err != nil {
		return nil, err
	}

	return entities.NewProduct(
		entities.ProductID(strings.TrimSpace(record[0])),
		demand,
		unitCost,
		entities.PlantID(strings.TrimSpace(record[3])),
	)
}

func parsePlant(record []string) (*entities.Plant, error) {
	capacity, err := parseFloat("available_capacity", record[1], nil)
	if err != nil {
		return nil, err
	}
	unitCost, err := parseFloat("unit_production_cost", record[2], floatDefault(0))
	if err != nil {
		return nil, err
	}
	fixedCost, err := parseFloat("transfer_fixed_cost", record[3], floatDefault(0))
	if err != nil {
		return nil, err
	}

	var oee *float64
	if strings.TrimSpace(record[4]) != "" {
		value, err := parseFloat("effective_oee", record[4], nil)
		if err != nil {
			return nil, err
		}
		oee = &value
	}

	leadTime, err := parseFloat("lead_time_to_start", record[5], floatDefault(0))
	if err != nil {
		return nil, err
	}

	return entities.NewPlant(
		entities.PlantID(strings.TrimSpace(record[0])),
		capacity, unitCost, fixedCost, oee, leadTime,
	)
}

// parseFloat parses a numeric cell; an empty cell takes def, or is an error when def is nil
func parseFloat(column, value string, def *float64) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if def == nil {
			return 0, fmt.Errorf("missing %s", column)
		}
		return *def, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", column, value)
	}
	return f, nil
}

func floatDefault(v float64) *float64 {
	return &v
}
