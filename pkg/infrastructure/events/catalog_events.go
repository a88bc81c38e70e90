package events

import (
	"fmt"
	"regexp"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vsinha/transferplan/pkg/domain/entities"
)

const (
	ProductCreatedEvent = "product.created"
	ProductUpdatedEvent = "product.updated"
	ProductDeletedEvent = "product.deleted"

	PlantCreatedEvent = "plant.created"
	PlantUpdatedEvent = "plant.updated"
	PlantDeletedEvent = "plant.deleted"

	CatalogSeededEvent = "catalog.seeded"
)

// AllCatalogEvents lists every catalog event type
var AllCatalogEvents = []string{
	ProductCreatedEvent, ProductUpdatedEvent, ProductDeletedEvent,
	PlantCreatedEvent, PlantUpdatedEvent, PlantDeletedEvent,
	CatalogSeededEvent,
}

// CatalogStream is the stream for catalog-wide events
const CatalogStream = "catalog"

// ProductStream names the stream of one product
func ProductStream(id int) string {
	return fmt.Sprintf("product-%d", id)
}

// PlantStream names the stream of one plant
func PlantStream(id int) string {
	return fmt.Sprintf("plant-%d", id)
}

var streamName = regexp.MustCompile(`^(catalog|(product|plant)-[1-9][0-9]*)$`)

// IsCatalogStream reports whether name is a stream the catalog writes to
func IsCatalogStream(name string) bool {
	return streamName.MatchString(name)
}

type ProductCreated struct {
	Product entities.Product `json:"product"`
}

type ProductUpdated struct {
	OldProduct entities.Product `json:"old_product"`
	NewProduct entities.Product `json:"new_product"`
}

type ProductDeleted struct {
	Product entities.Product `json:"product"`
}

type PlantCreated struct {
	Plant entities.Plant `json:"plant"`
}

type PlantUpdated struct {
	OldPlant entities.Plant `json:"old_plant"`
	NewPlant entities.Plant `json:"new_plant"`
}

type PlantDeleted struct {
	Plant entities.Plant `json:"plant"`
}

type CatalogSeeded struct {
	ProductsAdded int `json:"products_added"`
	PlantsAdded   int `json:"plants_added"`
}

// LogHandler writes every catalog event to a zerolog logger
type LogHandler struct {
	logger zerolog.Logger
}

// NewLogHandler creates a handler that logs through the global logger
func NewLogHandler() *LogHandler {
	return &LogHandler{logger: log.Logger}
}

func (h *LogHandler) Handle(e Event) error {
	h.logger.Info().
		Int("position", e.Position).
		Str("event", e.Type).
		Str("stream", e.Stream).
		Int("version", e.Version).
		Msg("catalog changed")
	return nil
}
