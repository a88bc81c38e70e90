package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/transferplan/pkg/application/dto"
	"github.com/vsinha/transferplan/pkg/application/services/catalog"
	"github.com/vsinha/transferplan/pkg/application/services/optimization"
	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/infrastructure/export"
	"github.com/vsinha/transferplan/pkg/interfaces/api/apierror"
)

type TransferPlanHandler struct {
	catalog *catalog.CatalogService
	engine  *optimization.TransferPlanService
}

func NewTransferPlanHandler(catalogSvc *catalog.CatalogService, engine *optimization.TransferPlanService) *TransferPlanHandler {
	return &TransferPlanHandler{catalog: catalogSvc, engine: engine}
}

// Generate POST /transfer-plan/generate
func (h *TransferPlanHandler) Generate(c *gin.Context) {
	result, ok := h.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

// Export POST /transfer-plan/export returns the plan as an xlsx workbook
func (h *TransferPlanHandler) Export(c *gin.Context) {
	result, ok := h.run(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, result); err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="transfer_plan_%s.xlsx"`, result.RunID))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *TransferPlanHandler) run(c *gin.Context) (*entities.TransferPlanResult, bool) {
	var req dto.TransferPlanRequest
	if !bindAndValidate(c, &req) {
		return nil, false
	}

	ctx := c.Request.Context()
	products, plants, err := h.catalog.Snapshot(ctx)
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}

	result, err := h.engine.Optimize(ctx, req.ToConfig(), products, plants)
	if err != nil {
		var validationErr *optimization.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, apierror.New(validationErr.Error()))
			return nil, false
		}
		_ = c.Error(err)
		return nil, false
	}
	return result, true
}

// Status GET /transfer-plan/status
func (h *TransferPlanHandler) Status(c *gin.Context) {
	status, err := h.catalog.Status(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// LoadExampleData POST /transfer-plan/load-example-data
func (h *TransferPlanHandler) LoadExampleData(c *gin.Context) {
	summary, err := h.catalog.LoadExampleData(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
