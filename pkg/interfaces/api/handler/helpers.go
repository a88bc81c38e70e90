package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/vsinha/transferplan/pkg/application/services/catalog"
	"github.com/vsinha/transferplan/pkg/domain/repositories"
	"github.com/vsinha/transferplan/pkg/interfaces/api/apierror"
)

var validate = validator.New()

func init() {
	// report fields by their JSON names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Invalid id: "+c.Param("id")))
		return 0, false
	}
	return id, true
}

// writeCatalogError maps catalog service errors onto status codes
func writeCatalogError(c *gin.Context, err error, notFound string) {
	var invalid *catalog.InvalidEntryError
	switch {
	case errors.Is(err, repositories.ErrProductNotFound), errors.Is(err, repositories.ErrPlantNotFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound))
	case errors.Is(err, repositories.ErrDuplicatePlant), errors.Is(err, repositories.ErrDuplicateProduct):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(invalid.Error()))
	default:
		_ = c.Error(err)
	}
}
