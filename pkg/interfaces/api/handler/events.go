package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/transferplan/pkg/infrastructure/events"
	"github.com/vsinha/transferplan/pkg/interfaces/api/apierror"
)

type EventsHandler struct{ history events.Log }

func NewEventsHandler(history events.Log) *EventsHandler {
	return &EventsHandler{history: history}
}

// List GET /catalog/events?from=N[&stream=product-<id>]
//
// Without a stream, from is a position in the whole log. With one, from
// counts the events of that stream already seen.
func (h *EventsHandler) List(c *gin.Context) {
	from := 0
	if raw := c.Query("from"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, apierror.New("from must be a non-negative integer"))
			return
		}
		from = n
	}

	var (
		page []events.Event
		err  error
	)
	if stream, ok := c.GetQuery("stream"); ok {
		if !events.IsCatalogStream(stream) {
			c.JSON(http.StatusBadRequest, apierror.New("stream must be catalog, product-<id> or plant-<id>"))
			return
		}
		page, err = h.history.Stream(stream, from+1)
	} else {
		page, err = h.history.Since(from)
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events": page,
		"next":   from + len(page),
	})
}
