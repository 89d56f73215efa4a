// Package api exposes the search core over HTTP. Everything here is
// transport glue: request decoding, validation and error mapping. The
// search semantics live in the internal services.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/carepoint/caresearch/services"
	"github.com/carepoint/caresearch/store"
)

// API holds dependencies for the API handlers.
type API struct {
	searcher      services.Searcher
	suggester     services.Suggester
	facilityStore *store.FacilityStore
	logger        *log.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(searcher services.Searcher, suggester services.Suggester, facilityStore *store.FacilityStore, logger *log.Logger) *API {
	return &API{
		searcher:      searcher,
		suggester:     suggester,
		facilityStore: facilityStore,
		logger:        logger,
	}
}

// SetupRoutes defines all the HTTP routes of the service.
func SetupRoutes(router *gin.Engine, apiHandler *API) {
	router.GET("/health", apiHandler.HealthCheckHandler)

	apiRoutes := router.Group("/api")
	{
		apiRoutes.POST("/search", apiHandler.SearchHandler)
		apiRoutes.GET("/suggest", apiHandler.SuggestHandler)
		apiRoutes.GET("/facilities/counts", apiHandler.FacilityCountsHandler)
	}
}

// HealthCheckHandler reports service liveness and catalogue size.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"facilities": api.facilityStore.Len(),
	})
}

// FacilityCountsHandler returns the number of facilities per region,
// keyed by region URL slug.
func (api *API) FacilityCountsHandler(c *gin.Context) {
	counts := api.facilityStore.CountByRegion()

	total := 0
	for _, count := range counts {
		total += count
	}

	c.JSON(http.StatusOK, gin.H{
		"counts": counts,
		"total":  total,
	})
}
