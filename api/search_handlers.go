package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/carepoint/caresearch/internal/errors"
	"github.com/carepoint/caresearch/model"
	"github.com/carepoint/caresearch/services"
)

// SearchRequest defines the structure for facility search queries.
type SearchRequest struct {
	Query    string `json:"query"`
	Type     string `json:"type,omitempty"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// SearchHandler handles facility search requests.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Invalid request body: "+err.Error())
		return
	}

	if details := ValidateSearchRequest(&req); len(details) > 0 {
		SendValidationError(c, details)
		return
	}

	result, err := api.searcher.Search(services.SearchQuery{
		Query:    req.Query,
		Type:     model.FacilityType(req.Type),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		api.logger.Error("search failed", "query", req.Query, "err", err)
		SendError(c, http.StatusInternalServerError, ErrorCodeSearchFailed, "Search failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// SuggestHandler handles autocomplete requests.
// Query params: q (required), region, district, type.
func (api *API) SuggestHandler(c *gin.Context) {
	query := services.SuggestQuery{
		Query:    c.Query("q"),
		Region:   c.Query("region"),
		District: c.Query("district"),
		Type:     model.FacilityType(c.Query("type")),
	}

	if details := ValidateSuggestQuery(&query); len(details) > 0 {
		SendValidationError(c, details)
		return
	}

	result, err := api.suggester.Suggest(query)
	if err != nil {
		api.logger.Error("suggest failed", "query", query.Query, "err", err)
		// The core fails the whole request when a collaborator is down;
		// the client hides the suggestion UI on 503.
		if errors.Is(err, internalErrors.ErrGazetteerUnavailable) || errors.Is(err, internalErrors.ErrFacilityCountsUnavailable) {
			SendError(c, http.StatusServiceUnavailable, ErrorCodeSuggestUnavailable, "Suggestions temporarily unavailable")
			return
		}
		SendInternalError(c, "compute suggestions", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
