package storefrontserver

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	listingmapper "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/happypaws/happypaws-api/internal/domains/catalog/application"
	catalogdomain "github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	catalogports "github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
)

// CatalogAPI wires HTTP transport with the catalog bounded context service.
// The watcher is optional; without it the live search stream is unavailable.
type CatalogAPI struct {
	service catalogports.Service
	watcher *catalogapp.Watcher
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service, watcher *catalogapp.Watcher) CatalogAPI {
	return CatalogAPI{service: service, watcher: watcher}
}

// Get /v1/listings
// Search listings by tab, text query, price range, and favorites
func (api *CatalogAPI) SearchListings(c *gin.Context) {
	input, ok := parseSearchInput(c)
	if !ok {
		return
	}
	result, err := api.service.Search(c.Request.Context(), input)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listingmapper.FromProjectionList(result))
}

// Get /v1/listings/stream
// Stream search results as server-sent events, re-running the filter when
// the user's favorite set changes
func (api *CatalogAPI) StreamListings(c *gin.Context) {
	if api.watcher == nil {
		respondError(c, http.StatusInternalServerError, errors.New("live search is not configured"))
		return
	}
	input, ok := parseSearchInput(c)
	if !ok {
		return
	}
	if input.UserID == "" {
		respondAuthRequired(c)
		return
	}
	results, cancel, err := api.watcher.Watch(c.Request.Context(), input)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case result, ok := <-results:
			if !ok {
				return false
			}
			c.SSEvent("listings", listingmapper.FromProjectionList(result))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func parseSearchInput(c *gin.Context) (catalogports.SearchInput, bool) {
	tab, err := catalogdomain.ParseTab(c.Query("tab"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return catalogports.SearchInput{}, false
	}
	input := catalogports.SearchInput{
		Query:  c.Query("query"),
		Tab:    tab,
		UserID: currentUserID(c),
	}
	if raw := c.Query("minPrice"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return catalogports.SearchInput{}, false
		}
		input.MinPrice = min
	}
	if raw := c.Query("maxPrice"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return catalogports.SearchInput{}, false
		}
		input.MaxPrice = &max
	}
	if isTruthyParam(c.Query("favoritesOnly")) {
		if input.UserID == "" {
			respondAuthRequired(c)
			return catalogports.SearchInput{}, false
		}
		input.FavoritesOnly = true
	}
	return input, true
}

// Get /v1/listings/count
// Count listings for a tab
func (api *CatalogAPI) CountListings(c *gin.Context) {
	tab, err := catalogdomain.ParseTab(c.Query("tab"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	count, err := api.service.Count(c.Request.Context(), tab)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tab": tab, "count": count})
}

// Get /v1/listings/:listingId
// Find a listing by ID
func (api *CatalogAPI) GetListingById(c *gin.Context) {
	listing, err := api.service.GetByID(c.Request.Context(), c.Param("listingId"))
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listingmapper.FromProjection(listing))
}

// Post /v1/listings
// Add a new listing to the catalog
func (api *CatalogAPI) AddListing(c *gin.Context) {
	var payload listingmapper.MutationListing
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.AddListing(c.Request.Context(), listingmapper.ToMutation(payload))
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listingmapper.FromProjection(saved))
}

// Put /v1/listings/:listingId
// Update an existing listing
func (api *CatalogAPI) UpdateListing(c *gin.Context) {
	var payload listingmapper.MutationListing
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateListing(c.Request.Context(), c.Param("listingId"), listingmapper.ToMutation(payload))
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listingmapper.FromProjection(updated))
}

// Delete /v1/listings/:listingId
// Remove a listing from the catalog
func (api *CatalogAPI) DeleteListing(c *gin.Context) {
	if err := api.service.RemoveListing(c.Request.Context(), c.Param("listingId")); err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func isTruthyParam(value string) bool {
	return value == "1" || value == "true"
}
