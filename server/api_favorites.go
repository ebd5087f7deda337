package storefrontserver

import (
	"io"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	listingmapper "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	favoritesports "github.com/happypaws/happypaws-api/internal/domains/favorites/ports"
)

// FavoritesAPI wires HTTP transport with the favorites service.
type FavoritesAPI struct {
	service favoritesports.Service
}

// NewFavoritesAPI creates a FavoritesAPI backed by the provided service.
func NewFavoritesAPI(service favoritesports.Service) FavoritesAPI {
	return FavoritesAPI{service: service}
}

// Get /v1/favorites
// List the user's favorite listings in mark order
func (api *FavoritesAPI) ListFavorites(c *gin.Context) {
	favorites, err := api.service.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		favoritesResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listingmapper.FromProjectionList(favorites))
}

// Post /v1/favorites/:listingId/toggle
// Flip the favorite mark on a listing
func (api *FavoritesAPI) ToggleFavorite(c *gin.Context) {
	listingID := c.Param("listingId")
	favorited, err := api.service.Toggle(c.Request.Context(), currentUserID(c), listingID)
	if err != nil {
		favoritesResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listingId": listingID, "favorited": favorited})
}

// Put /v1/favorites/:listingId
// Mark a listing as favorite
func (api *FavoritesAPI) AddFavorite(c *gin.Context) {
	if err := api.service.Add(c.Request.Context(), currentUserID(c), c.Param("listingId")); err != nil {
		favoritesResponder.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete /v1/favorites/:listingId
// Unmark a favorite listing
func (api *FavoritesAPI) RemoveFavorite(c *gin.Context) {
	if err := api.service.Remove(c.Request.Context(), currentUserID(c), c.Param("listingId")); err != nil {
		favoritesResponder.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Get /v1/favorites/stream
// Stream favorite-set updates as server-sent events
func (api *FavoritesAPI) StreamFavorites(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		respondAuthRequired(c)
		return
	}
	updates, cancel := api.service.Subscribe(userID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case set, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("favorites", gin.H{"listingIds": sortedSetIDs(set)})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func sortedSetIDs(set catalogdomain.FavoriteSet) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
