package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"desireways/store"

	"github.com/gin-gonic/gin"
)

var (
	searchClient   = &http.Client{Timeout: requestTimeout}
	searchEndpoint = "https://www.googleapis.com/customsearch/v1"
)

type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Search proxies the query to the Google Custom Search JSON API when a key
// is configured, and falls back to a plain catalog search otherwise.
func Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	apiKey := os.Getenv("GOOGLE_SEARCH_API_KEY")
	cx := os.Getenv("GOOGLE_SEARCH_CX")
	if apiKey == "" || cx == "" {
		searchCatalog(c, query)
		return
	}

	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("cx", cx)
	params.Set("q", query)

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, searchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build search request"})
		return
	}

	resp, err := searchClient.Do(req)
	if err != nil {
		log.Printf("[Search] Remote search failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Search service unavailable"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Search] Remote search returned status %d", resp.StatusCode)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Search service unavailable"})
		return
	}

	var payload struct {
		Items []SearchResult `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Search service returned an invalid response"})
		return
	}
	if payload.Items == nil {
		payload.Items = []SearchResult{}
	}

	c.JSON(http.StatusOK, gin.H{
		"source":  "web",
		"query":   query,
		"results": payload.Items,
	})
}

func searchCatalog(c *gin.Context, query string) {
	ctx, cancel := reqContext()
	defer cancel()

	products, err := store.Get().Products(ctx, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
		return
	}

	needle := strings.ToLower(query)
	results := []SearchResult{}
	for _, p := range products {
		haystack := strings.ToLower(p.Title + " " + p.Name + " " + p.Description + " " + p.Category)
		if strings.Contains(haystack, needle) {
			results = append(results, SearchResult{
				Title:   p.Title,
				Link:    "/products/" + p.ID,
				Snippet: p.Description,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"source":  "catalog",
		"query":   query,
		"results": results,
	})
}
