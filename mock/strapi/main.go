// Mock Strapi CMS for local development. Serves the embedded fixture data
// with Strapi v5 envelopes and pagination meta so the sync worker and the
// preview endpoint can run without a real CMS.
package main

import (
	_ "embed"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

//go:embed data.json
var jsonData []byte

// collections maps collection name to its documents, loaded once at startup.
var collections map[string][]map[string]any

const defaultPageSize = 25

func main() {
	if err := json.Unmarshal(jsonData, &collections); err != nil {
		log.Fatalf("[Mock CMS] bad fixture data: %v", err)
	}

	http.HandleFunc("/api/", handleCollection)

	http.HandleFunc("/_health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log.Println("Mock Strapi CMS running on :1337")
	server := &http.Server{
		Addr:         ":1337",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

func handleCollection(w http.ResponseWriter, r *http.Request) {
	// Simulate network latency (50-200ms)
	time.Sleep(time.Duration(50+time.Now().UnixNano()%150) * time.Millisecond)

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/"), "/")
	docs, ok := collections[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error": map[string]any{"status": 404, "message": "Not Found"},
		})
		log.Printf("[Mock CMS] %s %s - 404", r.Method, r.URL.Path)
		return
	}

	q := r.URL.Query()

	if slug := q.Get("filters[slug][$eq]"); slug != "" {
		docs = filterBySlug(docs, slug)
	}

	page := atoiDefault(q.Get("pagination[page]"), 1)
	pageSize := atoiDefault(q.Get("pagination[pageSize]"), defaultPageSize)

	total := len(docs)
	pageCount := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": docs[start:end],
		"meta": map[string]any{
			"pagination": map[string]any{
				"page":      page,
				"pageSize":  pageSize,
				"pageCount": pageCount,
				"total":     total,
			},
		},
	})

	log.Printf("[Mock CMS] %s %s - 200 OK (%d of %d)", r.Method, r.URL.Path, end-start, total)
}

func filterBySlug(docs []map[string]any, slug string) []map[string]any {
	for _, d := range docs {
		if d["slug"] == slug {
			return []map[string]any{d}
		}
	}
	return nil
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[Mock CMS] write error: %v", err)
	}
}
