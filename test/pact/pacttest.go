//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "happypaws-api"
	ConsumerName = "storefront-web"

	StateCatalogBaseline = "catalog baseline"
	StateListingExists   = "listing pact-listing-101 exists"
	StateListingMissing  = "no listing with id pact-listing-404"
	StateCatalogSeeded   = "catalog seeded for search"
)

const (
	ExistingListingID = "pact-listing-101"
	MissingListingID  = "pact-listing-404"
)

const (
	exampleImageURL    = "https://example.pact/listings/bella.png"
	exampleListingName = "Bella"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleListingPayload provides stable test data for pact interactions.
func ExampleListingPayload() map[string]any {
	return map[string]any{
		"id":        ExistingListingID,
		"name":      exampleListingName,
		"breed":     "Golden Retriever",
		"age":       2,
		"price":     750.0,
		"imageUrls": []string{exampleImageURL},
		"available": true,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
