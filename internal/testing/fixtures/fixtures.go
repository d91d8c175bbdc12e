// Package fixtures provides small message/category datasets for tests.
package fixtures

import (
	"os"
	"path/filepath"
	"testing"
)

// MessagesCSV has six rows; id 4 appears twice and id 5 has no categories.
const MessagesCSV = `id,message,original,genre
2,Weather update - a cold front from Cuba that could pass over Haiti,Un front froid se retrouve sur Cuba,direct
7,Is the Hurricane over or is it not over,Cyclone nan fini osinon li pa fini,direct
8,Looking for someone but no name,,direct
4,"says: west side of Haiti, rest of the country today and tonight",,direct
4,"says: west side of Haiti, rest of the country today and tonight",,direct
5,Information about the National Palace-,Informtion au nivaux palais nationl,direct
`

// CategoriesCSV covers ids 2, 4, 7, 8 and an unmatched id 9.
const CategoriesCSV = `id,categories
2,related-1;request-0;offer-0;aid_related-0;water-0
7,related-1;request-0;offer-0;aid_related-1;water-0
8,related-1;request-1;offer-0;aid_related-1;water-1
4,related-1;request-0;offer-0;aid_related-0;water-0
9,related-0;request-0;offer-0;aid_related-0;water-0
`

// CategoryNames are the names encoded in CategoriesCSV, in order.
var CategoryNames = []string{"related", "request", "offer", "aid_related", "water"}

// JoinedRows is the number of rows in the inner join of the two datasets.
const JoinedRows = 5

// OutputRows is the number of rows left after duplicate removal.
const OutputRows = 4

// WriteFile writes content to name under dir and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteDataset writes MessagesCSV and CategoriesCSV into a temp dir and
// returns their paths plus a destination path inside the same dir.
func WriteDataset(t *testing.T) (messages, categories, destination string) {
	t.Helper()

	dir := t.TempDir()
	messages = WriteFile(t, dir, "disaster_messages.csv", MessagesCSV)
	categories = WriteFile(t, dir, "disaster_categories.csv", CategoriesCSV)
	destination = filepath.Join(dir, "DisasterResponse.db")
	return messages, categories, destination
}
