//go:build integration

package http

import (
	"context"
	"os"
	"testing"

	"github.com/nnmag/storefront/internal/testutil"
)

// TestMain shares one MongoDB container across this package's
// integration tests; each test isolates itself by database name.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

func getSharedContainerURI() string {
	return testutil.GetSharedContainerURI()
}

func sanitizeDBNameForHTTP(testName string) string {
	return testutil.SanitizeDBName(testName)
}
