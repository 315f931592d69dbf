//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/nnmag/storefront/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestMain starts one MongoDB container for the whole package. Tests
// isolate themselves with per-test database names, which is far cheaper
// than a container per test.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

func getSharedContainerURI() string {
	return testutil.GetSharedContainerURI()
}

func sanitizeDBName(testName string) string {
	return testutil.SanitizeDBName(testName)
}

// setupTestDBFromSharedContainer connects to the shared container under
// a database named after the running test.
func setupTestDBFromSharedContainer(t *testing.T) *MongoDB {
	dbName := sanitizeDBName(t.Name())
	uri := getSharedContainerURI()
	db, err := NewMongoDB(uri, dbName)
	require.NoError(t, err)
	return db
}
