//go:build integration
// +build integration

package testutil

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	sharedContainer     *MongoDBContainer
	sharedContainerErr  error
	sharedContainerOnce sync.Once
	sharedContainerMu   sync.RWMutex
)

// GetSharedMongoDB returns a MongoDB container shared by all integration
// tests in a package. The container starts once; each test isolates itself
// with its own database name instead of its own container.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedContainerOnce.Do(func() {
		sharedContainerMu.Lock()
		defer sharedContainerMu.Unlock()

		sharedContainer, sharedContainerErr = SetupMongoDB(ctx)
	})

	sharedContainerMu.RLock()
	defer sharedContainerMu.RUnlock()

	if sharedContainerErr != nil {
		return nil, sharedContainerErr
	}
	return sharedContainer, nil
}

// CleanupSharedMongoDB terminates the shared container. Call from
// TestMain after m.Run().
func CleanupSharedMongoDB(ctx context.Context) error {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		return sharedContainer.Cleanup(ctx)
	}
	return nil
}

// SetupTestMainWithMongoDB wires the shared container lifecycle into a
// package's TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	_, err := GetSharedMongoDB(ctx)
	if err != nil {
		panic(err)
	}

	code := m.Run()

	if err := CleanupSharedMongoDB(ctx); err != nil {
		// Not fatal, Docker reaps the container either way.
		_, _ = os.Stderr.WriteString("Warning: failed to cleanup shared MongoDB container: " + err.Error() + "\n")
	}

	return code
}

// GetSharedContainerURI returns the connection URI of the shared
// container. Panics if GetSharedMongoDB has not run yet.
func GetSharedContainerURI() string {
	sharedContainerMu.RLock()
	defer sharedContainerMu.RUnlock()

	if sharedContainer == nil {
		panic("shared MongoDB container not initialized - call GetSharedMongoDB first")
	}
	return sharedContainer.URI
}

// SanitizeDBName turns a Go test name into a valid MongoDB database
// name: path separators become underscores, the result is capped at 50
// characters and suffixed with a nanosecond-derived tag so parallel
// tests never collide.
func SanitizeDBName(testName string) string {
	sanitized := strings.NewReplacer("/", "_", "\\", "_").Replace(testName)

	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}

	return sanitized + "_" + strconv.FormatInt(time.Now().UnixNano()%1000000, 10)
}
