//go:build integration

// Package testutil starts the MongoDB instance shared by integration tests.
//
// By default a mongo container is started with testcontainers. Set
// MONGODB_TEST_URI to run against an existing server instead, and
// MONGODB_TEST_IMAGE to pick another image.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const (
	defaultImage = "mongo:7.0"
	// MongoDB rejects database names longer than 63 bytes.
	maxDBNameLength = 63
	dbNamePrefix    = "supp_"
)

// MongoDBContainer is a running MongoDB test server. Container is nil when
// the server was provided through MONGODB_TEST_URI.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

var (
	shared     *MongoDBContainer
	sharedErr  error
	sharedOnce sync.Once
)

// SetupMongoDB returns a MongoDB server for a single test package or test.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	if uri := os.Getenv("MONGODB_TEST_URI"); uri != "" {
		return &MongoDBContainer{URI: uri}, nil
	}

	image := os.Getenv("MONGODB_TEST_IMAGE")
	if image == "" {
		image = defaultImage
	}

	container, err := mongodb.Run(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("start mongodb container %s: %w", image, err)
	}
	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("mongodb connection string: %w", err)
	}
	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Cleanup terminates the container, if one was started.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate mongodb container: %w", err)
	}
	return nil
}

// SetupTestMainWithMongoDB starts the shared server, runs the package's tests
// and tears the server down. Use it from TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	sharedOnce.Do(func() {
		shared, sharedErr = SetupMongoDB(ctx)
	})
	if sharedErr != nil {
		fmt.Fprintf(os.Stderr, "integration tests need MongoDB: %v\n", sharedErr)
		return 1
	}

	code := m.Run()

	if err := shared.Cleanup(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the URI of the server started by
// SetupTestMainWithMongoDB.
func GetSharedContainerURI() string {
	if shared == nil {
		panic("testutil: shared MongoDB not started; call SetupTestMainWithMongoDB from TestMain")
	}
	return shared.URI
}

// SanitizeDBName turns a test name into a unique, valid database name so
// parallel tests never share collections.
func SanitizeDBName(testName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '"', '$', '*', '<', '>', ':', '|', '?':
			return '_'
		}
		return r
	}, testName)

	suffix := fmt.Sprintf("_%d", time.Now().UnixNano()%1_000_000)
	if room := maxDBNameLength - len(dbNamePrefix) - len(suffix); len(name) > room {
		name = name[:room]
	}
	return dbNamePrefix + name + suffix
}

// Database returns the shared server URI and a database name unique to t.
func Database(t testing.TB) (uri, name string) {
	t.Helper()
	return GetSharedContainerURI(), SanitizeDBName(t.Name())
}
