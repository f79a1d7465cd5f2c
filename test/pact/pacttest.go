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
	ProviderName = "pipeline-api"
	ConsumerName = "pipeline-dashboard"

	StateProjectsBaseline = "projects baseline"
	StateProjectExists    = "project pact-project-1 exists"
	StateProjectMissing   = "no project with id missing-project"
	StateAdminConfigured  = "admin account configured"
)

const (
	ExistingProjectID = "pact-project-1"
	MissingProjectID  = "missing-project"

	AdminEmail    = "admin@sol.com"
	AdminPassword = "987654"
)

const (
	exampleProjectName = "Pact Warehouse Retrofit"
	exampleClient      = "Acme Co"
	exampleDeadline    = "2024-06-15"
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

// PactFile returns the canonical pact file path for the dashboard consumer.
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

// ExampleProjectPayload provides stable test data for pact interactions.
func ExampleProjectPayload() map[string]any {
	return map[string]any{
		"project_name": exampleProjectName,
		"client":       exampleClient,
		"amount":       2500,
		"deadline":     exampleDeadline,
		"stage":        "quoted",
		"probability":  70,
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
