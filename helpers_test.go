package grove

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Shared test types and helpers used across test files.

// mustApply fails the test if the builder chain cannot be applied.
func mustApply(t *testing.T, b *RegistrationBuilder) {
	t.Helper()
	require.NoError(t, b.Apply(), "Apply")
}

// mustBuild fails the test if Build fails, otherwise returns the root.
func mustBuild(t *testing.T, r *Registry) *Container {
	t.Helper()
	c, err := r.Build()
	require.NoError(t, err, "Build")
	return c
}

// registerChain registers the logger → config → database → service chain,
// all singletons.
func registerChain(t *testing.T, r *Registry) {
	t.Helper()
	mustApply(t, r.Register(TypeOf[*testLogger]()).UseConstructor(newTestLogger))
	mustApply(t, r.Register(TypeOf[*testConfig]()).UseConstructor(newTestConfig))
	mustApply(t, r.Register(TypeOf[*testDatabase]()).UseConstructor(newTestDatabase))
	mustApply(t, r.Register(TypeOf[*testService]()).UseConstructor(newTestService))
}

type testLogger struct{ Prefix string }
type testConfig struct{ DSN string }

type testDatabase struct {
	Config *testConfig
	Logger *testLogger
}

type testService struct {
	DB     *testDatabase
	Logger *testLogger
}

// testReport is used by collection-assembly tests.
type testReport interface {
	Name() string
}

type testCPUReport struct{}

func (*testCPUReport) Name() string { return "cpu" }

type testMemReport struct{}

func (*testMemReport) Name() string { return "mem" }

// Three-node cycle.
type testCircA struct{ B *testCircB }
type testCircB struct{ C *testCircC }
type testCircC struct{ A *testCircA }

// Two-node cycle plus an entry point that depends on it without being part
// of it.
type testCycEntry struct{ X *testCycX }
type testCycX struct{ Y *testCycY }
type testCycY struct{ X *testCycX }

func newTestLogger() *testLogger { return &testLogger{Prefix: "app"} }
func newTestConfig() *testConfig { return &testConfig{DSN: "postgres://localhost"} }

func newTestDatabase(cfg *testConfig, log *testLogger) *testDatabase {
	return &testDatabase{Config: cfg, Logger: log}
}

func newTestService(db *testDatabase, log *testLogger) *testService {
	return &testService{DB: db, Logger: log}
}

func newTestCircA(b *testCircB) *testCircA { return &testCircA{B: b} }
func newTestCircB(c *testCircC) *testCircB { return &testCircB{C: c} }
func newTestCircC(a *testCircA) *testCircC { return &testCircC{A: a} }

func newTestCycEntry(x *testCycX) *testCycEntry { return &testCycEntry{X: x} }
func newTestCycX(y *testCycY) *testCycX         { return &testCycX{Y: y} }
func newTestCycY(x *testCycX) *testCycY         { return &testCycY{X: x} }
