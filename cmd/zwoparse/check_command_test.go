package main

import (
	"path/filepath"
	"testing"

	"github.com/alexshpunt/zwift-workouts-parser/internal/testsupport"
)

func TestCheckCommandPasses(t *testing.T) {
	env := setupCLITestEnv(t)
	plan := testsupport.WriteLines(t, filepath.Join(env.baseDir, "in", "rows.txt"), "10min @ 60%")

	out, _, err := runCLI(t, []string{"check", plan}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "== Preflight ==")
	requireContains(t, out, "Export directory:")
	requireContains(t, out, "State directory:")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "all checks passed")
}

func TestCheckCommandReportsMissingInput(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", filepath.Join(env.baseDir, "missing.txt")}, env.configPath)
	if err == nil {
		t.Fatal("expected failing check")
	}
	requireContains(t, err.Error(), "1 of 3 checks failed")
	requireContains(t, out, "[ERROR]")
	requireContains(t, out, "does not exist")
}
