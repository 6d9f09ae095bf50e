package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexshpunt/zwift-workouts-parser/internal/services"
	"github.com/alexshpunt/zwift-workouts-parser/internal/testsupport"
)

const buildPlan = `
[[workouts]]
directory = "Build"
name = "Threshold Builder"
author = "Coach"
sport_types = ["bike"]
rows = [
  "10min from 40 to 75% FTP",
  "3x 5min @ 100%, 2min @ 50%",
  "10min free ride",
]

[[workouts]]
directory = "Build"
name = "Run Day"
sport_types = ["run"]
rows = ["30min @ 70%"]
`

func writeBuildPlan(t *testing.T, env *cliTestEnv) string {
	t.Helper()
	return testsupport.WriteFile(t, filepath.Join(env.baseDir, "in", "plan.toml"), buildPlan)
}

func TestConvertWritesFilesAndRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	plan := writeBuildPlan(t, env)

	out, errOut, err := runCLI(t, []string{"convert", plan}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "Threshold Builder")
	requireContains(t, out, "2 workouts: 1 converted, 0 partial, 1 skipped, 0 failed")
	requireContains(t, errOut, "workout written")

	written := filepath.Join(env.cfg.Paths.ExportDir, "build", "threshold-builder.zwo")
	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("expected %s: %v", written, err)
	}
	requireContains(t, string(data), "<author>Coach</author>")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.ExportDir, "build", "run-day.zwo")); !os.IsNotExist(err) {
		t.Fatalf("expected run workout to be skipped, stat err=%v", err)
	}

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []struct {
		ID     string `json:"id"`
		Counts struct {
			Converted int `json:"converted"`
			Skipped   int `json:"skipped"`
		} `json:"counts"`
	}
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode history: %v\n%s", err, out)
	}
	if len(runs) != 1 || runs[0].Counts.Converted != 1 || runs[0].Counts.Skipped != 1 {
		t.Fatalf("unexpected runs: %+v", runs)
	}

	out, _, err = runCLI(t, []string{"history", "show", runs[0].ID[:8]}, env.configPath)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "Run "+runs[0].ID)
	requireContains(t, out, "Build/Run Day")
	requireContains(t, out, "skipped")
}

func TestConvertReportsPartialWorkouts(t *testing.T) {
	env := setupCLITestEnv(t)
	rows := testsupport.WriteLines(t, filepath.Join(env.baseDir, "in", "sweet_spot.txt"),
		"10min @ 60%",
		"garbage text",
		"20min @ 90%",
	)

	out, errOut, err := runCLI(t, []string{"convert", rows}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "1 workouts: 0 converted, 1 partial, 0 skipped, 0 failed")
	requireContains(t, errOut, "row skipped")

	data, err := os.ReadFile(filepath.Join(env.cfg.Paths.ExportDir, "sweet-spot.zwo"))
	if err != nil {
		t.Fatalf("expected partial workout file: %v", err)
	}
	requireContains(t, string(data), `<SteadyState Duration="1200" Power="0.9"/>`)

	out, _, err = runCLI(t, []string{"history", "show", latestRunID(t, env)}, env.configPath)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "garbage text")
}

func TestConvertDropPartialFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	rows := testsupport.WriteLines(t, filepath.Join(env.baseDir, "in", "mixed.txt"),
		"10min @ 60%",
		"garbage text",
	)

	out, _, err := runCLI(t, []string{"convert", "--drop-partial", rows}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "0 partial, 1 skipped")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.ExportDir, "mixed.zwo")); !os.IsNotExist(err) {
		t.Fatalf("expected no file for dropped workout, stat err=%v", err)
	}
}

func TestConvertDryRunWritesNothing(t *testing.T) {
	env := setupCLITestEnv(t)
	plan := writeBuildPlan(t, env)
	outputDir := filepath.Join(env.baseDir, "dry")

	out, _, err := runCLI(t, []string{"convert", "--dry-run", "--output", outputDir, plan}, env.configPath)
	if err != nil {
		t.Fatalf("convert --dry-run: %v", err)
	}
	requireContains(t, out, "dry run, nothing written")
	requireContains(t, out, "1 converted")
	if _, err := os.Stat(outputDir); !os.IsNotExist(err) {
		t.Fatalf("expected dry run to leave %s untouched, stat err=%v", outputDir, err)
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestConvertOutputFlagAndJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	plan := writeBuildPlan(t, env)
	outputDir := filepath.Join(env.baseDir, "custom")

	out, _, err := runCLI(t, []string{"convert", "--json", "--all-sports", "--no-history", "-o", outputDir, plan}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	var report struct {
		Counts struct {
			Converted int `json:"converted"`
		} `json:"counts"`
		Workouts []struct {
			Name       string `json:"name"`
			OutputPath string `json:"output_path"`
		} `json:"workouts"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Counts.Converted != 2 || len(report.Workouts) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	want := filepath.Join(outputDir, "build", "run-day.zwo")
	if report.Workouts[1].OutputPath != want {
		t.Fatalf("unexpected output path: got %q want %q", report.Workouts[1].OutputPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected %s: %v", want, err)
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestConvertMissingManifestFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"convert", filepath.Join(env.baseDir, "missing.toml")}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
	requireContains(t, err.Error(), "does not exist")
}

func TestConvertRequiresManifest(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"convert"}, env.configPath); err == nil {
		t.Fatal("expected usage error without manifests")
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := map[int]string{
		0:    "0:00",
		59:   "0:59",
		600:  "10:00",
		3600: "1:00:00",
		3725: "1:02:05",
	}
	for in, want := range cases {
		if got := formatSeconds(in); got != want {
			t.Fatalf("formatSeconds(%d) = %q, want %q", in, got, want)
		}
	}
}

func latestRunID(t *testing.T, env *cliTestEnv) string {
	t.Helper()
	out, _, err := runCLI(t, []string{"history", "--json", "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &runs); err != nil || len(runs) != 1 {
		t.Fatalf("decode history: %v (%d runs)", err, len(runs))
	}
	return runs[0].ID
}
