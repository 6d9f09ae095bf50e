package textutil

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in      string
		unicode bool
		want    string
	}{
		{in: "Build Me Up", want: "build-me-up"},
		{in: "  FTP -- Builder__ ", want: "ftp-builder"},
		{in: "Crème Brûlée #2", want: "creme-brulee-2"},
		{in: "Crème Brûlée #2", unicode: true, want: "crème-brûlée-2"},
		{in: "Über 9000!", want: "uber-9000"},
		{in: "東京 ride", want: "ride"},
		{in: "東京 ride", unicode: true, want: "東京-ride"},
		{in: "ﬁve", unicode: true, want: "five"},
		{in: "sweet_spot", want: "sweet_spot"},
		{in: "???", want: ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in, tt.unicode); got != tt.want {
			t.Fatalf("Slugify(%q, %v) = %q, want %q", tt.in, tt.unicode, got, tt.want)
		}
	}
}

func TestSlugifyPath(t *testing.T) {
	got := SlugifyPath("Training Plans/Build Me Up/  /Week 1")
	if got != "training-plans/build-me-up/week-1" {
		t.Fatalf("unexpected path slug %q", got)
	}
	if got := SlugifyPath(""); got != "" {
		t.Fatalf("expected empty slug, got %q", got)
	}
}

func TestTitle(t *testing.T) {
	if got := Title("sweet_spot-builder"); got != "Sweet Spot Builder" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := Title("  over__unders "); got != "Over Unders" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := SanitizeFileName(` a/b:c*d?"<>| `); got != "a-b-c-d" {
		t.Fatalf("unexpected sanitized name %q", got)
	}
	if got := SanitizeFileName("   "); got != "" {
		t.Fatalf("expected empty name, got %q", got)
	}
}

func TestFileStem(t *testing.T) {
	tests := map[string]string{
		"/tmp/plans/threshold.rows.txt": "threshold.rows",
		"workout.toml":                  "workout",
		".hidden":                       ".hidden",
		`C:\plans\vo2.yaml`:             "vo2",
	}
	for in, want := range tests {
		if got := FileStem(in); got != want {
			t.Fatalf("FileStem(%q) = %q, want %q", in, got, want)
		}
	}
}
