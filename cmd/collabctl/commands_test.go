package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const seedJSON = `{
  "mentorships": [
    {"id": "m-a", "mentor_id": "mentor-1", "mentor_name": "Ana"},
    {"id": "m-b", "mentor_id": "mentor-2", "mentor_name": "Bruno"},
    {"id": "m-c", "mentor_id": "mentor-3", "mentor_name": "Carla"}
  ],
  "ratings": [
    {"mentorship_id": "m-a", "category": "Finance", "rating": 2},
    {"mentorship_id": "m-a", "category": "Marketing", "rating": 4},
    {"mentorship_id": "m-b", "category": "Finance", "rating": 4},
    {"mentorship_id": "m-b", "category": "Marketing", "rating": 2}
  ]
}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.json")
	if err := os.WriteFile(seed, []byte(seedJSON), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SEED_FILE", seed)
	t.Setenv("JWT_SECRET", "secret")

	if application != nil {
		application.Close()
		application = nil
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSuggestCommand(t *testing.T) {
	out, err := runCLI(t, "suggest", "m-a")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 suggestions, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "1 complementary") || !strings.Contains(lines[0], "m-b") || !strings.Contains(lines[0], "Finance (1)") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "4 fallback") || !strings.Contains(lines[1], "m-c") {
		t.Fatalf("unexpected fallback line %q", lines[1])
	}
}

func TestSuggestUnknownMentorship(t *testing.T) {
	if _, err := runCLI(t, "suggest", "missing"); err == nil {
		t.Fatalf("expected error for unknown mentorship")
	}
}

func TestRequestCommandRejectsUnqualifiedTier(t *testing.T) {
	_, err := runCLI(t, "request", "m-a", "m-b", "--tier", "2")
	if err == nil || !strings.Contains(err.Error(), "does not qualify") {
		t.Fatalf("expected tier qualification error, got %v", err)
	}
	tierFlag = 4
}

func TestMigratePrintSchema(t *testing.T) {
	out, err := runCLI(t, "migrate", "--print")
	if err != nil {
		t.Fatalf("migrate --print: %v", err)
	}
	if !strings.Contains(out, "CREATE TABLE IF NOT EXISTS collaboration_members") {
		t.Fatalf("schema not printed:\n%s", out)
	}
	printSchema = false
}

func TestTokenCommand(t *testing.T) {
	out, err := runCLI(t, "token", "mentor-1")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if strings.Count(strings.TrimSpace(out), ".") != 2 {
		t.Fatalf("expected a JWT, got %q", out)
	}
}
