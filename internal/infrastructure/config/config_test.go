package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerURL != "http://localhost:8080" {
		t.Errorf("unexpected default server: %s", cfg.ServerURL)
	}
	if cfg.RequestTimeout() != 15*time.Second {
		t.Errorf("unexpected default timeout: %s", cfg.RequestTimeout())
	}
	if cfg.RetryAttempts != 3 {
		t.Errorf("unexpected default retries: %d", cfg.RetryAttempts)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `server_url: https://review.internal:9443
source_filter: src-7
operator: sam
request_timeout_seconds: 30
retry_attempts: 5
audit_log: /var/log/recheck/audit.jsonl
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerURL != "https://review.internal:9443" {
		t.Errorf("unexpected server: %s", cfg.ServerURL)
	}
	if cfg.SourceFilter != "src-7" || cfg.Operator != "sam" {
		t.Errorf("unexpected identity fields: %+v", cfg)
	}
	if cfg.RequestTimeout() != 30*time.Second || cfg.RetryAttempts != 5 {
		t.Errorf("unexpected transport tuning: %+v", cfg)
	}
	if cfg.AuditLogPath != "/var/log/recheck/audit.jsonl" {
		t.Errorf("unexpected audit path: %s", cfg.AuditLogPath)
	}
}

func TestLoad_EnvOverridesServerURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server_url: http://file.example\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RECHECK_SERVER_URL", "http://env.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerURL != "http://env.example" {
		t.Errorf("expected env override, got %s", cfg.ServerURL)
	}
}

func TestLoad_FloorsBadTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "request_timeout_seconds: -1\nretry_attempts: 0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RequestTimeoutSecs != 15 || cfg.RetryAttempts != 3 {
		t.Errorf("expected defaults restored, got %+v", cfg)
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server_url: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := Config{
		ServerURL:          "http://localhost:9000",
		SourceFilter:       "src-1",
		RequestTimeoutSecs: 20,
		RetryAttempts:      2,
	}
	if err := Save(path, in); err != nil {
		t.Fatal(err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}
