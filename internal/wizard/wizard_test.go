package wizard

import (
	"testing"
	"time"

	"github.com/Cloudsky01/gh-restatus/internal/config"
	"github.com/Cloudsky01/gh-restatus/internal/github"
)

func TestEnterpriseURLs(t *testing.T) {
	tests := []struct {
		host        string
		wantAPI     string
		wantGraphQL string
		wantErr     bool
	}{
		{"github.example.com", "https://github.example.com/api/v3/", "https://github.example.com/api/graphql", false},
		{"https://github.example.com/", "https://github.example.com/api/v3/", "https://github.example.com/api/graphql", false},
		{"", "", "", true},
		{"github.example.com/api", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			api, graphql, err := EnterpriseURLs(tt.host)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EnterpriseURLs(%q) error = %v, wantErr %v", tt.host, err, tt.wantErr)
			}
			if api != tt.wantAPI || graphql != tt.wantGraphQL {
				t.Errorf("EnterpriseURLs(%q) = %q, %q", tt.host, api, graphql)
			}
		})
	}
}

func TestParseTimeout(t *testing.T) {
	if d, err := ParseTimeout(""); err != nil || d != 0 {
		t.Errorf("empty timeout = %v, %v", d, err)
	}
	if d, err := ParseTimeout(" 30s "); err != nil || d != 30*time.Second {
		t.Errorf("30s = %v, %v", d, err)
	}
	if _, err := ParseTimeout("soon"); err == nil {
		t.Error("expected error for invalid duration")
	}
	if _, err := ParseTimeout("-1s"); err == nil {
		t.Error("expected error for negative duration")
	}
}

func TestParseHistorySize(t *testing.T) {
	if n, err := ParseHistorySize("0"); err != nil || n != 0 {
		t.Errorf("0 = %d, %v", n, err)
	}
	if _, err := ParseHistorySize("-2"); err == nil {
		t.Error("expected error for negative size")
	}
	if _, err := ParseHistorySize("lots"); err == nil {
		t.Error("expected error for non-number")
	}
}

func TestNewStartsFromBase(t *testing.T) {
	base := config.Default()
	base.APIURL = "https://github.example.com/api/v3/"
	base.Timeout = 5 * time.Second

	w := New(base)

	if w.answers.Host != hostEnterprise || w.answers.Enterprise != "github.example.com" {
		t.Errorf("answers = %+v", w.answers)
	}
	if w.answers.Timeout != "5s" {
		t.Errorf("timeout = %q", w.answers.Timeout)
	}
}

func TestBuild(t *testing.T) {
	w := New(nil)
	w.answers.Host = hostEnterprise
	w.answers.Enterprise = "github.example.com"
	w.answers.Timeout = "10s"
	w.answers.HistorySize = "5"

	cfg, err := w.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if cfg.APIURL != "https://github.example.com/api/v3/" || cfg.GraphQLURL != "https://github.example.com/api/graphql" {
		t.Errorf("urls = %q, %q", cfg.APIURL, cfg.GraphQLURL)
	}
	if cfg.Timeout != 10*time.Second || cfg.HistorySize != 5 {
		t.Errorf("timeout = %v, history = %d", cfg.Timeout, cfg.HistorySize)
	}
	if cfg.HasToken() {
		t.Error("token should not be set unless requested")
	}
}

func TestBuildWithToken(t *testing.T) {
	w := New(nil)
	w.answers.StoreToken = true
	w.answers.Token = " ghp_secret "

	cfg, err := w.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if cfg.Token != "ghp_secret" {
		t.Errorf("token = %q", cfg.Token)
	}
	if cfg.APIURL != github.DefaultAPIURL {
		t.Errorf("api url = %q", cfg.APIURL)
	}
}

func TestIsTTY(t *testing.T) {
	result := IsTTY()
	t.Logf("IsTTY returned: %v", result)
}
