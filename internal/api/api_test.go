package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/jobboard/internal/api"
	"github.com/JaimeStill/jobboard/internal/config"
	"github.com/JaimeStill/jobboard/internal/infrastructure"
	"github.com/JaimeStill/jobboard/pkg/auth"
	"github.com/JaimeStill/jobboard/pkg/database"
	"github.com/JaimeStill/jobboard/pkg/middleware"
	"github.com/JaimeStill/jobboard/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            4000,
			ReadTimeout:     "1m",
			WriteTimeout:    "2m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "jobboard",
			User:            "jobboard",
			Password:        "jobboard",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "resumes",
			ConnectionString: azuriteConnString,
		},
		Auth: auth.Config{
			Secret:     "api-secret",
			Issuer:     "jobboard",
			CookieName: "token",
			Expiry:     "1h",
		},
		API: config.APIConfig{
			BasePath:      "/api",
			MaxUploadSize: "10MB",
			TempDir:       "",
			CORS: middleware.CORSConfig{
				Enabled:        true,
				Origins:        []string{"http://localhost:5174"},
				AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type", "Authorization"},
			},
		},
		Version: "0.1.0",
	}
}

func setup(t *testing.T) (*config.Config, *infrastructure.Infrastructure) {
	t.Helper()
	cfg := validConfig()
	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	t.Cleanup(func() { infra.Database.Connection().Close() })
	return cfg, infra
}

func TestNewModule(t *testing.T) {
	cfg, infra := setup(t)

	m := api.NewModule(cfg, infra)
	if m == nil {
		t.Fatal("NewModule() returned nil")
	}
	if m.Prefix() != "/api" {
		t.Errorf("Prefix() = %q, want /api", m.Prefix())
	}
}

func TestModuleRouting(t *testing.T) {
	cfg, infra := setup(t)
	m := api.NewModule(cfg, infra)

	employer, err := infra.Tokens.Issue(auth.Principal{ID: uuid.New(), Role: auth.RoleEmployer})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		origin string
		status int
	}{
		{"missing token", http.MethodGet, "/api/v1/application/employer/getall", "", "", http.StatusUnauthorized},
		{"malformed token", http.MethodGet, "/api/v1/application/employer/getall", "garbage", "", http.StatusBadRequest},
		{"wrong role", http.MethodGet, "/api/v1/application/jobseeker/getall", employer, "", http.StatusForbidden},
		{"employer cannot submit", http.MethodPost, "/api/v1/application/post", employer, "", http.StatusForbidden},
		{"employer cannot delete", http.MethodDelete, "/api/v1/application/delete/" + uuid.NewString(), employer, "", http.StatusForbidden},
		{"preflight skips auth", http.MethodOptions, "/api/v1/application/post", "", "http://localhost:5174", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/jobs", employer, "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: cfg.Auth.CookieName, Value: tt.token})
			}
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			m.Serve(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestNewRuntimeScopesLogger(t *testing.T) {
	cfg, infra := setup(t)

	rt := api.NewRuntime(cfg, infra)
	if rt.Logger == infra.Logger {
		t.Error("runtime logger should be scoped, not shared")
	}
	if rt.MaxUploadSize != 10*1024*1024 {
		t.Errorf("MaxUploadSize = %d", rt.MaxUploadSize)
	}

	domain := api.NewDomain(rt)
	if domain.Jobs == nil || domain.Applications == nil {
		t.Error("domain systems should be initialized")
	}
}
