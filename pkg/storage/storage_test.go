package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/jobboard/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewReturnsSystem(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "resumes",
		ConnectionString: azuriteConnString,
	}

	sys, err := storage.New(cfg, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if sys == nil {
		t.Fatal("New() returned nil system")
	}
}

func TestNewInvalidConnectionString(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "resumes",
		ConnectionString: "not-a-connection-string",
	}

	if _, err := storage.New(cfg, discardLogger()); err == nil {
		t.Fatal("expected error for invalid connection string, got nil")
	}
}

func TestUploadRequiresPath(t *testing.T) {
	sys, err := storage.New(&storage.Config{
		ContainerName:    "resumes",
		ConnectionString: azuriteConnString,
	}, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = sys.Upload(context.Background(), "", storage.UploadOptions{})
	if !errors.Is(err, storage.ErrEmptyPath) {
		t.Errorf("Upload(\"\") error = %v, want ErrEmptyPath", err)
	}
}

func TestDeleteRejectsInvalidKey(t *testing.T) {
	sys, err := storage.New(&storage.Config{
		ContainerName:    "resumes",
		ConnectionString: azuriteConnString,
	}, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, key := range []string{"", "resumes/../secrets"} {
		if err := sys.Delete(context.Background(), key); !errors.Is(err, storage.ErrInvalidKey) {
			t.Errorf("Delete(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestBuildKey(t *testing.T) {
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	tests := []struct {
		name     string
		folder   string
		filename string
		want     string
	}{
		{"plain", "resumes", "cv.pdf", "resumes/550e8400-e29b-41d4-a716-446655440000/cv.pdf"},
		{"trims folder slashes", "/resumes/", "cv.pdf", "resumes/550e8400-e29b-41d4-a716-446655440000/cv.pdf"},
		{"no folder", "", "cv.pdf", "550e8400-e29b-41d4-a716-446655440000/cv.pdf"},
		{"strips directories", "resumes", "../../etc/passwd", "resumes/550e8400-e29b-41d4-a716-446655440000/passwd"},
		{"windows path", "resumes", `C:\Users\me\cv.pdf`, "resumes/550e8400-e29b-41d4-a716-446655440000/cv.pdf"},
		{"escapes spaces", "resumes", "my cv.pdf", "resumes/550e8400-e29b-41d4-a716-446655440000/my%20cv.pdf"},
		{"empty filename", "resumes", "", "resumes/550e8400-e29b-41d4-a716-446655440000/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storage.BuildKey(tt.folder, id, tt.filename)
			if got != tt.want {
				t.Errorf("BuildKey() = %q, want %q", got, tt.want)
			}
			if strings.Contains(got, "..") {
				t.Errorf("BuildKey() = %q contains traversal", got)
			}
		})
	}
}

func TestResolveResourceType(t *testing.T) {
	tests := []struct {
		requested   string
		contentType string
		want        string
	}{
		{storage.ResourceAuto, "image/png", storage.ResourceImage},
		{storage.ResourceAuto, "application/pdf", storage.ResourceRaw},
		{"", "image/webp", storage.ResourceImage},
		{storage.ResourceRaw, "image/jpeg", storage.ResourceRaw},
	}

	for _, tt := range tests {
		t.Run(tt.requested+"_"+tt.contentType, func(t *testing.T) {
			if got := storage.ResolveResourceType(tt.requested, tt.contentType); got != tt.want {
				t.Errorf("ResolveResourceType(%q, %q) = %q, want %q", tt.requested, tt.contentType, got, tt.want)
			}
		})
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults container", func(t *testing.T) {
		cfg := &storage.Config{ConnectionString: azuriteConnString}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if cfg.ContainerName != "resumes" {
			t.Errorf("ContainerName = %q, want resumes", cfg.ContainerName)
		}
	})

	t.Run("service url satisfies validation", func(t *testing.T) {
		cfg := &storage.Config{ServiceURL: "https://acct.blob.core.windows.net/"}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
	})

	t.Run("requires a connection", func(t *testing.T) {
		cfg := &storage.Config{}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize() should fail without connection string or service url")
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_STORAGE_CONTAINER", "cvs")
		t.Setenv("TEST_STORAGE_CONN", azuriteConnString)

		cfg := &storage.Config{}
		err := cfg.Finalize(&storage.Env{
			ContainerName:    "TEST_STORAGE_CONTAINER",
			ConnectionString: "TEST_STORAGE_CONN",
		})
		if err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if cfg.ContainerName != "cvs" {
			t.Errorf("ContainerName = %q, want cvs", cfg.ContainerName)
		}
	})
}
