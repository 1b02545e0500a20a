// Package wizard implements the interactive project setup form behind
// `postpulse init`.
package wizard

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/postpulse/postpulse/internal/projectconfig"
	"golang.org/x/term"
)

// ProjectSpec holds all fields collected during the interactive wizard.
type ProjectSpec struct {
	BaseURL     string
	UseMock     bool
	Port        int
	SnapshotDir string
}

// RunProjectWizard runs an interactive huh form to collect project settings.
func RunProjectWizard(in io.Reader, out io.Writer) (*ProjectSpec, error) {
	var (
		backend     = "mock"
		baseURL     = projectconfig.DefaultAPIBaseURL
		portRaw     = strconv.Itoa(projectconfig.DefaultServerPort)
		snapshotDir = projectconfig.DefaultSnapshotDir
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Analytics backend").
				Description("Mock data works without any backend running").
				Options(
					huh.NewOption("mock (generated data)", "mock"),
					huh.NewOption("real (HTTP backend)", "real"),
				).
				Value(&backend),
			huh.NewInput().
				Title("Backend base URL").
				Description("Only used when the backend is \"real\"").
				Placeholder(projectconfig.DefaultAPIBaseURL).
				Value(&baseURL).
				Validate(ValidateBaseURL),
			huh.NewInput().
				Title("Dashboard port").
				Value(&portRaw).
				Validate(ValidatePort),
			huh.NewInput().
				Title("Snapshot directory").
				Description("Where fetched months are kept for offline use; empty disables snapshots").
				Value(&snapshotDir),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	port, err := strconv.Atoi(strings.TrimSpace(portRaw))
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", portRaw, err)
	}

	return &ProjectSpec{
		BaseURL:     strings.TrimSpace(baseURL),
		UseMock:     backend == "mock",
		Port:        port,
		SnapshotDir: strings.TrimSpace(snapshotDir),
	}, nil
}

// ToConfig converts the collected answers into a ProjectConfig ready to save.
func (s *ProjectSpec) ToConfig() *projectconfig.ProjectConfig {
	cfg := projectconfig.New()
	cfg.API.BaseURL = s.BaseURL
	mock := s.UseMock
	cfg.API.Mock = &mock
	cfg.Server.Port = s.Port
	cfg.Snapshot.Dir = s.SnapshotDir
	return cfg
}

// ValidateBaseURL requires an absolute http(s) URL.
func ValidateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("URL must include a host")
	}
	return nil
}

// ValidatePort requires a TCP port number.
func ValidatePort(s string) error {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
