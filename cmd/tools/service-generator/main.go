// cmd/tools/service-generator/main.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"iwms-dashboard/pkg/registry"
)

// ServiceData holds data for templates
type ServiceData struct {
	PackageName string
	ServiceName string
	Entity      string
	Table       string
	Title       string
	Description string
}

// upperFirst makes the first character uppercase
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const configTemplate = `// internal/services/{{ .PackageName }}/config.go
package {{ .PackageName }}

import (
	"time"

	"iwms-dashboard/internal/common/config"
)

const ServiceName = "{{ .ServiceName }}"

type Config struct {
	Source   string
	Timeout  time.Duration
	CacheTTL time.Duration
	Delay    time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	sc := config.GetServiceConfig(cfg, ServiceName)
	return &Config{
		Source:   sc.Source,
		Timeout:  config.GetDuration(sc.Timeout),
		CacheTTL: time.Duration(sc.CacheTTL) * time.Second,
		Delay:    config.GetDuration(sc.Delay),
	}
}
`

const repositoryTemplate = `// internal/services/{{ .PackageName }}/repository.go
package {{ .PackageName }}

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/database"
	"iwms-dashboard/internal/fixtures"
)

// {{ .Entity }} is one row shown on the {{ .Title }} page.
type {{ .Entity }} struct {
	ID   string ` + "`json:\"id\"`" + `
	Name string ` + "`json:\"name\"`" + `
}

// Repository reads {{ .Title }} data.
type Repository interface {
	List{{ .Entity }}s(ctx context.Context) ([]{{ .Entity }}, error)
}

func NewRepository(cfg *Config, pg *database.PostgresClient) (Repository, error) {
	switch cfg.Source {
	case config.SourceFixtures, "":
		return &FixtureRepository{Delay: cfg.Delay}, nil
	case config.SourcePostgres:
		if pg == nil {
			return nil, fmt.Errorf("%s: postgres source configured without a connection", ServiceName)
		}
		return &PostgresRepository{DB: pg, Timeout: cfg.Timeout}, nil
	default:
		return nil, fmt.Errorf("%s: unsupported source %q", ServiceName, cfg.Source)
	}
}

// ==========================
// Fixtures
// ==========================

type FixtureRepository struct {
	Delay time.Duration
	Items []{{ .Entity }}
}

func (r *FixtureRepository) List{{ .Entity }}s(ctx context.Context) ([]{{ .Entity }}, error) {
	if err := fixtures.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	out := make([]{{ .Entity }}, len(r.Items))
	copy(out, r.Items)
	return out, nil
}

// ==========================
// PostgreSQL
// ==========================

var queries = map[string]string{
	"list": ` + "`SELECT id, name FROM {{ .Table }} ORDER BY id`" + `,
}

type PostgresRepository struct {
	DB      *database.PostgresClient
	Timeout time.Duration
}

func scan{{ .Entity }}(rows *sql.Rows) ({{ .Entity }}, error) {
	var v {{ .Entity }}
	err := rows.Scan(&v.ID, &v.Name)
	return v, err
}

func (r *PostgresRepository) List{{ .Entity }}s(ctx context.Context) ([]{{ .Entity }}, error) {
	return database.QueryAll(ctx, r.DB, r.Timeout, "{{ .ServiceName }}.list", queries["list"], scan{{ .Entity }})
}
`

const serviceTemplate = `// internal/services/{{ .PackageName }}/service.go
package {{ .PackageName }}

import (
	"iwms-dashboard/internal/common/cache"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/common/result"
)

// Service exposes the {{ .Title }} read operations.{{ if .Description }} {{ .Description }}{{ end }}
type Service struct {
	List{{ .Entity }}s result.Wrapped0[[]{{ .Entity }}]
}

type handler struct {
	config *Config
	repo   Repository
	cache  *cache.Cache
	logger logger.Logger
}

func NewService(cfg *Config, repo Repository, c *cache.Cache, log logger.Logger, opts ...result.Option) *Service {
	h := &handler{
		config: cfg,
		repo:   repo,
		cache:  c,
		logger: log.WithFields(map[string]interface{}{"service": ServiceName}),
	}
	return &Service{
		List{{ .Entity }}s: result.Wrap0(h.repo.List{{ .Entity }}s, result.Named("{{ .ServiceName }}.list", opts)...),
	}
}
`

const testTemplate = `package {{ .PackageName }}

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iwms-dashboard/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{}
}

type failingRepository struct{ err error }

func (r *failingRepository) List{{ .Entity }}s(context.Context) ([]{{ .Entity }}, error) {
	return nil, r.err
}

// ==========================
// Service
// ==========================

func TestService_List{{ .Entity }}s(t *testing.T) {
	repo := &FixtureRepository{Items: []{{ .Entity }}{ {ID: "1", Name: "first"} }}
	svc := NewService(createTestConfig(), repo, nil, logger.NewTestLogger(t))

	items, ok := svc.List{{ .Entity }}s(context.Background()).Data()
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestService_RepositoryErrorBecomesErrResult(t *testing.T) {
	svc := NewService(createTestConfig(), &failingRepository{err: errors.New("connection reset")}, nil, logger.NewTestLogger(t))

	msg, failed := svc.List{{ .Entity }}s(context.Background()).Error()
	require.True(t, failed)
	assert.Equal(t, "connection reset", msg)
}
`

var templates = map[string]string{
	"config.go":       configTemplate,
	"repository.go":   repositoryTemplate,
	"service.go":      serviceTemplate,
	"service_test.go": testTemplate,
}

// render executes every template and gofmt-formats the output.
func render(data ServiceData) (map[string][]byte, error) {
	funcMap := template.FuncMap{"upperFirst": upperFirst}
	out := make(map[string][]byte, len(templates))
	for filename, tmplStr := range templates {
		tmpl, err := template.New(filename).Funcs(funcMap).Parse(tmplStr)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", filename, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("execute template %s: %w", filename, err)
		}
		src, err := format.Source(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", filename, err)
		}
		out[filename] = src
	}
	return out, nil
}

// dataFor derives template data from a registry page.
func dataFor(page registry.Page, entity string) (ServiceData, error) {
	if page.Service == "" {
		return ServiceData{}, fmt.Errorf("page %s has no service", page.ID)
	}
	pkg := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(page.Service))
	if entity == "" {
		entity = "Record"
	}
	return ServiceData{
		PackageName: pkg,
		ServiceName: page.Service,
		Entity:      upperFirst(entity),
		Table:       strings.ReplaceAll(page.Service, "-", "_"),
		Title:       page.TitleFor("en"),
		Description: page.Description,
	}, nil
}

func main() {
	pageID := flag.String("page", "", "Page ID from the page registry (e.g., parking)")
	entity := flag.String("entity", "", "Entity type name (e.g., Slot)")
	outputDir := flag.String("output", "./internal/services/", "Output directory for the generated service")
	registryPath := flag.String("registry", "configs/page-registry.json", "Path to the page registry JSON file")
	force := flag.Bool("force", false, "Overwrite existing files")
	flag.Parse()

	if *pageID == "" {
		fmt.Println("Usage: service-generator --page <id> [--entity <Name>] [--output <dir>] [--registry <path>]")
		fmt.Println("\nExample:")
		fmt.Println("  go run ./cmd/tools/service-generator --page parking --entity Slot")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry from %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	page, ok := reg.Find(*pageID)
	if !ok {
		fmt.Printf("Page '%s' not found in registry %s\n", *pageID, *registryPath)
		os.Exit(1)
	}

	data, err := dataFor(*page, *entity)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	files, err := render(data)
	if err != nil {
		fmt.Printf("Error rendering scaffold: %v\n", err)
		os.Exit(1)
	}

	serviceDir := filepath.Join(*outputDir, data.PackageName)
	if err := os.MkdirAll(serviceDir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(serviceDir, name)
		if _, err := os.Stat(path); err == nil && !*force {
			fmt.Printf("Skipping %s (exists, use --force to overwrite)\n", path)
			continue
		}
		if err := os.WriteFile(path, files[name], 0644); err != nil {
			fmt.Printf("Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("✓ Generated %s\n", path)
	}

	fmt.Printf("\n✅ Service scaffold generated successfully at: %s\n", serviceDir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Fill in the entity fields and queries in repository.go\n")
	fmt.Printf("  2. Add the service to internal/services/services.go\n")
	fmt.Printf("  3. Add the page templates under internal/dashboard/templates/\n")
	fmt.Printf("  4. Add configuration to configs/config.yaml\n")
}
