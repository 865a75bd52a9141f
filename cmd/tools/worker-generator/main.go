// cmd/tools/worker-generator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"loan-assistant/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name         string
	PackageName  string
	TaskType     string
	Agent        string
	Description  string
	Category     string
	CompleteTask string
	ErrorCodes   []string
}

const configTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/config.go
package {{ .PackageName }}

import (
	"time"

	"loan-assistant/internal/common/config"
	"loan-assistant/pkg/registry"
)

type Config struct {
	Activity registry.Activity
	Timeout  time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	c := &Config{
		Activity: registry.MustDefault().MustLookup(TaskType),
		Timeout:  10 * time.Second,
	}
	if wc, ok := config.GetWorkerConfig(appCfg, TaskType); ok {
		c.Activity = c.Activity.WithLatency(wc.Latency)
		if wc.Timeout > 0 {
			c.Timeout = config.GetDuration(wc.Timeout)
		}
	}
	return c
}
`

const handlerTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler.go
package {{ .PackageName }}

import (
	"context"

	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/status"
)

const (
	TaskType = "{{ .TaskType }}"
)

// Handler simulates the {{ .Agent }} for {{ .Name }}.
type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

func (h *Handler) Precondition(input *Input) error {
	if input.CustomerID == "" {
		return apperrors.NewPreconditionFailedError("customer id is required")
	}
	return nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.Precondition(input); err != nil {
		return nil, err
	}

	// TODO: implement {{ .TaskType }}
	out := &Output{CustomerID: input.CustomerID}
	h.logger.Info("{{ .TaskType }} completed", map[string]interface{}{
		"customerId": input.CustomerID,
	})
	return out, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()
	return h.execute(ctx, input)
}

func (h *Handler) Plan(input *Input, done func(*Output, error)) status.Plan[*Output] {
	return status.Plan[*Output]{
		Stage:   h.config.Activity.Stage(),
		Latency: h.config.Activity.Latency(),
		Steps:   h.config.Activity.Steps(),
		Work: func(ctx context.Context) (*Output, error) {
			return h.Execute(ctx, input)
		},
		Describe: func(out *Output) (string, bool) {
			return "{{ .CompleteTask }}", false
		},
		Done: done,
	}
}
`

const modelsTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/models.go
package {{ .PackageName }}

type Input struct {
	CustomerID string ` + "`json:\"customerId\"`" + `
}

type Output struct {
	CustomerID string ` + "`json:\"customerId\"`" + `
}
`

const testTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(nil), logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	out, err := createTestHandler(t).Execute(context.Background(), &Input{CustomerID: "CUST001"})
	require.NoError(t, err)
	assert.Equal(t, "CUST001", out.CustomerID)
}

func TestHandler_Preconditions(t *testing.T) {
	_, err := createTestHandler(t).Execute(context.Background(), &Input{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodePreconditionFailed))
}
`

func main() {
	taskType := flag.String("taskType", "", "Task type from the agent registry (e.g., verify-income)")
	outputDir := flag.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := flag.String("registry", "pkg/registry/agents.json", "Path to the agent registry JSON file")
	force := flag.Bool("force", false, "Overwrite files that already exist")
	flag.Parse()

	if *taskType == "" {
		fmt.Println("Usage: worker-generator -taskType <type> [-output <dir>] [-registry <path>] [-force]")
		fmt.Println("\nExample:")
		fmt.Println("  go run cmd/tools/worker-generator/main.go -taskType verify-address")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry from %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	activity, ok := reg.Lookup(*taskType)
	if !ok {
		fmt.Printf("Agent '%s' not found in registry %s\n", *taskType, *registryPath)
		os.Exit(1)
	}

	data := WorkerData{
		Name:         activity.DisplayName,
		PackageName:  strings.ReplaceAll(activity.TaskType, "-", ""),
		TaskType:     activity.TaskType,
		Agent:        activity.Agent,
		Description:  activity.Description,
		Category:     activity.Category,
		CompleteTask: activity.CompleteTask,
		ErrorCodes:   activity.ErrorCodes,
	}
	if data.CompleteTask == "" {
		data.CompleteTask = activity.Task + " done"
	}

	workerDir := filepath.Join(*outputDir, data.Category, data.TaskType)
	if err := os.MkdirAll(workerDir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	templates := map[string]string{
		"config.go":       configTemplate,
		"handler.go":      handlerTemplate,
		"models.go":       modelsTemplate,
		"handler_test.go": testTemplate,
	}

	for filename, tmplStr := range templates {
		filePath := filepath.Join(workerDir, filename)
		if _, err := os.Stat(filePath); err == nil && !*force {
			fmt.Printf("- Skipped %s (exists, use -force to overwrite)\n", filePath)
			continue
		}

		tmpl, err := template.New(filename).Parse(tmplStr)
		if err != nil {
			fmt.Printf("Error parsing template %s: %v\n", filename, err)
			continue
		}

		file, err := os.Create(filePath)
		if err != nil {
			fmt.Printf("Error creating file %s: %v\n", filePath, err)
			continue
		}

		if err := tmpl.Execute(file, data); err != nil {
			fmt.Printf("Error executing template for %s: %v\n", filename, err)
		}
		file.Close()

		fmt.Printf("✓ Generated %s\n", filePath)
	}

	fmt.Printf("\n✅ Worker scaffold generated successfully at: %s\n", workerDir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Implement execute and Describe in handler.go\n")
	fmt.Printf("  2. Fill in Input and Output in models.go\n")
	fmt.Printf("  3. Add the handler to internal/conversation/agents.go\n")
	fmt.Printf("  4. Add latency overrides to configs/config.yaml if needed\n")
}
