// cmd/tools/worker-generator/main.go
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/ThanushaGali/CaConnect/pkg/registry"
)

const modulePath = "github.com/ThanushaGali/CaConnect"

var errWorkerExists = errors.New("worker directory already exists")

// WorkerData is what the templates render from.
type WorkerData struct {
	Module        string
	Dir           string
	Name          string
	PackageName   string
	TaskType      string
	Description   string
	Schema        string
	TimeoutMillis int64
	InputFields   []Field
	OutputFields  []Field
	ErrorCodes    []string
}

// Field is one struct field derived from a schema property.
type Field struct {
	Name    string
	Type    string
	JSONTag string
}

func main() {
	activity := flag.String("activity", "", "Activity ID from registry (e.g., lookup-provider)")
	outputDir := flag.String("output", "./internal/workers/", "Root directory for generated workers")
	registryPath := flag.String("registry", registry.DefaultPath, "Path to the activity registry JSON file")
	force := flag.Bool("force", false, "Overwrite an existing worker directory")
	flag.Parse()

	if *activity == "" {
		fmt.Println("Usage: worker-generator -activity <id> [-output <dir>] [-registry <path>] [-force]")
		fmt.Println("\nExample:")
		fmt.Println("  go run ./cmd/tools/worker-generator -activity rank-featured")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading registry from %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	files, err := generate(reg, *activity, *outputDir, *force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, f := range files {
		fmt.Printf("Generated %s\n", f)
	}
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Implement execute in handler.go")
	fmt.Println("  2. Register the handler in cmd/discovery-manager/wiring.go")
	fmt.Println("  3. Add a workers entry to configs/config.yaml")
}

// generate renders the worker scaffold for activityID under outputDir and
// returns the written paths.
func generate(reg *registry.ActivityRegistry, activityID, outputDir string, force bool) ([]string, error) {
	var activity *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == activityID {
			activity = &reg.Activities[i]
			break
		}
	}
	if activity == nil {
		return nil, fmt.Errorf("activity %q: %w", activityID, registry.ErrActivityNotFound)
	}

	data, err := workerData(activity)
	if err != nil {
		return nil, err
	}

	workerDir := filepath.Join(outputDir, data.Dir)
	if _, err := os.Stat(workerDir); err == nil && !force {
		return nil, fmt.Errorf("%w: %s", errWorkerExists, workerDir)
	}
	if err := os.MkdirAll(workerDir, 0o755); err != nil {
		return nil, fmt.Errorf("create worker directory: %w", err)
	}

	templates := []struct {
		name string
		body string
	}{
		{"handler.go", handlerTemplate},
		{"config.go", configTemplate},
		{"models.go", modelsTemplate},
		{"handler_test.go", testTemplate},
	}

	written := make([]string, 0, len(templates))
	for _, t := range templates {
		src, err := render(t.name, t.body, data)
		if err != nil {
			return written, err
		}
		path := filepath.Join(workerDir, t.name)
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func workerData(a *registry.Activity) (WorkerData, error) {
	timeout, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return WorkerData{}, fmt.Errorf("activity %s: invalid timeout %q: %w", a.ID, a.Timeout, err)
	}
	schema, err := json.Marshal(a.InputSchema)
	if err != nil {
		return WorkerData{}, fmt.Errorf("activity %s: encode input schema: %w", a.ID, err)
	}

	return WorkerData{
		Module:        modulePath,
		Dir:           filepath.Join(strings.ToLower(a.Category), a.ID),
		Name:          a.DisplayName,
		PackageName:   strings.ReplaceAll(a.ID, "-", ""),
		TaskType:      a.TaskType,
		Description:   a.Description,
		Schema:        string(schema),
		TimeoutMillis: timeout.Milliseconds(),
		InputFields:   fields(a.InputSchema),
		OutputFields:  fields(a.OutputSchema),
		ErrorCodes:    a.ErrorCodes,
	}, nil
}

// render executes one template and gofmts the result, so a template that
// produces invalid Go fails here instead of in the generated package.
func render(name, body string, data WorkerData) ([]byte, error) {
	tmpl, err := template.New(name).Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return src, nil
}

// fields maps schema properties to struct fields in name order.
func fields(schema map[string]interface{}) []Field {
	props, _ := schema["properties"].(map[string]interface{})
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Field, 0, len(names))
	for _, name := range names {
		details, _ := props[name].(map[string]interface{})
		out = append(out, Field{
			Name:    exportedName(name),
			Type:    goType(details["type"]),
			JSONTag: fmt.Sprintf("`json:\"%s,omitempty\"`", name),
		})
	}
	return out
}

func goType(jsonType interface{}) string {
	switch jsonType {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		return "[]interface{}"
	case "object":
		return "map[string]interface{}"
	default:
		return "interface{}"
	}
}

// exportedName turns "providerId" into "ProviderID".
func exportedName(prop string) string {
	if prop == "" {
		return prop
	}
	r := []rune(prop)
	r[0] = unicode.ToUpper(r[0])
	name := string(r)
	if strings.HasSuffix(name, "Id") {
		name = strings.TrimSuffix(name, "Id") + "ID"
	}
	return name
}

const handlerTemplate = `// internal/workers/{{ .Dir }}/handler.go
package {{ .PackageName }}

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	commonerrors "{{ .Module }}/internal/common/errors"
	"{{ .Module }}/internal/common/logger"
	"{{ .Module }}/internal/common/metrics"
	"{{ .Module }}/internal/common/validation"
	"{{ .Module }}/internal/discovery"
)

const TaskType = "{{ .TaskType }}"

const inputSchema = ` + "`{{ .Schema }}`" + `

// Handler runs the {{ .Name }} task: {{ .Description }}.
type Handler struct {
	config     *Config
	schema     *validation.Schema
	errHandler *commonerrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(inputSchema), &raw); err != nil {
		return nil, fmt.Errorf("decode %s input schema: %w", TaskType, err)
	}
	schema, err := validation.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("compile %s input schema: %w", TaskType, err)
	}

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		schema:     schema,
		errHandler: commonerrors.NewErrorHandler(log),
		logger:     log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, commonerrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err.Error()})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	result, err := h.schema.Validate(input)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, commonerrors.NewInvalidInputError(result.Err().Error())
	}

	// TODO: implement {{ .TaskType }}{{ if .ErrorCodes }}; declared error codes: {{ range $i, $c := .ErrorCodes }}{{ if $i }}, {{ end }}{{ $c }}{{ end }}{{ end }}
	return &Output{}, nil
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := discovery.Classify(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errHandler.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
`

const configTemplate = `// internal/workers/{{ .Dir }}/config.go
package {{ .PackageName }}

import (
	"time"

	"{{ .Module }}/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ .TimeoutMillis }} * time.Millisecond,
	}
}

func ConfigFrom(wcfg config.WorkerConfig) *Config {
	cfg := LoadConfig()
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	return cfg
}
`

const modelsTemplate = `// internal/workers/{{ .Dir }}/models.go
package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .Name }} {{ .Type }} {{ .JSONTag }}
{{- end }}
}

type Output struct {
{{- range .OutputFields }}
	{{ .Name }} {{ .Type }} {{ .JSONTag }}
{{- end }}
}
`

const testTemplate = `// internal/workers/{{ .Dir }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"{{ .Module }}/internal/common/logger"
)

func TestHandler_Execute(t *testing.T) {
	h, err := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	require.NoError(t, err)

	out, err := h.Execute(context.Background(), &Input{})
	if err != nil {
		assert.Contains(t, err.Error(), "INVALID_INPUT")
		return
	}
	assert.NotNil(t, out)
}
`
