// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed agents.json
var defaultRegistry []byte

//go:embed agents.schema.json
var registrySchema []byte

var (
	loadOnce sync.Once
	loaded   *AgentRegistry
	loadErr  error
)

// Default returns the embedded registry, parsed and validated once.
func Default() (*AgentRegistry, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(defaultRegistry)
	})
	return loaded, loadErr
}

// MustDefault panics if the embedded registry is invalid.
func MustDefault() *AgentRegistry {
	reg, err := Default()
	if err != nil {
		panic(err)
	}
	return reg
}

func LoadRegistry(path string) (*AgentRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse validates data against the registry schema before decoding it.
func Parse(data []byte) (*AgentRegistry, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var reg AgentRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := reg.checkProgress(); err != nil {
		return nil, err
	}
	return &reg, nil
}

func Validate(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(registrySchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("registry validation failed: %v", errs)
	}
	return nil
}

// checkProgress enforces what the schema cannot: steps strictly increase in
// percent and all fire before the operation resolves.
func (r *AgentRegistry) checkProgress() error {
	seen := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		if seen[a.TaskType] {
			return fmt.Errorf("duplicate task type %q", a.TaskType)
		}
		seen[a.TaskType] = true

		last := 0
		for _, p := range a.Progress {
			if p.Percent <= last {
				return fmt.Errorf("%s: progress percent %d does not increase", a.TaskType, p.Percent)
			}
			if p.AtMs >= a.LatencyMs {
				return fmt.Errorf("%s: progress at %dms is not before latency %dms", a.TaskType, p.AtMs, a.LatencyMs)
			}
			last = p.Percent
		}
	}
	return nil
}

func (r *AgentRegistry) Lookup(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// MustLookup panics for unknown task types. Each worker calls it with its own
// TaskType constant, so a miss is a programming error.
func (r *AgentRegistry) MustLookup(taskType string) Activity {
	a, ok := r.Lookup(taskType)
	if !ok {
		panic(fmt.Sprintf("registry: unknown task type %q", taskType))
	}
	return a
}

func (r *AgentRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	sort.Strings(out)
	return out
}
