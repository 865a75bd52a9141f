// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"loan-assistant/pkg/registry"
)

var registryPath string

func main() {
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	for _, fs := range []*flag.FlagSet{listCmd, updateCmd, validateCmd} {
		fs.StringVar(&registryPath, "path", "pkg/registry/agents.json", "Path to registry file")
	}

	// Update command flags
	taskType := updateCmd.String("taskType", "", "Task type of the agent to update (e.g., credit-bureau-check)")
	field := updateCmd.String("field", "", "Field to update (latency, task, completeTask, reroute, agent, displayName)")
	value := updateCmd.String("value", "", "New value for the field")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		listCmd.Parse(os.Args[2:])
		if err := listActivities(); err != nil {
			fmt.Printf("Error listing registry: %v\n", err)
			os.Exit(1)
		}

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *taskType == "" || *field == "" || *value == "" {
			fmt.Println("Error: taskType, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateActivity(*taskType, *field, *value); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated agent %s, field %s to %s\n", *taskType, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateRegistry(); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func listActivities() error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	fmt.Printf("%-24s %-22s %-8s %s\n", "TASK TYPE", "AGENT", "LATENCY", "TASK")
	for _, tt := range reg.TaskTypes() {
		a, _ := reg.Lookup(tt)
		fmt.Printf("%-24s %-22s %-8s %s\n", a.TaskType, a.Agent, a.Latency(), a.Task)
	}
	return nil
}

func updateActivity(taskType, field, value string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	found := false
	for i := range reg.Activities {
		if reg.Activities[i].TaskType != taskType {
			continue
		}
		found = true
		switch field {
		case "latency":
			ms, err := strconv.Atoi(value)
			if err != nil || ms <= 0 {
				return fmt.Errorf("invalid latency value %q: must be a positive number of milliseconds", value)
			}
			// Progress steps are rescaled so they keep their relative position.
			reg.Activities[i] = reg.Activities[i].WithLatency(ms)
		case "task":
			reg.Activities[i].Task = value
		case "completeTask":
			reg.Activities[i].CompleteTask = value
		case "reroute":
			reg.Activities[i].Reroute = value
		case "agent":
			reg.Activities[i].Agent = value
		case "displayName":
			reg.Activities[i].DisplayName = value
		case "description":
			reg.Activities[i].Description = value
		default:
			return fmt.Errorf("unknown field: %s", field)
		}
		break
	}

	if !found {
		return fmt.Errorf("agent with task type %s not found", taskType)
	}

	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return saveRegistry(reg, registryPath)
}

// validateRegistry runs the same schema and progress checks the binary runs
// on the embedded copy.
func validateRegistry() error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return err
	}
	fmt.Printf("Registry validation passed. Found %d agents.\n", len(reg.Activities))
	return nil
}

// saveRegistry re-validates before writing so a bad edit never lands on disk.
func saveRegistry(reg *registry.AgentRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if _, err := registry.Parse(data); err != nil {
		return fmt.Errorf("updated registry is invalid: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	err = os.WriteFile(path, append(data, '\n'), 0644)
	if err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}

	return nil
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  list     Print every simulated agent with its latency
  update   Update one field of an agent
  validate Validate the registry file
  help     Show this help message

Examples:
  registry-updater list
  registry-updater update -taskType credit-bureau-check -field latency -value 4500
  registry-updater update -taskType fetch-offers -field reroute -value "Offer-Mart"
  registry-updater validate -path pkg/registry/agents.json

Use 'registry-updater <command> -h' for more information about a command.
`)
}
