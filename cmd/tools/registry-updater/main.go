// cmd/tools/registry-updater/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ThanushaGali/CaConnect/internal/common/validation"
	"github.com/ThanushaGali/CaConnect/pkg/registry"
)

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	switch command {
	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		path := fs.String("path", registry.DefaultPath, "Path to registry file")
		_ = fs.Parse(args)
		if err := registry.Save(registry.Default(), *path); err != nil {
			return err
		}
		fmt.Printf("Exported %d activities to %s\n", len(registry.Default().Activities), *path)
		return nil

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		path := fs.String("path", registry.DefaultPath, "Path to registry file")
		id := fs.String("id", "", "Activity ID (e.g., lookup-provider)")
		displayName := fs.String("displayName", "", "Display Name (e.g., Lookup Provider)")
		description := fs.String("description", "", "Description")
		category := fs.String("category", registry.CategoryDiscovery, "Category")
		taskType := fs.String("taskType", "", "Camunda Task Type (defaults to id)")
		version := fs.String("version", "1.0.0", "Version")
		status := fs.String("status", registry.StatusPlanned, "Implementation Status (planned, in-progress, completed, verified)")
		_ = fs.Parse(args)

		if *id == "" || *displayName == "" || *description == "" {
			fs.Usage()
			return errors.New("id, displayName and description are required for add")
		}
		if *taskType == "" {
			*taskType = *id
		}
		activity := registry.Activity{
			ID:                   *id,
			DisplayName:          *displayName,
			Description:          *description,
			Category:             *category,
			Version:              *version,
			TaskType:             *taskType,
			ImplementationStatus: *status,
			InputSchema:          map[string]interface{}{"type": "object"},
			OutputSchema:         map[string]interface{}{"type": "object"},
			ErrorCodes:           []string{},
			Timeout:              "10s",
			Workflows:            []string{},
			Tags:                 []string{},
		}
		if err := addActivity(*path, activity); err != nil {
			return fmt.Errorf("adding activity: %w", err)
		}
		fmt.Printf("Added activity: %s\n", *id)
		return nil

	case "update":
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		path := fs.String("path", registry.DefaultPath, "Path to registry file")
		id := fs.String("id", "", "Activity ID to update")
		field := fs.String("field", "", "Field to update (status, version, displayName, description, category, taskType, timeout, retries)")
		value := fs.String("value", "", "New value for the field")
		_ = fs.Parse(args)

		if *id == "" || *field == "" || *value == "" {
			fs.Usage()
			return errors.New("id, field and value are required for update")
		}
		if err := updateActivity(*path, *id, *field, *value); err != nil {
			return fmt.Errorf("updating activity: %w", err)
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", *id, *field, *value)
		return nil

	case "validate":
		fs := flag.NewFlagSet("validate", flag.ExitOnError)
		path := fs.String("path", registry.DefaultPath, "Path to registry file")
		_ = fs.Parse(args)
		n, err := validateRegistry(*path)
		if err != nil {
			return fmt.Errorf("registry validation failed: %w", err)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", n)
		return nil

	default:
		help()
		return nil
	}
}

func addActivity(path string, activity registry.Activity) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	}

	if _, err := reg.Find(activity.TaskType); err == nil {
		return fmt.Errorf("activity with task type %s already exists", activity.TaskType)
	}
	for _, existing := range reg.Activities {
		if existing.ID == activity.ID {
			return fmt.Errorf("activity with ID %s already exists", activity.ID)
		}
	}

	reg.Activities = append(reg.Activities, activity)
	return registry.Save(reg, path)
}

func updateActivity(path, id, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	idx := -1
	for i := range reg.Activities {
		if reg.Activities[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	a := &reg.Activities[idx]
	switch field {
	case "status":
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "category":
		a.Category = value
	case "taskType":
		a.TaskType = value
	case "timeout":
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	if err := reg.Validate(); err != nil {
		return err
	}
	return registry.Save(reg, path)
}

// validateRegistry checks structure and that every schema compiles.
func validateRegistry(path string) (int, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return 0, err
	}

	var problems []string
	for _, a := range reg.Activities {
		if _, err := validation.Compile(a.InputSchema); err != nil {
			problems = append(problems, fmt.Sprintf("%s inputSchema: %v", a.ID, err))
		}
		if _, err := validation.Compile(a.OutputSchema); err != nil {
			problems = append(problems, fmt.Sprintf("%s outputSchema: %v", a.ID, err))
		}
	}
	if len(problems) > 0 {
		return 0, errors.New(strings.Join(problems, "; "))
	}
	return len(reg.Activities), nil
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  export   Write the built-in discovery activities to the registry file
  add      Add a new activity to the registry
  update   Update an existing activity's field
  validate Validate the registry file and its schemas
  help     Show this help message

Examples:
  registry-updater export -path configs/activity-registry.json
  registry-updater add -id rank-featured -displayName "Rank Featured" -description "Ranks featured providers"
  registry-updater update -id browse-providers -field retries -value 2
  registry-updater validate -path configs/activity-registry.json

Use 'registry-updater <command> -h' for more information about a command.`)
}
