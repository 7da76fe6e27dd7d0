// cmd/tools/page-registry/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"iwms-dashboard/pkg/registry"
)

const defaultPath = "configs/page-registry.json"

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	// Add command flags
	addPath := addCmd.String("path", defaultPath, "Path to registry file")
	idAdd := addCmd.String("id", "", "Page ID (e.g., environmental)")
	titleID := addCmd.String("title-id", "", "Indonesian title (e.g., Energi & Emisi)")
	titleEN := addCmd.String("title-en", "", "English title (e.g., Energy & Emissions)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (overview, real-estate, operations, sustainability, workplace)")
	service := addCmd.String("service", "", "Backing service name (e.g., environmental)")
	order := addCmd.Int("order", 100, "Navigation order")
	status := addCmd.String("status", registry.StatusPlanned, "Status (planned, in-progress, active, hidden)")
	tabs := addCmd.String("tabs", "", "Tabs as id:judul:title pairs separated by commas")

	// Update command flags
	updatePath := updateCmd.String("path", defaultPath, "Path to registry file")
	idUpdate := updateCmd.String("id", "", "Page ID to update")
	field := updateCmd.String("field", "", "Field to update (status, path, category, service, description, title.id, title.en, order)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultPath, "Path to registry file")
	listPath := listCmd.String("path", defaultPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *titleID == "" || *titleEN == "" || *category == "" {
			fmt.Println("Error: id, title-id, title-en, and category are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		parsedTabs, err := parseTabs(*tabs)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		page := registry.Page{
			ID:          *idAdd,
			Title:       map[string]string{"id": *titleID, "en": *titleEN},
			Description: *description,
			Path:        "/pages/" + *idAdd,
			Category:    *category,
			Service:     *service,
			Order:       *order,
			Status:      *status,
			Tabs:        parsedTabs,
		}
		if err := addPage(*addPath, page); err != nil {
			fmt.Printf("Error adding page: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added page: %s\n", *idAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updatePage(*updatePath, *idUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating page: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated page %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*validatePath)
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d pages.\n", len(reg.Pages))

	case "list":
		listCmd.Parse(os.Args[2:])
		if err := listPages(*listPath); err != nil {
			fmt.Printf("Error listing pages: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func addPage(path string, page registry.Page) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.PageRegistry{
			Version:     "1.0.0",
			LastUpdated: time.Now().Format(time.RFC3339),
			Pages:       []registry.Page{},
		}
	}
	if err := reg.Add(page); err != nil {
		return err
	}
	return reg.Save(path)
}

func updatePage(path, id, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Update(id, field, value); err != nil {
		return err
	}
	return reg.Save(path)
}

func listPages(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tID\tSTATUS\tSERVICE\tPATH\tTABS")
	for _, p := range reg.Pages {
		ids := make([]string, 0, len(p.Tabs))
		for _, t := range p.Tabs {
			ids = append(ids, t.ID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", p.Order, p.ID, p.Status, p.Service, p.Path, strings.Join(ids, ","))
	}
	return w.Flush()
}

// parseTabs reads "energy:Energi:Energy,emissions:Emisi:Emissions".
func parseTabs(raw string) ([]registry.Tab, error) {
	tabs := []registry.Tab{}
	if strings.TrimSpace(raw) == "" {
		return tabs, nil
	}
	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), ":", 3)
		if len(parts) != 3 || parts[0] == "" {
			return nil, fmt.Errorf("invalid tab %q, want id:judul:title", item)
		}
		tabs = append(tabs, registry.Tab{
			ID:    parts[0],
			Title: map[string]string{"id": parts[1], "en": parts[2]},
		})
	}
	return tabs, nil
}

func help() {
	fmt.Print(`
Usage: page-registry <command> [flags]

Commands:
  add      Add a new page to the registry
  update   Update an existing page's field
  validate Validate the registry file
  list     List registered pages
  help     Show this help message

Examples:
  page-registry add -id parking -title-id "Parkir" -title-en "Parking" -category workplace -service parking -tabs "slots:Slot:Slots"
  page-registry update -id environmental -field status -value active
  page-registry validate -path configs/page-registry.json

Use 'page-registry <command> -h' for more information about a command.
` + "\n")
}
