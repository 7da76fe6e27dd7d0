package main

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iwms-dashboard/pkg/registry"
)

func createTestPage() registry.Page {
	return registry.Page{
		ID:          "parking",
		Title:       map[string]string{"id": "Parkir", "en": "Parking"},
		Description: "Parking slot utilisation.",
		Path:        "/pages/parking",
		Category:    "workplace",
		Service:     "parking-lots",
		Status:      registry.StatusPlanned,
	}
}

func TestDataFor(t *testing.T) {
	data, err := dataFor(createTestPage(), "slot")
	require.NoError(t, err)

	assert.Equal(t, "parkinglots", data.PackageName)
	assert.Equal(t, "parking-lots", data.ServiceName)
	assert.Equal(t, "Slot", data.Entity)
	assert.Equal(t, "parking_lots", data.Table)
	assert.Equal(t, "Parking", data.Title)

	data, err = dataFor(createTestPage(), "")
	require.NoError(t, err)
	assert.Equal(t, "Record", data.Entity)

	page := createTestPage()
	page.Service = ""
	_, err = dataFor(page, "")
	assert.Error(t, err)
}

func TestRender_ProducesValidGo(t *testing.T) {
	data, err := dataFor(createTestPage(), "Slot")
	require.NoError(t, err)

	files, err := render(data)
	require.NoError(t, err)
	assert.Len(t, files, 4)

	fset := token.NewFileSet()
	for name, src := range files {
		f, err := parser.ParseFile(fset, name, src, 0)
		require.NoError(t, err, name)
		assert.Equal(t, "parkinglots", f.Name.Name)
	}

	assert.True(t, strings.Contains(string(files["service.go"]), "ListSlots result.Wrapped0[[]Slot]"))
	assert.True(t, strings.Contains(string(files["config.go"]), `const ServiceName = "parking-lots"`))
	assert.True(t, strings.Contains(string(files["repository.go"]), "FROM parking_lots"))
}
