// Package fixtures serves the embedded sample data used when a service runs
// without an external data source.
package fixtures

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/common/validation"
)

//go:embed data/*.json schemas/*.json
var files embed.FS

// Data set names.
const (
	Properties     = "properties"
	Leases         = "leases"
	Floors         = "floors"
	Spaces         = "spaces"
	WorkOrders     = "work_orders"
	Energy         = "energy"
	Amenities      = "amenities"
	Feedback       = "feedback"
	Certifications = "certifications"
)

var validated sync.Map // name -> error

// Load decodes the named data set into a fresh slice. The raw document is
// checked against its schema on first use.
func Load[T any](name string) ([]T, error) {
	raw, err := files.ReadFile("data/" + name + ".json")
	if err != nil {
		return nil, apperrors.NewFixtureLoadFailedError(name, err)
	}
	if err := validate(name, raw); err != nil {
		return nil, apperrors.NewFixtureLoadFailedError(name, err)
	}

	out := make([]T, 0)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.NewFixtureLoadFailedError(name, err)
	}
	return out, nil
}

func validate(name string, raw []byte) error {
	if v, ok := validated.Load(name); ok {
		if v == nil {
			return nil
		}
		return v.(error)
	}

	err := checkSchema(name, raw)
	if err == nil {
		validated.Store(name, nil)
	} else {
		validated.Store(name, err)
	}
	return err
}

func checkSchema(name string, raw []byte) error {
	schemaJSON, err := files.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	schema, err := validation.Compile(name, schemaJSON)
	if err != nil {
		return err
	}
	res, err := schema.Validate(raw)
	if err != nil {
		return err
	}
	return res.Err()
}

// Delay waits d, returning ctx.Err() if the context ends first.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
