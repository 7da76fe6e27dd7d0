// pkg/registry/schema.go
package registry

// PageRegistry describes the dashboard navigation.
type PageRegistry struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	Pages       []Page `json:"pages"`
}

// Page is one dashboard page. Titles are keyed by locale ("id", "en").
type Page struct {
	ID          string            `json:"id"`
	Title       map[string]string `json:"title"`
	Description string            `json:"description"`
	Path        string            `json:"path"`
	Category    string            `json:"category"`
	Service     string            `json:"service"`
	Order       int               `json:"order"`
	Status      string            `json:"status"`
	Tabs        []Tab             `json:"tabs"`
}

type Tab struct {
	ID    string            `json:"id"`
	Title map[string]string `json:"title"`
}

const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusActive     = "active"
	StatusHidden     = "hidden"
)

// pageRegistrySchema is the JSON Schema every registry file must satisfy.
const pageRegistrySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "pages"],
  "properties": {
    "version": {"type": "string", "pattern": "^[0-9]+\\.[0-9]+\\.[0-9]+$"},
    "lastUpdated": {"type": "string"},
    "pages": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title", "path", "category", "service", "status", "tabs"],
        "properties": {
          "id": {"type": "string", "pattern": "^[a-z][a-z0-9-]*$"},
          "title": {
            "type": "object",
            "required": ["id", "en"],
            "properties": {"id": {"type": "string", "minLength": 1}, "en": {"type": "string", "minLength": 1}}
          },
          "description": {"type": "string"},
          "path": {"type": "string", "pattern": "^/"},
          "category": {"type": "string", "enum": ["overview", "real-estate", "operations", "sustainability", "workplace"]},
          "service": {"type": "string"},
          "order": {"type": "integer", "minimum": 0},
          "status": {"type": "string", "enum": ["planned", "in-progress", "active", "hidden"]},
          "tabs": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "title"],
              "properties": {
                "id": {"type": "string", "pattern": "^[a-z][a-z0-9-]*$"},
                "title": {"type": "object", "required": ["id", "en"]}
              }
            }
          }
        }
      }
    }
  }
}`
