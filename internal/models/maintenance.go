// internal/models/maintenance.go
package models

// WorkOrder is a facility maintenance request.
type WorkOrder struct {
	ID         string `json:"id"`
	AssetID    string `json:"assetId"`
	PropertyID string `json:"propertyId"`
	Title      string `json:"title"`
	Priority   string `json:"priority"`
	Status     string `json:"status"`
	Assignee   string `json:"assignee"`
	ReportedAt string `json:"reportedAt"` // RFC3339
	DueAt      string `json:"dueAt"`      // RFC3339
}

const (
	WorkOrderStatusOpen       = "open"
	WorkOrderStatusInProgress = "in_progress"
	WorkOrderStatusCompleted  = "completed"

	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// MaintenanceSummary aggregates work orders.
type MaintenanceSummary struct {
	Total          int            `json:"total"`
	Open           int            `json:"open"`
	InProgress     int            `json:"inProgress"`
	Completed      int            `json:"completed"`
	CompletionRate float64        `json:"completionRate"` // percent
	ByPriority     map[string]int `json:"byPriority"`
}

// SummarizeWorkOrders computes a MaintenanceSummary.
func SummarizeWorkOrders(orders []WorkOrder) MaintenanceSummary {
	s := MaintenanceSummary{Total: len(orders), ByPriority: map[string]int{}}
	for _, o := range orders {
		switch o.Status {
		case WorkOrderStatusOpen:
			s.Open++
		case WorkOrderStatusInProgress:
			s.InProgress++
		case WorkOrderStatusCompleted:
			s.Completed++
		}
		if o.Status != WorkOrderStatusCompleted {
			s.ByPriority[o.Priority]++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = round1(float64(s.Completed) * 100 / float64(s.Total))
	}
	return s
}
