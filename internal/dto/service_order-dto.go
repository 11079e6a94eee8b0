package dto

// ServiceOrderDTO - forma exibida pela interface: status no vocabulário em
// português e campos de exibição desnormalizados resolvidos via lookup.
type ServiceOrderDTO struct {
	ID                   string `json:"id"`
	OrderNumber          int64  `json:"orderNumber,omitempty"`
	ClientID             string `json:"clientId"`
	ClientName           string `json:"clientName"`
	Description          string `json:"description"`
	Status               string `json:"status"`
	IssueDate            string `json:"issueDate"`
	AssignedTechnicianID string `json:"assignedTechnicianId,omitempty"`
	AssignedTo           string `json:"assignedTo,omitempty"`
	CreatedBy            string `json:"createdBy"`
}

type CreateServiceOrderDTO struct {
	ClientName  string `json:"clientName" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

type AssignTechnicianDTO struct {
	TechnicianName string `json:"technicianName" validate:"required"`
}

type AddNoteDTO struct {
	Notes string `json:"notes" validate:"required"`
}
