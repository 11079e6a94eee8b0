package dto

// HistoryEntryDTO - evento da linha do tempo de uma OS, com os status já
// traduzidos para o vocabulário da interface.
type HistoryEntryDTO struct {
	ID         string `json:"id"`
	StatusFrom string `json:"statusFrom"`
	StatusTo   string `json:"statusTo"`
	ChangedBy  string `json:"changedBy"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  string `json:"createdAt"`
}
