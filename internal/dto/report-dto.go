package dto

// StatusSummaryDTO - contagem de OS por status, fonte do gráfico de pizza.
type StatusSummaryDTO struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
