package constants

// Sentinelas de exibição usadas quando um lookup não resolve.
const (
	UnknownClientName     = "Cliente Desconhecido"
	UnknownTechnicianName = "Técnico Desconhecido"
	UnknownName           = "Nome Desconhecido"
	UnknownEmail          = "Email Desconhecido"
)

// Formato local de exibição de datas.
const DisplayTimeFormat = "02/01/2006 15:04"
