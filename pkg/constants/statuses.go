package constants

// Códigos de status da OS - vocabulário do banco, enum em inglês.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusOnTheWay   = "on_the_way"
	StatusArrived    = "arrived"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Rótulos exibidos na interface (vocabulário em português).
const (
	LabelOpen       = "Pendente"
	LabelInProgress = "Em Andamento"
	LabelOnTheWay   = "Em Deslocamento"
	LabelArrived    = "Chegou"
	LabelCompleted  = "Concluído"
	LabelCancelled  = "Cancelado"
)

var statusLabels = map[string]string{
	StatusOpen:       LabelOpen,
	StatusInProgress: LabelInProgress,
	StatusOnTheWay:   LabelOnTheWay,
	StatusArrived:    LabelArrived,
	StatusCompleted:  LabelCompleted,
	StatusCancelled:  LabelCancelled,
}

var statusCodes = map[string]string{
	LabelOpen:       StatusOpen,
	LabelInProgress: StatusInProgress,
	LabelOnTheWay:   StatusOnTheWay,
	LabelArrived:    StatusArrived,
	LabelCompleted:  StatusCompleted,
	LabelCancelled:  StatusCancelled,
}

// StatusLabel converte o código do banco para o rótulo da interface.
func StatusLabel(code string) (string, bool) {
	label, ok := statusLabels[code]
	return label, ok
}

// StatusCode converte o rótulo da interface para o código do banco.
func StatusCode(label string) (string, bool) {
	code, ok := statusCodes[label]
	return code, ok
}

func AllStatusCodes() []string {
	return []string{StatusOpen, StatusInProgress, StatusOnTheWay, StatusArrived, StatusCompleted, StatusCancelled}
}

// Transições permitidas por status de origem. Status finais não saem daqui.
var allowedTransitions = map[string][]string{
	StatusOpen:       {StatusInProgress, StatusOnTheWay, StatusCancelled},
	StatusInProgress: {StatusOnTheWay, StatusArrived, StatusCompleted, StatusCancelled},
	StatusOnTheWay:   {StatusArrived, StatusCompleted, StatusCancelled},
	StatusArrived:    {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

var finalStatuses = []string{StatusCompleted, StatusCancelled}

func IsFinalStatus(code string) bool {
	for _, s := range finalStatuses {
		if s == code {
			return true
		}
	}
	return false
}
