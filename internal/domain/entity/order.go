package entity

import "time"

// Stage etapa del tablero de producción.
type Stage string

const (
	StageDesigning Stage = "designing"
	StageRipping   Stage = "ripping"
	StageHeatpress Stage = "heatpress"
	StageCutting   Stage = "cutting"
	StageAssembly  Stage = "assembly"
	StageQC        Stage = "qc"
	StageDone      Stage = "done"
)

// Stages devuelve las etapas en el orden de las columnas del tablero.
func Stages() []Stage {
	return []Stage{StageDesigning, StageRipping, StageHeatpress, StageCutting, StageAssembly, StageQC, StageDone}
}

var stageTitles = map[Stage]string{
	StageDesigning: "Designing",
	StageRipping:   "Ripping",
	StageHeatpress: "Heatpress",
	StageCutting:   "Cutting",
	StageAssembly:  "Assembly/Sew",
	StageQC:        "Quality Check",
	StageDone:      "Done",
}

// Valid indica si la etapa existe.
func (s Stage) Valid() bool {
	_, ok := stageTitles[s]
	return ok
}

// Title nombre visible de la columna.
func (s Stage) Title() string { return stageTitles[s] }

// Order es un pedido de producción dentro del tablero.
type Order struct {
	ID        string
	OrderRef  string
	Client    string
	OrderDate *time.Time
	Stage     Stage
	Position  int
	Qty       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StageChange registro histórico de un movimiento entre columnas.
type StageChange struct {
	OrderID   string
	FromStage Stage
	ToStage   Stage
	ChangedBy string
	ChangedAt time.Time
}
