// Package pipeline holds the board state for one recruitment pipeline and
// the optimistic stage-transition protocol against the remote ATS API.
//
// Application pipeline:
//
//	submitted ──► screening ──► recruiter_interview ──► shortlisted ──►
//	client_interview ──► offer ──► hired
//	    │
//	    └──► rejected / withdrawn (from any active stage)
//
// Job pipeline:
//
//	cadastro ──► triagem ──► entrevistas ──► selecao ──► envio_cliente ──►
//	contratacao
//
// hired, rejected and withdrawn are absorbing; contratacao is the job
// pipeline's final stage. Backward moves to an earlier active stage reopen a
// card and are always legal.
package pipeline

import "fmt"

// Stage is one named state in a closed, pipeline-specific set.
type Stage string

// Application pipeline stages.
const (
	StageSubmitted          Stage = "submitted"
	StageScreening          Stage = "screening"
	StageRecruiterInterview Stage = "recruiter_interview"
	StageShortlisted        Stage = "shortlisted"
	StageClientInterview    Stage = "client_interview"
	StageOffer              Stage = "offer"
	StageHired              Stage = "hired"
	StageRejected           Stage = "rejected"
	StageWithdrawn          Stage = "withdrawn"
)

// Job pipeline stages.
const (
	StageCadastro     Stage = "cadastro"
	StageTriagem      Stage = "triagem"
	StageEntrevistas  Stage = "entrevistas"
	StageSelecao      Stage = "selecao"
	StageEnvioCliente Stage = "envio_cliente"
	StageContratacao  Stage = "contratacao"
)

// Kind selects which pipeline a board belongs to.
type Kind int

const (
	ApplicationPipeline Kind = iota
	JobPipeline
)

func (k Kind) String() string {
	if k == JobPipeline {
		return "jobs"
	}
	return "applications"
}

var applicationOrder = []Stage{
	StageSubmitted,
	StageScreening,
	StageRecruiterInterview,
	StageShortlisted,
	StageClientInterview,
	StageOffer,
	StageHired,
}

var applicationSideStates = []Stage{StageRejected, StageWithdrawn}

var jobOrder = []Stage{
	StageCadastro,
	StageTriagem,
	StageEntrevistas,
	StageSelecao,
	StageEnvioCliente,
	StageContratacao,
}

var stageLabels = map[Stage]string{
	StageSubmitted:          "Coleta de Dados",
	StageScreening:          "Triagem",
	StageRecruiterInterview: "Entrevista RH",
	StageShortlisted:        "Selecionados",
	StageClientInterview:    "Entrevista Cliente",
	StageOffer:              "Oferta",
	StageHired:              "Contratado",
	StageRejected:           "Reprovado",
	StageWithdrawn:          "Desistência",

	StageCadastro:     "Cadastro da Vaga",
	StageTriagem:      "Triagem de Currículos",
	StageEntrevistas:  "Entrevistas",
	StageSelecao:      "Seleção",
	StageEnvioCliente: "Envio ao Cliente",
	StageContratacao:  "Contratação",
}

// Label returns the human-readable name for a stage, falling back to the
// raw identifier for stages the client does not know about.
func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return string(s)
}

// Stages returns the full ordered stage set for the pipeline kind,
// side states last.
func (k Kind) Stages() []Stage {
	if k == JobPipeline {
		return append([]Stage(nil), jobOrder...)
	}
	out := append([]Stage(nil), applicationOrder...)
	return append(out, applicationSideStates...)
}

// ParseStage validates a raw identifier against the pipeline's closed set.
func (k Kind) ParseStage(raw string) (Stage, error) {
	s := Stage(raw)
	for _, known := range k.Stages() {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown %s stage %q", k, raw)
}

// order returns the forward sequence of active stages (side states excluded).
func (k Kind) order() []Stage {
	if k == JobPipeline {
		return jobOrder
	}
	return applicationOrder
}

func (k Kind) indexOf(s Stage) int {
	for i, st := range k.order() {
		if st == s {
			return i
		}
	}
	return -1
}

// Terminal reports whether a stage has no outgoing transitions.
func (k Kind) Terminal(s Stage) bool {
	if k == ApplicationPipeline && (s == StageRejected || s == StageWithdrawn) {
		return true
	}
	order := k.order()
	return s == order[len(order)-1]
}

// SideState reports whether s is one of the absorbing side states
// (rejected/withdrawn); the job pipeline has none.
func (k Kind) SideState(s Stage) bool {
	return k == ApplicationPipeline && (s == StageRejected || s == StageWithdrawn)
}

// Next returns the next forward stage, or false at the final stage or from a
// side state.
func (k Kind) Next(s Stage) (Stage, bool) {
	i := k.indexOf(s)
	if i < 0 || i == len(k.order())-1 {
		return "", false
	}
	return k.order()[i+1], true
}

// Allowed reports whether moving from → to is legal on this pipeline. Legal
// moves are: one step forward, any earlier active stage (reopen), and the
// side states from any active stage. hired is only reachable from offer; the
// server enforces the same rule, checking here avoids a doomed round-trip.
func (k Kind) Allowed(from, to Stage) bool {
	if from == to {
		return false
	}
	if k.Terminal(from) {
		return false
	}
	if k.SideState(to) {
		return true
	}
	fi, ti := k.indexOf(from), k.indexOf(to)
	if fi < 0 || ti < 0 {
		return false
	}
	if ti < fi {
		return true // reopen
	}
	return ti == fi+1
}

// Transitions returns the declared adjacency table: every stage mapped to
// its legal destinations, in board order.
func (k Kind) Transitions() map[Stage][]Stage {
	table := make(map[Stage][]Stage)
	for _, from := range k.Stages() {
		var dests []Stage
		for _, to := range k.Stages() {
			if k.Allowed(from, to) {
				dests = append(dests, to)
			}
		}
		table[from] = dests
	}
	return table
}
