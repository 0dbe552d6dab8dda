package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedApplicationPipeline(t *testing.T) {
	testCases := []struct {
		name    string
		from    Stage
		to      Stage
		allowed bool
	}{
		{name: "one step forward", from: StageSubmitted, to: StageScreening, allowed: true},
		{name: "skip a stage", from: StageSubmitted, to: StageRecruiterInterview, allowed: false},
		{name: "reopen to earlier stage", from: StageClientInterview, to: StageScreening, allowed: true},
		{name: "reject from any active stage", from: StageScreening, to: StageRejected, allowed: true},
		{name: "withdraw from any active stage", from: StageOffer, to: StageWithdrawn, allowed: true},
		{name: "hired only from offer", from: StageClientInterview, to: StageHired, allowed: false},
		{name: "offer to hired", from: StageOffer, to: StageHired, allowed: true},
		{name: "same stage is not a move", from: StageScreening, to: StageScreening, allowed: false},
		{name: "hired is absorbing", from: StageHired, to: StageOffer, allowed: false},
		{name: "rejected is absorbing", from: StageRejected, to: StageScreening, allowed: false},
		{name: "withdrawn is absorbing", from: StageWithdrawn, to: StageSubmitted, allowed: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, ApplicationPipeline.Allowed(tc.from, tc.to))
		})
	}
}

func TestAllowedJobPipeline(t *testing.T) {
	testCases := []struct {
		name    string
		from    Stage
		to      Stage
		allowed bool
	}{
		{name: "one step forward", from: StageCadastro, to: StageTriagem, allowed: true},
		{name: "skip a stage", from: StageCadastro, to: StageEntrevistas, allowed: false},
		{name: "reopen to earlier stage", from: StageSelecao, to: StageTriagem, allowed: true},
		{name: "contratacao is final", from: StageContratacao, to: StageEnvioCliente, allowed: false},
		{name: "no side states on jobs", from: StageTriagem, to: StageRejected, allowed: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, JobPipeline.Allowed(tc.from, tc.to))
		})
	}
}

func TestNext(t *testing.T) {
	next, ok := ApplicationPipeline.Next(StageOffer)
	require.True(t, ok)
	assert.Equal(t, StageHired, next)

	_, ok = ApplicationPipeline.Next(StageHired)
	assert.False(t, ok)

	_, ok = ApplicationPipeline.Next(StageRejected)
	assert.False(t, ok, "side states have no forward stage")

	_, ok = JobPipeline.Next(StageContratacao)
	assert.False(t, ok)
}

func TestParseStage(t *testing.T) {
	s, err := ApplicationPipeline.ParseStage("client_interview")
	require.NoError(t, err)
	assert.Equal(t, StageClientInterview, s)

	_, err = ApplicationPipeline.ParseStage("cadastro")
	assert.Error(t, err, "job stages are not valid on the application pipeline")

	_, err = JobPipeline.ParseStage("definitely-not-a-stage")
	assert.Error(t, err)
}

func TestTerminal(t *testing.T) {
	assert.True(t, ApplicationPipeline.Terminal(StageHired))
	assert.True(t, ApplicationPipeline.Terminal(StageRejected))
	assert.True(t, ApplicationPipeline.Terminal(StageWithdrawn))
	assert.False(t, ApplicationPipeline.Terminal(StageOffer))
	assert.True(t, JobPipeline.Terminal(StageContratacao))
	assert.False(t, JobPipeline.Terminal(StageCadastro))
}

func TestTransitionsMatchesAllowed(t *testing.T) {
	for _, kind := range []Kind{ApplicationPipeline, JobPipeline} {
		table := kind.Transitions()
		for _, from := range kind.Stages() {
			for _, to := range table[from] {
				assert.True(t, kind.Allowed(from, to),
					"%s: table lists %s → %s but Allowed refuses it", kind, from, to)
			}
			if kind.Terminal(from) {
				assert.Empty(t, table[from], "%s: terminal stage %s must have no destinations", kind, from)
			}
		}
	}
}

func TestLabelFallsBackToRawStage(t *testing.T) {
	assert.Equal(t, "Oferta", StageOffer.Label())
	assert.Equal(t, "mystery", Stage("mystery").Label())
}
