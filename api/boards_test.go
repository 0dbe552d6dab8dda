package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rafael/talentboard/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipelinePayload = `{
	"job": {"jobId": "j1", "title": "Dev Backend Sênior", "clientName": "Acme", "status": "aberta"},
	"columns": [
		{"key": "submitted", "label": "Coleta de Dados", "count": 7},
		{"key": "screening", "label": "Triagem", "count": 0}
	],
	"cards": [
		{
			"applicationId": "a1",
			"candidateName": "Ana Lima",
			"candidateCity": "Recife",
			"scoreTotal": 82,
			"badges": {"mustHaveOk": true, "availability": "imediata", "cultureMatch": "alta"},
			"currentStage": "submitted",
			"updatedAt": "2026-08-20T10:00:00Z"
		},
		{
			"applicationId": "a2",
			"candidateName": "Bruno Costa",
			"candidateCity": "São Paulo",
			"scoreTotal": 65,
			"badges": {"mustHaveOk": false, "availability": "30 dias", "cultureMatch": "média"},
			"currentStage": "screening",
			"updatedAt": "2026-08-21T09:30:00Z"
		}
	]
}`

func TestApplicationBoardLoad(t *testing.T) {
	var gotPath, gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(pipelinePayload))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok-123", time.Second)
	board := NewApplicationBoard(client, "j1", Filters{City: "Recife", MinScore: 70}, false)

	snap, err := board.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/applications/j1/pipeline", gotPath)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Contains(t, gotQuery, "city=Recife")
	assert.Contains(t, gotQuery, "min_score=70")

	assert.Equal(t, pipeline.ApplicationPipeline, snap.Kind)
	assert.Equal(t, "Dev Backend Sênior", snap.Title)
	assert.Equal(t, "Acme", snap.Client)
	require.Len(t, snap.Cards, 2)

	ana := snap.FindCard("a1")
	require.NotNil(t, ana)
	assert.Equal(t, pipeline.StageSubmitted, ana.CurrentStage)
	assert.Equal(t, 82, ana.Score)
	assert.True(t, ana.Badges.MustHaveOk)

	// Server counts are recomputed from the cards it actually sent.
	assert.Equal(t, 1, snap.Columns[0].Count)
	assert.Equal(t, 1, snap.Columns[1].Count)
}

func TestApplicationBoardLoadRejectsUnknownStage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"job": {}, "columns": [{"key": "mystery", "label": "?", "count": 0}], "cards": []}`))
	}))
	defer srv.Close()

	board := NewApplicationBoard(NewClient(srv.URL, "", time.Second), "j1", Filters{}, false)
	_, err := board.Load(context.Background())
	assert.ErrorContains(t, err, "mystery")
}

func TestApplicationBoardMoveSendsNote(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	board := NewApplicationBoard(NewClient(srv.URL, "", time.Second), "j1", Filters{}, false)
	err := board.Move(context.Background(), "a1", pipeline.StageRejected, "perfil fora do escopo")
	require.NoError(t, err)

	assert.Equal(t, "POST /applications/a1/move", gotPath)
	assert.Equal(t, "rejected", gotBody["to_stage"])
	assert.Equal(t, "perfil fora do escopo", gotBody["note"])
}

func TestMoveSurfacesServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "Contratado só é permitido a partir de Oferta"}`))
	}))
	defer srv.Close()

	board := NewApplicationBoard(NewClient(srv.URL, "", time.Second), "j1", Filters{}, false)
	err := board.Move(context.Background(), "a1", pipeline.StageHired, "")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "Contratado só é permitido a partir de Oferta", apiErr.UserDetail())
}

func TestJobBoardLoadFlattensStagesMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"stages": {
				"cadastro": [{"id": "v1", "title": "Analista de Dados", "city": "Recife", "applications_count": 4}],
				"entrevistas": [
					{"id": "v2", "title": "Dev Frontend", "city": "São Paulo", "applications_count": 12},
					{"id": "v3", "title": "Tech Lead", "city": "Remoto", "applications_count": 3}
				]
			}
		}`))
	}))
	defer srv.Close()

	board := NewJobBoard(NewClient(srv.URL, "", time.Second))
	snap, err := board.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, pipeline.JobPipeline, snap.Kind)
	require.Len(t, snap.Columns, len(pipeline.JobPipeline.Stages()))
	require.Len(t, snap.Cards, 3)

	// Stages absent from the response still get empty columns.
	assert.Equal(t, pipeline.StageTriagem, snap.Columns[1].Key)
	assert.Equal(t, 0, snap.Columns[1].Count)
	assert.Equal(t, 2, snap.Columns[2].Count)

	v2 := snap.FindCard("v2")
	require.NotNil(t, v2)
	assert.Equal(t, pipeline.StageEntrevistas, v2.CurrentStage)
	assert.Equal(t, 12, v2.Score)
}

func TestJobBoardHiringResult(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	board := NewJobBoard(NewClient(srv.URL, "", time.Second))
	err := board.HiringResult(context.Background(), "v1", "positivo", "assinou a proposta")
	require.NoError(t, err)

	assert.Equal(t, "PATCH /jobs-kanban/v1/contratacao-result", gotPath)
	assert.Equal(t, "positivo", gotBody["result"])
	assert.Equal(t, "assinou a proposta", gotBody["notes"])
}

func TestHistoryEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/applications/a1/history":
			w.Write([]byte(`{"history": [
				{"from": "submitted", "to": "screening", "changedByName": "Rafa", "changedAt": "2026-08-20T10:00:00Z", "note": ""}
			]}`))
		case "/jobs-kanban/v1/stage-history":
			w.Write([]byte(`{"history": [
				{"from_stage": "triagem", "to_stage": "entrevistas", "changed_at": "2026-08-22T15:00:00Z", "notes": "ok", "changed_by_user": {"full_name": "Marina"}}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "não encontrado"}`))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)

	appHist, err := client.ApplicationHistory(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, appHist, 1)
	assert.Equal(t, HistoryEntry{From: "submitted", To: "screening", ChangedBy: "Rafa", ChangedAt: "2026-08-20T10:00:00Z"}, appHist[0])

	jobHist, err := client.JobHistory(context.Background(), "v1")
	require.NoError(t, err)
	require.Len(t, jobHist, 1)
	assert.Equal(t, HistoryEntry{From: "triagem", To: "entrevistas", ChangedBy: "Marina", ChangedAt: "2026-08-22T15:00:00Z", Note: "ok"}, jobHist[0])

	_, err = client.ApplicationHistory(context.Background(), "missing")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestFiltersQuery(t *testing.T) {
	testCases := []struct {
		name    string
		filters Filters
		want    string
	}{
		{name: "empty", filters: Filters{}, want: ""},
		{name: "city only", filters: Filters{City: "Recife"}, want: "city=Recife"},
		{name: "all set", filters: Filters{City: "Recife", MinScore: 70, HasMustHave: true}, want: "city=Recife&has_must_have=true&min_score=70"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filters.query().Encode())
		})
	}
}
