package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rafael/talentboard/pipeline"
)

// Filters narrows an application board fetch. Filtering happens server-side
// only, so column counts stay authoritative; the recognized options are
// enumerated here rather than passed as a free-form map.
type Filters struct {
	City        string
	MinScore    int
	HasMustHave bool
}

func (f Filters) query() url.Values {
	q := url.Values{}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.MinScore > 0 {
		q.Set("min_score", strconv.Itoa(f.MinScore))
	}
	if f.HasMustHave {
		q.Set("has_must_have", "true")
	}
	return q
}

// ApplicationBoard binds the client to one job's application pipeline. It
// implements pipeline.Store.
type ApplicationBoard struct {
	client   *Client
	jobID    string
	filters  Filters
	readonly bool
}

func NewApplicationBoard(client *Client, jobID string, filters Filters, readonly bool) *ApplicationBoard {
	return &ApplicationBoard{client: client, jobID: jobID, filters: filters, readonly: readonly}
}

// SetFilters replaces the filter set; takes effect on the next Load.
func (b *ApplicationBoard) SetFilters(f Filters) { b.filters = f }

// Filters returns the current filter set.
func (b *ApplicationBoard) Filters() Filters { return b.filters }

type applicationCard struct {
	ApplicationID string `json:"applicationId"`
	CandidateName string `json:"candidateName"`
	CandidateCity string `json:"candidateCity"`
	ScoreTotal    int    `json:"scoreTotal"`
	Badges        struct {
		MustHaveOk   bool   `json:"mustHaveOk"`
		Availability string `json:"availability"`
		CultureMatch string `json:"cultureMatch"`
	} `json:"badges"`
	CurrentStage string `json:"currentStage"`
	UpdatedAt    string `json:"updatedAt"`
}

type applicationPipelineResponse struct {
	Job struct {
		JobID      string `json:"jobId"`
		Title      string `json:"title"`
		ClientName string `json:"clientName"`
		Status     string `json:"status"`
	} `json:"job"`
	Columns []struct {
		Key   string `json:"key"`
		Label string `json:"label"`
		Count int    `json:"count"`
	} `json:"columns"`
	Cards []applicationCard `json:"cards"`
}

func (b *ApplicationBoard) Load(ctx context.Context) (*pipeline.Snapshot, error) {
	q := b.filters.query()
	if b.readonly {
		q.Set("readonly", "true")
	}

	var resp applicationPipelineResponse
	if err := b.client.do(ctx, http.MethodGet, "/applications/"+b.jobID+"/pipeline", q, nil, &resp); err != nil {
		return nil, err
	}

	snap := &pipeline.Snapshot{
		Kind:   pipeline.ApplicationPipeline,
		Title:  resp.Job.Title,
		Client: resp.Job.ClientName,
	}
	for _, col := range resp.Columns {
		key, err := pipeline.ApplicationPipeline.ParseStage(col.Key)
		if err != nil {
			return nil, err
		}
		snap.Columns = append(snap.Columns, pipeline.Column{Key: key, Label: col.Label, Count: col.Count})
	}
	for _, c := range resp.Cards {
		stage, err := pipeline.ApplicationPipeline.ParseStage(c.CurrentStage)
		if err != nil {
			return nil, err
		}
		snap.Cards = append(snap.Cards, pipeline.Card{
			ID:           c.ApplicationID,
			CurrentStage: stage,
			Name:         c.CandidateName,
			City:         c.CandidateCity,
			Score:        c.ScoreTotal,
			Badges: pipeline.Badges{
				MustHaveOk:   c.Badges.MustHaveOk,
				Availability: c.Badges.Availability,
				CultureMatch: c.Badges.CultureMatch,
			},
			UpdatedAt: c.UpdatedAt,
		})
	}
	snap.RecountColumns()
	return snap, nil
}

func (b *ApplicationBoard) Move(ctx context.Context, cardID string, to pipeline.Stage, note string) error {
	body := map[string]any{"to_stage": string(to)}
	if note != "" {
		body["note"] = note
	}
	return b.client.do(ctx, http.MethodPost, "/applications/"+cardID+"/move", nil, body, nil)
}

// JobBoard is the jobs kanban across all postings. The backend returns jobs
// grouped in a stages map; Load flattens that into the same Snapshot shape
// the application board uses.
type JobBoard struct {
	client *Client
}

func NewJobBoard(client *Client) *JobBoard {
	return &JobBoard{client: client}
}

type kanbanJob struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	City              string `json:"city"`
	ApplicationsCount int    `json:"applications_count"`
	UpdatedAt         string `json:"updated_at"`
}

func (b *JobBoard) Load(ctx context.Context) (*pipeline.Snapshot, error) {
	var resp struct {
		Stages map[string][]kanbanJob `json:"stages"`
	}
	if err := b.client.do(ctx, http.MethodGet, "/jobs-kanban/kanban", nil, nil, &resp); err != nil {
		return nil, err
	}

	snap := &pipeline.Snapshot{Kind: pipeline.JobPipeline, Title: "Vagas"}
	for _, stage := range pipeline.JobPipeline.Stages() {
		snap.Columns = append(snap.Columns, pipeline.Column{Key: stage, Label: stage.Label()})
		for _, job := range resp.Stages[string(stage)] {
			snap.Cards = append(snap.Cards, pipeline.Card{
				ID:           job.ID,
				CurrentStage: stage,
				Name:         job.Title,
				City:         job.City,
				Score:        job.ApplicationsCount,
				UpdatedAt:    job.UpdatedAt,
			})
		}
	}
	snap.RecountColumns()
	return snap, nil
}

func (b *JobBoard) Move(ctx context.Context, cardID string, to pipeline.Stage, note string) error {
	body := map[string]any{"to_stage": string(to)}
	if note != "" {
		body["notes"] = note
	}
	return b.client.do(ctx, http.MethodPatch, "/jobs-kanban/"+cardID+"/stage", nil, body, nil)
}

// HiringResult records the contratação outcome for a job in the final stage.
// A negative result sends the job back to entrevistas server-side.
func (b *JobBoard) HiringResult(ctx context.Context, jobID, result, notes string) error {
	body := map[string]any{"result": result}
	if notes != "" {
		body["notes"] = notes
	}
	return b.client.do(ctx, http.MethodPatch, "/jobs-kanban/"+jobID+"/contratacao-result", nil, body, nil)
}
