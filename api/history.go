package api

import (
	"context"
	"net/http"
)

// HistoryEntry is one stage change in a card's audit trail, newest first.
type HistoryEntry struct {
	From      string
	To        string
	ChangedBy string
	ChangedAt string
	Note      string
}

// ApplicationHistory fetches the stage history of one application.
func (c *Client) ApplicationHistory(ctx context.Context, applicationID string) ([]HistoryEntry, error) {
	var resp struct {
		History []struct {
			From          string `json:"from"`
			To            string `json:"to"`
			ChangedByName string `json:"changedByName"`
			ChangedAt     string `json:"changedAt"`
			Note          string `json:"note"`
		} `json:"history"`
	}
	if err := c.do(ctx, http.MethodGet, "/applications/"+applicationID+"/history", nil, nil, &resp); err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(resp.History))
	for _, h := range resp.History {
		entries = append(entries, HistoryEntry{
			From:      h.From,
			To:        h.To,
			ChangedBy: h.ChangedByName,
			ChangedAt: h.ChangedAt,
			Note:      h.Note,
		})
	}
	return entries, nil
}

// JobHistory fetches the stage history of one job posting.
func (c *Client) JobHistory(ctx context.Context, jobID string) ([]HistoryEntry, error) {
	var resp struct {
		History []struct {
			FromStage     string `json:"from_stage"`
			ToStage       string `json:"to_stage"`
			ChangedAt     string `json:"changed_at"`
			Notes         string `json:"notes"`
			ChangedByUser struct {
				FullName string `json:"full_name"`
			} `json:"changed_by_user"`
		} `json:"history"`
	}
	if err := c.do(ctx, http.MethodGet, "/jobs-kanban/"+jobID+"/stage-history", nil, nil, &resp); err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(resp.History))
	for _, h := range resp.History {
		entries = append(entries, HistoryEntry{
			From:      h.FromStage,
			To:        h.ToStage,
			ChangedBy: h.ChangedByUser.FullName,
			ChangedAt: h.ChangedAt,
			Note:      h.Notes,
		})
	}
	return entries, nil
}
