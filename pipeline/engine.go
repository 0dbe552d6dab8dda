package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Store is the network boundary the engine drives. Load fetches a fresh
// board snapshot; Move asks the server to reassign one card. The server is
// the sole arbiter of transition legality — Move failing is a normal outcome,
// not a bug.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Move(ctx context.Context, cardID string, to Stage, note string) error
}

// Guard errors returned by Begin/NextStage before anything is mutated or
// sent. The UI maps each one to a feedback message.
var (
	ErrUnknownCard    = errors.New("card not on this board")
	ErrNoteRequired   = errors.New("a rejection note is required")
	ErrAlreadyPending = errors.New("a move for this card is still being saved")
	ErrNotAllowed     = errors.New("transition not allowed from the current stage")
	ErrAlreadyFinal   = errors.New("already at the final stage")
)

// OutcomeKind classifies how a resolved transition ended.
type OutcomeKind int

const (
	// Confirmed: the server accepted the move; Snapshot is the post-move
	// reload (the server may have applied side effects beyond the stage
	// field, so the optimistic copy is always replaced).
	Confirmed OutcomeKind = iota
	// RolledBack: the server refused the move or the request failed; the
	// optimistic copy must be discarded in favour of Snapshot.
	RolledBack
)

// Outcome is the result of resolving one remote transition.
type Outcome struct {
	Kind     OutcomeKind
	Move     Move
	Snapshot *Snapshot // fresh server truth; nil only when LoadErr is set
	Reason   string    // user-facing explanation for RolledBack
	LoadErr  error     // reconciliation reload failure, if any
}

// Move is one in-flight stage transition.
type Move struct {
	CardID   string
	CardName string
	From     Stage
	To       Stage
	Note     string
}

// Engine coordinates optimistic stage changes: apply locally first, confirm
// remotely, reconcile by full reload on either result. At most one move per
// card may be in flight; a second request for the same card is rejected
// outright rather than queued.
type Engine struct {
	store   Store
	kind    Kind
	timeout time.Duration

	mu      sync.Mutex
	pending map[string]bool
}

// DefaultTimeout bounds a single resolve (move + reload). A hung request is
// treated as failed and rolled back rather than pinning the card forever.
const DefaultTimeout = 15 * time.Second

func NewEngine(store Store, kind Kind, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{
		store:   store,
		kind:    kind,
		timeout: timeout,
		pending: make(map[string]bool),
	}
}

// Kind returns the pipeline kind this engine operates on.
func (e *Engine) Kind() Kind { return e.kind }

// Load fetches a fresh snapshot outside of any transition (initial load,
// manual reload, filter changes).
func (e *Engine) Load(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.store.Load(ctx)
}

// Pending reports whether a move for the card is still resolving. The board
// disables interaction with pending cards until reconciliation completes.
func (e *Engine) Pending(cardID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending[cardID]
}

// Begin runs the guard checks and applies the optimistic patch. It returns
// the patched snapshot and the move to hand to Resolve. A nil move with a
// nil error means nothing needed doing (destination equals current stage).
// Begin never touches the network; on a guard error the snapshot comes back
// unchanged.
func (e *Engine) Begin(snap *Snapshot, cardID string, to Stage, note string) (*Snapshot, *Move, error) {
	if _, err := e.kind.ParseStage(string(to)); err != nil {
		return snap, nil, err
	}
	card := snap.FindCard(cardID)
	if card == nil {
		return snap, nil, ErrUnknownCard
	}
	if card.CurrentStage == to {
		return snap, nil, nil
	}
	if to == StageRejected && note == "" {
		return snap, nil, ErrNoteRequired
	}
	if !e.kind.Allowed(card.CurrentStage, to) {
		return snap, nil, fmt.Errorf("%w: %s → %s", ErrNotAllowed, card.CurrentStage.Label(), to.Label())
	}

	e.mu.Lock()
	if e.pending[cardID] {
		e.mu.Unlock()
		return snap, nil, ErrAlreadyPending
	}
	e.pending[cardID] = true
	e.mu.Unlock()

	move := &Move{
		CardID:   cardID,
		CardName: card.Name,
		From:     card.CurrentStage,
		To:       to,
		Note:     note,
	}
	return snap.MoveCard(cardID, to), move, nil
}

// Resolve sends the move and reconciles with a full reload regardless of the
// result. Safe to call from a separate goroutine; the pending flag for the
// card is cleared before returning. The reload gets its own deadline: a move
// that hangs until timeout must still be able to resync with the server.
func (e *Engine) Resolve(ctx context.Context, m *Move) Outcome {
	defer func() {
		e.mu.Lock()
		delete(e.pending, m.CardID)
		e.mu.Unlock()
	}()

	moveCtx, cancelMove := context.WithTimeout(ctx, e.timeout)
	err := e.store.Move(moveCtx, m.CardID, m.To, m.Note)
	cancelMove()

	loadCtx, cancelLoad := context.WithTimeout(ctx, e.timeout)
	defer cancelLoad()

	if err != nil {
		reason := "Não foi possível salvar a mudança, tente novamente"
		var rej interface{ UserDetail() string }
		if errors.As(err, &rej) && rej.UserDetail() != "" {
			// Server-side rejection: show its reason verbatim.
			reason = rej.UserDetail()
		}
		fresh, loadErr := e.store.Load(loadCtx)
		return Outcome{Kind: RolledBack, Move: *m, Snapshot: fresh, Reason: reason, LoadErr: loadErr}
	}

	fresh, loadErr := e.store.Load(loadCtx)
	return Outcome{Kind: Confirmed, Move: *m, Snapshot: fresh, LoadErr: loadErr}
}

// RequestTransition is Begin + Resolve in one call, for flows that have no
// interstitial step. The returned snapshot is the optimistic patch; the
// outcome's Snapshot is the reconciled server truth.
func (e *Engine) RequestTransition(ctx context.Context, snap *Snapshot, cardID string, to Stage, note string) (*Snapshot, Outcome, error) {
	opt, move, err := e.Begin(snap, cardID, to, note)
	if err != nil {
		return snap, Outcome{}, err
	}
	if move == nil {
		return opt, Outcome{Kind: Confirmed, Snapshot: opt}, nil
	}
	return opt, e.Resolve(ctx, move), nil
}

// NextStage computes the forward stage for an explicit advance action.
// Returns ErrAlreadyFinal at the pipeline's last stage or from a side state.
func (e *Engine) NextStage(snap *Snapshot, cardID string) (Stage, error) {
	card := snap.FindCard(cardID)
	if card == nil {
		return "", ErrUnknownCard
	}
	next, ok := e.kind.Next(card.CurrentStage)
	if !ok {
		return "", ErrAlreadyFinal
	}
	return next, nil
}
