package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rafael/talentboard/api"
	"github.com/rafael/talentboard/config"
	"github.com/rafael/talentboard/journal"
	"github.com/rafael/talentboard/pipeline"
	"github.com/rafael/talentboard/tui/activity"
	"github.com/rafael/talentboard/tui/board"
	"github.com/rafael/talentboard/tui/filtermodal"
	"github.com/rafael/talentboard/tui/help"
	"github.com/rafael/talentboard/tui/historymodal"
	"github.com/rafael/talentboard/tui/notemodal"
	"github.com/rafael/talentboard/tui/resultmodal"
	"github.com/rafael/talentboard/tui/shared"
)

type ActiveView int

const (
	BoardView ActiveView = iota
	NoteModalView
	HistoryModalView
	ResultModalView
	FilterModalView
)

// Deps wires the app to the outside world. AppBoard is set for application
// pipelines, JobBoard for the jobs kanban; exactly one of the two.
type Deps struct {
	Engine     *pipeline.Engine
	Client     *api.Client
	AppBoard   *api.ApplicationBoard
	JobBoard   *api.JobBoard
	Journal    *journal.DB // nil disables the activity pane
	Readonly   bool
	ConfigPath string // "" disables persisting applied filters
}

type App struct {
	cfg  config.Config
	deps Deps

	activeView   ActiveView
	showHelp     bool
	showActivity bool

	board        board.Model
	noteModal    notemodal.Model
	historyModal historymodal.Model
	resultModal  resultmodal.Model
	filterModal  filtermodal.Model
	helpView     help.Model
	activityPane activity.Model
	spin         spinner.Model

	loading  bool
	loadErr  error
	feedback shared.Feedback

	width  int
	height int
}

func NewApp(cfg config.Config, deps Deps) App {
	shared.InitStyles(cfg.ResolvedTheme())

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = shared.SpinnerStyle

	a := App{
		cfg:          cfg,
		deps:         deps,
		board:        board.New(cfg.ResolvedColumnWidth(), deps.Engine.Pending),
		noteModal:    notemodal.New(),
		historyModal: historymodal.New(),
		resultModal:  resultmodal.New(),
		filterModal:  filtermodal.New(),
		helpView:     help.New(),
		activityPane: activity.New(),
		spin:         sp,
		loading:      true,
	}
	if deps.Journal != nil {
		a.showActivity = cfg.ResolvedShowActivity()
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{loadBoardCmd(a.deps.Engine), a.spin.Tick}
	if a.deps.Journal != nil {
		cmds = append(cmds, refreshActivityCmd(a.deps.Journal))
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layoutSizes()
		a.helpView.SetSize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		a.board.SetSpinnerView(a.spin.View())
		return a, cmd

	case shared.BoardLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		a.loadErr = nil
		a.board.SetSnapshot(msg.Snapshot)
		a.layoutSizes()
		return a, nil

	case shared.MoveResolvedMsg:
		return a.handleMoveResolved(msg.Outcome)

	case shared.HistoryFetchedMsg:
		if msg.Err != nil {
			return a, feedbackCmd(shared.FeedbackError, "Erro ao carregar histórico: "+msg.Err.Error())
		}
		a.historyModal.SetEntries(msg.CardName, msg.Entries)
		a.activeView = HistoryModalView
		return a, nil

	case shared.ResultRecordedMsg:
		a.activeView = BoardView
		if msg.Err != nil {
			return a, tea.Batch(
				feedbackCmd(shared.FeedbackError, userReason(msg.Err, "Erro ao registrar resultado")),
				a.reload(),
			)
		}
		return a, tea.Batch(
			feedbackCmd(shared.FeedbackSuccess, "Resultado registrado: "+msg.Result),
			a.reload(),
		)

	case shared.ActivityRefreshedMsg:
		if msg.Err == nil {
			a.activityPane.SetEntries(msg.Entries)
		}
		return a, nil

	case shared.MoveRecordedMsg:
		// Journal writes are best-effort; a failure only costs the
		// activity pane an entry.
		return a, nil

	case shared.FeedbackMsg:
		a.feedback = msg.Feedback
		ttl := shared.FeedbackTTL(msg.Feedback.Level)
		ts := msg.Feedback.Timestamp
		return a, tea.Tick(ttl, func(time.Time) tea.Msg {
			return shared.DismissFeedbackMsg{Timestamp: ts}
		})

	case shared.DismissFeedbackMsg:
		if a.feedback.Timestamp.Equal(msg.Timestamp) {
			a.feedback = shared.Feedback{}
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Route remaining messages to the active modal's text input.
	switch a.activeView {
	case NoteModalView:
		var cmd tea.Cmd
		a.noteModal, cmd = a.noteModal.Update(msg)
		return a, cmd
	case ResultModalView:
		var cmd tea.Cmd
		a.resultModal, cmd = a.resultModal.Update(msg)
		return a, cmd
	case FilterModalView:
		var cmd tea.Cmd
		a.filterModal, cmd = a.filterModal.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help toggle is global
	if key.Matches(msg, shared.Keys.Help) && a.activeView == BoardView {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeView {
	case BoardView:
		return a.handleBoardKey(msg)
	case NoteModalView:
		return a.handleNoteModalKey(msg)
	case HistoryModalView:
		if a.historyModal.HandleKey(msg) {
			a.activeView = BoardView
		}
		return a, nil
	case ResultModalView:
		return a.handleResultModalKey(msg)
	case FilterModalView:
		return a.handleFilterModalKey(msg)
	}

	return a, nil
}

func (a App) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, shared.Keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, shared.Keys.Reload):
		return a, a.reload()

	case key.Matches(msg, shared.Keys.ToggleActivity):
		if a.deps.Journal == nil {
			return a, nil
		}
		a.showActivity = !a.showActivity
		a.layoutSizes()
		if a.showActivity {
			return a, refreshActivityCmd(a.deps.Journal)
		}
		return a, nil

	case key.Matches(msg, shared.Keys.Left):
		a.board.MoveLeft()
		return a, nil

	case key.Matches(msg, shared.Keys.Right):
		a.board.MoveRight()
		return a, nil

	case key.Matches(msg, shared.Keys.Up):
		a.board.MoveUp()
		return a, nil

	case key.Matches(msg, shared.Keys.Down):
		a.board.MoveDown()
		return a, nil

	case key.Matches(msg, shared.Keys.Escape):
		a.board.CancelGrab()
		return a, nil

	case key.Matches(msg, shared.Keys.Grab):
		if cmd, blocked := a.guardMutation(); blocked {
			return a, cmd
		}
		a.board.Grab()
		return a, nil

	case key.Matches(msg, shared.Keys.Drop):
		if !a.board.Grabbed() {
			// enter on an idle board grabs, matching how a pointer drag
			// starts on press.
			if cmd, blocked := a.guardMutation(); blocked {
				return a, cmd
			}
			a.board.Grab()
			return a, nil
		}
		cardID, to, ok := a.board.Drop()
		if !ok {
			return a, nil
		}
		if to == pipeline.StageRejected {
			return a.openNoteModal(cardID, to)
		}
		return a.startMove(cardID, to, "")

	case key.Matches(msg, shared.Keys.Advance):
		if cmd, blocked := a.guardMutation(); blocked {
			return a, cmd
		}
		card, ok := a.board.SelectedCard()
		if !ok {
			return a, nil
		}
		next, err := a.deps.Engine.NextStage(a.board.Snapshot(), card.ID)
		if errors.Is(err, pipeline.ErrAlreadyFinal) {
			return a, feedbackCmd(shared.FeedbackInfo, "Já está na fase final")
		}
		if err != nil {
			return a, feedbackCmd(shared.FeedbackWarning, err.Error())
		}
		return a.startMove(card.ID, next, "")

	case key.Matches(msg, shared.Keys.Reject):
		if a.deps.Engine.Kind() != pipeline.ApplicationPipeline {
			return a, nil
		}
		if cmd, blocked := a.guardMutation(); blocked {
			return a, cmd
		}
		card, ok := a.board.SelectedCard()
		if !ok {
			return a, nil
		}
		return a.openNoteModal(card.ID, pipeline.StageRejected)

	case key.Matches(msg, shared.Keys.Withdraw):
		if a.deps.Engine.Kind() != pipeline.ApplicationPipeline {
			return a, nil
		}
		if cmd, blocked := a.guardMutation(); blocked {
			return a, cmd
		}
		card, ok := a.board.SelectedCard()
		if !ok {
			return a, nil
		}
		return a.startMove(card.ID, pipeline.StageWithdrawn, "")

	case key.Matches(msg, shared.Keys.HiringResult):
		if a.deps.JobBoard == nil {
			return a, nil
		}
		if cmd, blocked := a.guardMutation(); blocked {
			return a, cmd
		}
		card, ok := a.board.SelectedCard()
		if !ok {
			return a, nil
		}
		if card.CurrentStage != pipeline.StageContratacao {
			return a, feedbackCmd(shared.FeedbackWarning,
				"A vaga precisa estar em Contratação para registrar o resultado")
		}
		a.resultModal.Open(card.ID, card.Name)
		a.activeView = ResultModalView
		return a, nil

	case key.Matches(msg, shared.Keys.History):
		card, ok := a.board.SelectedCard()
		if !ok {
			return a, nil
		}
		return a, fetchHistoryCmd(a.deps, card.ID, card.Name)

	case key.Matches(msg, shared.Keys.Filters):
		if a.deps.AppBoard == nil {
			return a, nil
		}
		a.filterModal.Open(a.deps.AppBoard.Filters())
		a.activeView = FilterModalView
		return a, nil
	}

	return a, nil
}

// guardMutation blocks every stage-changing action in readonly mode.
func (a App) guardMutation() (tea.Cmd, bool) {
	if a.deps.Readonly {
		return feedbackCmd(shared.FeedbackInfo, "Modo somente leitura"), true
	}
	return nil, false
}

func (a App) handleNoteModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result := a.noteModal.HandleKey(msg)
	switch result.Action {
	case notemodal.ActionCancel:
		// Aborted before any mutation or network call.
		a.activeView = BoardView
		return a, nil
	case notemodal.ActionSubmit:
		a.activeView = BoardView
		return a.startMove(a.noteModal.CardID(), a.noteModal.ToStage(), result.Note)
	}
	var cmd tea.Cmd
	a.noteModal, cmd = a.noteModal.Update(msg)
	return a, cmd
}

func (a App) handleResultModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result := a.resultModal.HandleKey(msg)
	switch result.Action {
	case resultmodal.ActionCancel:
		a.activeView = BoardView
		return a, nil
	case resultmodal.ActionSubmit:
		return a, hiringResultCmd(a.deps.JobBoard, a.resultModal.JobID(), result.Result, result.Notes)
	}
	var cmd tea.Cmd
	a.resultModal, cmd = a.resultModal.Update(msg)
	return a, cmd
}

func (a App) handleFilterModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result := a.filterModal.HandleKey(msg)
	switch result.Action {
	case filtermodal.ActionCancel:
		a.activeView = BoardView
		return a, nil
	case filtermodal.ActionApply:
		a.deps.AppBoard.SetFilters(result.Filters)
		a.activeView = BoardView
		cmds := []tea.Cmd{a.reload()}
		if a.deps.ConfigPath != "" {
			a.cfg.Filters = config.FilterConfig{
				City:        result.Filters.City,
				MinScore:    result.Filters.MinScore,
				HasMustHave: result.Filters.HasMustHave,
			}
			cmds = append(cmds, saveFiltersCmd(a.deps.ConfigPath, a.cfg))
		}
		return a, tea.Batch(cmds...)
	}
	var cmd tea.Cmd
	a.filterModal, cmd = a.filterModal.Update(msg)
	return a, cmd
}

func (a App) openNoteModal(cardID string, to pipeline.Stage) (tea.Model, tea.Cmd) {
	card := a.board.Snapshot().FindCard(cardID)
	if card == nil {
		return a, nil
	}
	a.noteModal.Open(cardID, card.Name, to)
	a.activeView = NoteModalView
	return a, nil
}

// startMove runs the engine guards, applies the optimistic patch to the
// board and schedules the remote resolve.
func (a App) startMove(cardID string, to pipeline.Stage, note string) (tea.Model, tea.Cmd) {
	snap := a.board.Snapshot()
	opt, move, err := a.deps.Engine.Begin(snap, cardID, to, note)
	switch {
	case errors.Is(err, pipeline.ErrNoteRequired):
		return a.openNoteModal(cardID, to)
	case errors.Is(err, pipeline.ErrAlreadyPending):
		return a, feedbackCmd(shared.FeedbackWarning, "Aguarde: a mudança anterior ainda está sendo salva")
	case errors.Is(err, pipeline.ErrNotAllowed):
		return a, feedbackCmd(shared.FeedbackWarning, err.Error())
	case err != nil:
		return a, feedbackCmd(shared.FeedbackWarning, err.Error())
	}
	if move == nil {
		return a, nil // dropped on the same column
	}
	a.board.SetSnapshot(opt)
	return a, tea.Batch(resolveMoveCmd(a.deps.Engine, move), a.spin.Tick)
}

func (a App) handleMoveResolved(out pipeline.Outcome) (tea.Model, tea.Cmd) {
	if out.Snapshot != nil {
		a.board.SetSnapshot(out.Snapshot)
	}
	if out.LoadErr != nil {
		// Reconciliation reload failed; surface the error view with retry
		// rather than keeping an unverifiable board on screen.
		a.loadErr = out.LoadErr
	}

	switch out.Kind {
	case pipeline.Confirmed:
		cmds := []tea.Cmd{feedbackCmd(shared.FeedbackSuccess,
			fmt.Sprintf("%s → %s", out.Move.CardName, out.Move.To.Label()))}
		if a.deps.Journal != nil {
			cmds = append(cmds, recordMoveCmd(a.deps.Journal, a.deps.Engine.Kind(), out.Move))
			cmds = append(cmds, refreshActivityCmd(a.deps.Journal))
		}
		return a, tea.Batch(cmds...)
	default:
		return a, feedbackCmd(shared.FeedbackError, out.Reason)
	}
}

func (a *App) reload() tea.Cmd {
	a.loading = true
	a.loadErr = nil
	return tea.Batch(loadBoardCmd(a.deps.Engine), a.spin.Tick)
}

func (a App) View() string {
	if a.showHelp {
		return a.helpView.View()
	}

	if a.loadErr != nil {
		content := shared.ErrorStyle.Render("Erro ao carregar o pipeline") + "\n\n" +
			shared.HelpDescStyle.Render(a.loadErr.Error()) + "\n\n" +
			shared.HelpDescStyle.Render("R: tentar novamente  q: sair")
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
	}

	if a.loading && a.board.Snapshot() == nil {
		content := a.spin.View() + " Carregando pipeline..."
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
	}

	contentH := a.height - 1 // reserve 1 for status bar
	if contentH < 1 {
		contentH = 1
	}

	boardView := a.board.View()
	if a.showActivity {
		boardW := a.width - a.activityWidth()
		boardView = lipgloss.NewStyle().Width(boardW).Height(contentH).MaxHeight(contentH).Render(boardView)
		boardView = lipgloss.JoinHorizontal(lipgloss.Top, boardView, a.activityPane.View())
	}
	view := lipgloss.NewStyle().Height(contentH).MaxHeight(contentH).Render(boardView)
	view += a.renderStatusBar()

	switch a.activeView {
	case NoteModalView:
		return a.noteModal.ViewOverlay(a.width, a.height)
	case HistoryModalView:
		return a.historyModal.ViewOverlay(a.width, a.height)
	case ResultModalView:
		return a.resultModal.ViewOverlay(a.width, a.height)
	case FilterModalView:
		return a.filterModal.ViewOverlay(a.width, a.height)
	}
	return view
}

func (a *App) layoutSizes() {
	contentH := a.height - 1
	if contentH < 3 {
		contentH = 3
	}
	if a.showActivity {
		aw := a.activityWidth()
		a.board.SetSize(a.width-aw, contentH)
		a.activityPane.SetSize(aw-2, contentH)
	} else {
		a.board.SetSize(a.width, contentH)
	}
}

func (a App) activityWidth() int {
	w := a.width / 4
	if w < 24 {
		w = 24
	}
	return w
}

func (a App) renderStatusBar() string {
	snap := a.board.Snapshot()
	parts := []string{"Talentboard"}
	if snap != nil && snap.Title != "" {
		parts = []string{snap.Title}
		if snap.Client != "" {
			parts = append(parts, snap.Client)
		}
	}
	if a.deps.AppBoard != nil {
		if f := a.deps.AppBoard.Filters(); f != (api.Filters{}) {
			parts = append(parts, "filtros ativos")
		}
	}
	if a.deps.Readonly {
		parts = append(parts, "somente leitura")
	}
	if a.loading {
		parts = append(parts, a.spin.View()+" atualizando")
	}

	status := ""
	for i, p := range parts {
		if i > 0 {
			status += " │ "
		}
		status += p
	}
	if a.feedback.Message != "" {
		status += " │ " + feedbackStyle(a.feedback.Level).Render(a.feedback.Message)
	}
	status += " │ ? for help"

	return "\n" + shared.StatusBarStyle.Width(a.width).Render(status)
}

func feedbackStyle(level shared.FeedbackLevel) lipgloss.Style {
	switch level {
	case shared.FeedbackSuccess:
		return shared.FeedbackSuccessStyle
	case shared.FeedbackWarning:
		return shared.FeedbackWarningStyle
	case shared.FeedbackError:
		return shared.FeedbackErrorStyle
	default:
		return shared.FeedbackInfoStyle
	}
}

// userReason prefers the server's detail over the raw error text.
func userReason(err error, fallback string) string {
	var rej interface{ UserDetail() string }
	if errors.As(err, &rej) && rej.UserDetail() != "" {
		return rej.UserDetail()
	}
	return fallback + ": " + err.Error()
}

// --- Commands ---

func loadBoardCmd(engine *pipeline.Engine) tea.Cmd {
	return func() tea.Msg {
		snap, err := engine.Load(context.Background())
		return shared.BoardLoadedMsg{Snapshot: snap, Err: err}
	}
}

func resolveMoveCmd(engine *pipeline.Engine, move *pipeline.Move) tea.Cmd {
	return func() tea.Msg {
		return shared.MoveResolvedMsg{Outcome: engine.Resolve(context.Background(), move)}
	}
}

func fetchHistoryCmd(deps Deps, cardID, cardName string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var entries []api.HistoryEntry
		var err error
		if deps.JobBoard != nil {
			entries, err = deps.Client.JobHistory(ctx, cardID)
		} else {
			entries, err = deps.Client.ApplicationHistory(ctx, cardID)
		}
		return shared.HistoryFetchedMsg{CardID: cardID, CardName: cardName, Entries: entries, Err: err}
	}
}

func hiringResultCmd(board *api.JobBoard, jobID, result, notes string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := board.HiringResult(ctx, jobID, result, notes)
		return shared.ResultRecordedMsg{JobID: jobID, Result: result, Err: err}
	}
}

func recordMoveCmd(db *journal.DB, kind pipeline.Kind, move pipeline.Move) tea.Cmd {
	return func() tea.Msg {
		err := db.Record(journal.Entry{
			Board:     kind.String(),
			CardID:    move.CardID,
			CardName:  move.CardName,
			FromStage: string(move.From),
			ToStage:   string(move.To),
			Note:      move.Note,
		})
		return shared.MoveRecordedMsg{Err: err}
	}
}

func saveFiltersCmd(path string, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		if err := config.Save(path, cfg); err != nil {
			return shared.FeedbackMsg{Feedback: shared.Feedback{
				Level:     shared.FeedbackWarning,
				Message:   "Não foi possível salvar os filtros: " + err.Error(),
				Timestamp: time.Now(),
			}}
		}
		return nil
	}
}

func refreshActivityCmd(db *journal.DB) tea.Cmd {
	return func() tea.Msg {
		entries, err := db.Recent(50)
		return shared.ActivityRefreshedMsg{Entries: entries, Err: err}
	}
}

func feedbackCmd(level shared.FeedbackLevel, message string) tea.Cmd {
	return func() tea.Msg {
		return shared.FeedbackMsg{Feedback: shared.Feedback{
			Level:     level,
			Message:   message,
			Timestamp: time.Now(),
		}}
	}
}
