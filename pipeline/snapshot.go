package pipeline

// Column groups the cards currently in one stage. Count is derived from the
// cards, never authoritative on its own.
type Column struct {
	Key   Stage
	Label string
	Count int
}

// Badges carries the presentation-only flags the server computes per card.
type Badges struct {
	MustHaveOk   bool
	Availability string
	CultureMatch string
}

// Card is the client-side view of one application or job on the board. The
// server owns CurrentStage; this copy is authoritative only as of the last
// fetch.
type Card struct {
	ID           string
	CurrentStage Stage
	Name         string
	City         string
	Score        int
	Badges       Badges
	UpdatedAt    string
}

// Snapshot is the board state as of the last load: columns plus cards.
// Mutations go through MoveCard, which returns a new Snapshot and leaves the
// receiver untouched, so a failed transition can simply drop the patched copy.
type Snapshot struct {
	Kind    Kind
	Title   string
	Client  string
	Columns []Column
	Cards   []Card
}

// FindCard returns the card with the given id, or nil.
func (s *Snapshot) FindCard(id string) *Card {
	for i := range s.Cards {
		if s.Cards[i].ID == id {
			return &s.Cards[i]
		}
	}
	return nil
}

// CardsIn returns the cards currently assigned to a stage, in board order.
func (s *Snapshot) CardsIn(stage Stage) []Card {
	var out []Card
	for _, c := range s.Cards {
		if c.CurrentStage == stage {
			out = append(out, c)
		}
	}
	return out
}

// MoveCard reassigns a card to another stage and adjusts the two affected
// column counts, returning the patched copy. The receiver is returned
// unchanged when the card is unknown or already in the destination stage.
// Purely local; the network is someone else's problem.
func (s *Snapshot) MoveCard(id string, to Stage) *Snapshot {
	card := s.FindCard(id)
	if card == nil || card.CurrentStage == to {
		return s
	}
	from := card.CurrentStage

	next := &Snapshot{
		Kind:    s.Kind,
		Title:   s.Title,
		Client:  s.Client,
		Columns: append([]Column(nil), s.Columns...),
		Cards:   append([]Card(nil), s.Cards...),
	}
	for i := range next.Cards {
		if next.Cards[i].ID == id {
			next.Cards[i].CurrentStage = to
		}
	}
	for i := range next.Columns {
		switch next.Columns[i].Key {
		case from:
			next.Columns[i].Count--
		case to:
			next.Columns[i].Count++
		}
	}
	return next
}

// RecountColumns rebuilds every column count from the cards. Load paths use
// it so the invariant sum(counts) == len(cards) never depends on the server
// having counted correctly.
func (s *Snapshot) RecountColumns() {
	counts := make(map[Stage]int)
	for _, c := range s.Cards {
		counts[c.CurrentStage]++
	}
	for i := range s.Columns {
		s.Columns[i].Count = counts[s.Columns[i].Key]
	}
}

// TotalCount returns the sum of all column counts.
func (s *Snapshot) TotalCount() int {
	total := 0
	for _, col := range s.Columns {
		total += col.Count
	}
	return total
}
