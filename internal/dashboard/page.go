package dashboard

import (
	"sync"

	"github.com/ridetracker/ridetracker/internal/rides"
)

const loadingText = "..."

// Page is an in-memory View. The terminal and web front ends render from
// its snapshots.
type Page struct {
	mu        sync.Mutex
	stats     StatsSlots
	history   History
	message   Message
	addForm   AddForm
	edit      EditForm
	modalOpen bool
	alerts    []string
}

// PageState is a point-in-time copy of a Page.
type PageState struct {
	Stats     StatsSlots
	History   History
	Message   Message
	AddForm   AddForm
	Edit      EditForm
	ModalOpen bool
	Alerts    []string
}

// NewPage returns a page whose slots show the loading marker.
func NewPage() *Page {
	return &Page{
		stats: StatsSlots{
			TotalSpent: loadingText,
			RideCount:  loadingText,
			Average:    loadingText,
			MonthTotal: loadingText,
		},
	}
}

func (p *Page) SetStats(s StatsSlots) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats = s
}

func (p *Page) SetHistory(h History) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = h
}

func (p *Page) SetMessage(m Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = m
}

// FillAddForm records what the user typed, so a failed submit keeps it.
func (p *Page) FillAddForm(f AddForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.addForm = f
}

func (p *Page) ResetAddForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.addForm = AddForm{}
}

func (p *Page) OpenEditModal(f EditForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.edit = f
	p.modalOpen = true
}

func (p *Page) CloseEditModal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modalOpen = false
}

func (p *Page) RenderedRow(id rides.ID) (Row, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range p.history.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

func (p *Page) Alert(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, text)
}

// Snapshot copies the page. Pending alerts are handed over and cleared.
func (p *Page) Snapshot() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()

	h := p.history
	h.Rows = append([]Row(nil), p.history.Rows...)

	st := PageState{
		Stats:     p.stats,
		History:   h,
		Message:   p.message,
		AddForm:   p.addForm,
		Edit:      p.edit,
		ModalOpen: p.modalOpen,
		Alerts:    p.alerts,
	}
	p.alerts = nil
	return st
}
