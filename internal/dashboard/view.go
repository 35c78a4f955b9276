package dashboard

import (
	"context"

	"github.com/ridetracker/ridetracker/internal/rides"
)

// Text the dashboard shows to its user. The ride API speaks Brazilian
// Portuguese, so does the page.
const (
	StatError      = "Erro"
	EmptyHistory   = "Nenhuma corrida registrada ainda."
	HistoryError   = "Erro ao carregar histórico."
	MissingText    = "N/A"
	MissingPayment = "Não informado"

	MsgAdding       = "Adicionando..."
	MsgAdded        = "Corrida adicionada com sucesso!"
	MsgUnknownError = "Erro desconhecido."
	MsgInvalidValue = "Valor inválido."

	ConfirmDelete     = "Tem certeza que deseja excluir esta corrida? A ação não pode ser desfeita."
	AlertDeleteFailed = "Não foi possível excluir a corrida."
	AlertSaveFailed   = "Não foi possível salvar as alterações."
)

// View is the set of display slots the controller writes into. A View is
// bound to the controller once, at construction.
type View interface {
	SetStats(StatsSlots)
	SetHistory(History)
	SetMessage(Message)
	ResetAddForm()
	OpenEditModal(EditForm)
	CloseEditModal()
	// RenderedRow reads back what is currently displayed for a ride.
	RenderedRow(id rides.ID) (Row, bool)
	// Alert shows a blocking error notice.
	Alert(text string)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, question string) bool
}

// StatsSlots holds the four formatted statistics.
type StatsSlots struct {
	TotalSpent string
	RideCount  string
	Average    string
	MonthTotal string
}

// Row is one rendered history entry. Edit and delete controls are keyed
// by ID.
type Row struct {
	ID       rides.ID
	Platform string
	Date     string
	Path     string
	Payment  string
	Value    string
}

// History is the content of the history container: either rows or a
// placeholder.
type History struct {
	Rows        []Row
	Placeholder string
	Failed      bool
}

type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageSuccess
	MessageError
)

func (k MessageKind) String() string {
	switch k {
	case MessageSuccess:
		return "success"
	case MessageError:
		return "error"
	default:
		return ""
	}
}

// Message is the transient status line under the add form. The zero
// value is the cleared state.
type Message struct {
	Text string
	Kind MessageKind
}

// AddForm carries the add form fields as typed by the user.
type AddForm struct {
	Platform string
	Value    string
	Date     string
}

// EditForm carries the edit modal fields. ID is the hidden field set when
// the modal opens.
type EditForm struct {
	ID            rides.ID
	Platform      string
	Value         string
	PaymentMethod string
}
