package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/ridetracker/ridetracker/internal/dashboard"
	"github.com/ridetracker/ridetracker/internal/rides"
)

// FormConfirmer approves a delete only when the request carried the
// confirmation dialog's "sim" answer.
type FormConfirmer struct{}

func (FormConfirmer) Confirm(ctx context.Context, question string) bool {
	ok, _ := ctx.Value(ctxConfirmed).(bool)
	return ok
}

func withConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, ctxConfirmed, confirmed)
}

// handleIndex is the page load: both reads are issued and the page
// rendered once they finish.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Load(r.Context())
	s.render(w, r, http.StatusOK, nil)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := dashboard.AddForm{
		Platform: r.PostFormValue("plataforma"),
		Value:    r.PostFormValue("valor"),
		Date:     r.PostFormValue("data"),
	}
	s.page.FillAddForm(form)

	// The outcome is on the page's status message.
	_ = s.ctrl.Create(r.Context(), form)
	s.render(w, r, http.StatusOK, nil)
}

func (s *Server) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, &confirmDialog{
		ID:       r.PathValue("id"),
		Question: dashboard.ConfirmDelete,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := rides.ID(r.PathValue("id"))
	confirmed := r.PostFormValue("confirmar") == "sim"

	// Failures are alerted on the page.
	_, _ = s.ctrl.Delete(withConfirmation(r.Context(), confirmed), id)
	s.render(w, r, http.StatusOK, nil)
}

func (s *Server) handleOpenEdit(w http.ResponseWriter, r *http.Request) {
	id := rides.ID(r.PathValue("id"))

	if err := s.ctrl.OpenEdit(id); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, dashboard.ErrUnknownRide) {
			status = http.StatusNotFound
		}
		s.render(w, r, status, nil)
		return
	}
	s.render(w, r, http.StatusOK, nil)
}

func (s *Server) handleSaveEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := dashboard.EditForm{
		ID:            rides.ID(r.PostFormValue("edit-id")),
		Platform:      r.PostFormValue("edit-plataforma"),
		Value:         r.PostFormValue("edit-valor"),
		PaymentMethod: r.PostFormValue("edit-forma-pagamento"),
	}
	if form.ID == "" {
		http.Error(w, "missing ride id", http.StatusBadRequest)
		return
	}

	_ = s.ctrl.SaveEdit(r.Context(), form)
	s.render(w, r, http.StatusOK, nil)
}

func (s *Server) handleCloseEdit(w http.ResponseWriter, r *http.Request) {
	s.ctrl.CloseEdit()
	s.render(w, r, http.StatusOK, nil)
}
