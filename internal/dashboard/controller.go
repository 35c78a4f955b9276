// Package dashboard drives the ride dashboard: it fetches statistics and
// ride history from the ride API, renders them into a View and runs the
// create, edit and delete flows. Every successful write re-fetches both
// reads; the view is never patched locally.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ridetracker/ridetracker/internal/money"
	"github.com/ridetracker/ridetracker/internal/rides"
)

var (
	// ErrRejected is returned when the API answers a create with neither
	// an id nor a duplicate notice.
	ErrRejected = errors.New("ride rejected by api")
	// ErrUnknownRide is returned when an edit targets a ride that is
	// neither retained nor rendered.
	ErrUnknownRide = errors.New("ride not on dashboard")
	// ErrInvalidValue is returned when a form value is not a number.
	ErrInvalidValue = errors.New("invalid ride value")
)

// API is the part of the ride tracking API the dashboard uses.
type API interface {
	DashboardStats(ctx context.Context) (*rides.Stats, error)
	ListRides(ctx context.Context) ([]rides.Ride, error)
	CreateRide(ctx context.Context, req rides.CreateRequest) (*rides.Result, error)
	UpdateRide(ctx context.Context, id rides.ID, req rides.UpdateRequest) (*rides.Result, error)
	DeleteRide(ctx context.Context, id rides.ID) (*rides.Result, error)
}

// Options tunes a Controller.
type Options struct {
	MessageDelay time.Duration
	Logger       *zap.Logger
}

// Controller is the dashboard. It is safe for concurrent use.
type Controller struct {
	api     API
	view    View
	confirm Confirmer
	money   *money.Formatter
	log     *zap.Logger
	status  *statusMessage

	mu      sync.Mutex
	records map[rides.ID]rides.Ride
}

// New binds a controller to its collaborators.
func New(api API, view View, confirm Confirmer, f *money.Formatter, opts Options) *Controller {
	if opts.MessageDelay <= 0 {
		opts.MessageDelay = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		api:     api,
		view:    view,
		confirm: confirm,
		money:   f,
		log:     opts.Logger,
		status:  newStatusMessage(view, opts.MessageDelay),
	}
}

// Close cancels the pending status message clear.
func (c *Controller) Close() {
	c.status.stop()
}

// Load fetches statistics and history concurrently and renders both.
// Failures are rendered as placeholders and logged, never returned.
func (c *Controller) Load(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.RefreshStats(ctx)
	}()
	go func() {
		defer wg.Done()
		c.RefreshHistory(ctx)
	}()
	wg.Wait()
}

// RefreshStats fetches and renders the statistics.
func (c *Controller) RefreshStats(ctx context.Context) {
	stats, err := c.api.DashboardStats(ctx)
	if err != nil {
		c.log.Error("failed to fetch dashboard stats", zap.Error(err))
		c.view.SetStats(StatsSlots{
			TotalSpent: StatError,
			RideCount:  StatError,
			Average:    StatError,
			MonthTotal: StatError,
		})
		return
	}
	c.RenderStats(stats)
}

// RenderStats writes the four statistics into their slots.
func (c *Controller) RenderStats(stats *rides.Stats) {
	c.view.SetStats(StatsSlots{
		TotalSpent: c.money.Format(stats.TotalSpent),
		RideCount:  strconv.Itoa(stats.RideCount),
		Average:    c.money.Format(stats.AveragePerRide),
		MonthTotal: c.money.Format(stats.MonthTotal),
	})
}

// RefreshHistory fetches the ride list, retains it for the edit flow and
// renders it.
func (c *Controller) RefreshHistory(ctx context.Context) {
	list, err := c.api.ListRides(ctx)
	if err != nil {
		c.log.Error("failed to fetch ride history", zap.Error(err))
		c.view.SetHistory(History{Placeholder: HistoryError, Failed: true})
		return
	}

	records := make(map[rides.ID]rides.Ride, len(list))
	for _, r := range list {
		records[r.ID] = r
	}
	c.mu.Lock()
	c.records = records
	c.mu.Unlock()

	c.RenderHistory(list)
}

// RenderHistory replaces the history container with one row per ride, or
// the empty placeholder.
func (c *Controller) RenderHistory(list []rides.Ride) {
	if len(list) == 0 {
		c.view.SetHistory(History{Placeholder: EmptyHistory})
		return
	}
	c.view.SetHistory(History{Rows: buildRows(list, c.money)})
}

// Create submits the add form. The status message reports progress and
// outcome; on success the form is cleared and the dashboard reloaded.
func (c *Controller) Create(ctx context.Context, form AddForm) error {
	c.status.show(Message{Text: MsgAdding, Kind: MessageInfo})

	value, err := parseAmount(form.Value)
	if err != nil {
		c.log.Warn("add form value rejected", zap.String("value", form.Value))
		c.status.show(Message{Text: "Erro: " + MsgInvalidValue, Kind: MessageError})
		return err
	}

	req := rides.CreateRequest{
		Platform: strings.TrimSpace(form.Platform),
		Value:    value,
		Date:     strings.TrimSpace(form.Date),
	}
	res, err := c.api.CreateRide(ctx, req)
	switch {
	case res.Created() || res.Duplicate():
		err = nil
	case err == nil:
		err = ErrRejected
	}
	if err != nil {
		reason := serverMessage(res, err)
		c.log.Error("failed to add ride", zap.Error(err), zap.String("reason", reason))
		c.status.show(Message{Text: "Erro: " + reason, Kind: MessageError})
		return fmt.Errorf("adding ride: %s: %w", reason, err)
	}

	c.log.Info("ride added",
		zap.String("id", res.ID.String()),
		zap.Bool("duplicate", res.Duplicate()),
	)
	c.status.show(Message{Text: MsgAdded, Kind: MessageSuccess})
	c.view.ResetAddForm()
	c.Load(ctx)
	return nil
}

// Delete asks for confirmation and removes the ride. It reports whether
// the ride was deleted; a declined confirmation is not an error.
func (c *Controller) Delete(ctx context.Context, id rides.ID) (bool, error) {
	if !c.confirm.Confirm(ctx, ConfirmDelete) {
		c.log.Debug("delete declined", zap.String("id", id.String()))
		return false, nil
	}

	if _, err := c.api.DeleteRide(ctx, id); err != nil {
		c.log.Error("failed to delete ride", zap.String("id", id.String()), zap.Error(err))
		c.view.Alert(AlertDeleteFailed)
		return false, fmt.Errorf("deleting ride %s: %w", id, err)
	}

	c.Load(ctx)
	return true, nil
}

// OpenEdit fills the edit form for a ride and reveals the modal. The
// retained record list is consulted first; a ride that is only on screen
// is read back from its rendered row.
func (c *Controller) OpenEdit(id rides.ID) error {
	form, ok := c.formFromRecords(id)
	if !ok {
		row, found := c.view.RenderedRow(id)
		if !found {
			return fmt.Errorf("%w: %s", ErrUnknownRide, id)
		}
		var err error
		if form, err = c.formFromRow(row); err != nil {
			return err
		}
		c.log.Debug("edit form read back from rendered row", zap.String("id", id.String()))
	}

	c.view.OpenEditModal(form)
	return nil
}

func (c *Controller) formFromRecords(id rides.ID) (EditForm, bool) {
	c.mu.Lock()
	r, ok := c.records[id]
	c.mu.Unlock()
	if !ok {
		return EditForm{}, false
	}
	return EditForm{
		ID:            r.ID,
		Platform:      r.Platform,
		Value:         c.money.Plain(r.Value),
		PaymentMethod: r.PaymentMethod,
	}, true
}

func (c *Controller) formFromRow(row Row) (EditForm, error) {
	value, err := c.money.Parse(row.Value)
	if err != nil {
		return EditForm{}, fmt.Errorf("reading value of ride %s: %w", row.ID, err)
	}
	form := EditForm{
		ID:            row.ID,
		Platform:      row.Platform,
		Value:         c.money.Plain(value),
		PaymentMethod: row.Payment,
	}
	if form.Platform == MissingText {
		form.Platform = ""
	}
	if form.PaymentMethod == MissingPayment {
		form.PaymentMethod = ""
	}
	return form, nil
}

// SaveEdit sends the edit form as a partial update. On success the modal
// closes and the dashboard reloads; on failure the user is alerted and the
// modal stays open.
func (c *Controller) SaveEdit(ctx context.Context, form EditForm) error {
	value, err := parseAmount(form.Value)
	if err != nil {
		c.view.Alert(AlertSaveFailed)
		return err
	}

	req := rides.UpdateRequest{
		Platform:      strings.TrimSpace(form.Platform),
		Value:         value,
		PaymentMethod: strings.TrimSpace(form.PaymentMethod),
	}
	if _, err := c.api.UpdateRide(ctx, form.ID, req); err != nil {
		c.log.Error("failed to update ride", zap.String("id", form.ID.String()), zap.Error(err))
		c.view.Alert(AlertSaveFailed)
		return fmt.Errorf("updating ride %s: %w", form.ID, err)
	}

	c.view.CloseEditModal()
	c.Load(ctx)
	return nil
}

// CloseEdit hides the edit modal without saving.
func (c *Controller) CloseEdit() {
	c.view.CloseEditModal()
}

// parseAmount reads a form value. A lone comma is taken as the decimal
// separator.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return v, nil
}

// serverMessage picks the reason shown to the user for a failed create.
func serverMessage(res *rides.Result, err error) string {
	var apiErr *rides.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if res != nil && res.Error != "" {
		return res.Error
	}
	if apiErr != nil && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return MsgUnknownError
}
