package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ridetracker/ridetracker/internal/dashboard"
)

// termView is a dashboard page whose alerts go straight to the terminal.
type termView struct {
	*dashboard.Page
	alerts io.Writer
}

func newTermView(alerts io.Writer) *termView {
	return &termView{Page: dashboard.NewPage(), alerts: alerts}
}

func (v *termView) Alert(text string) {
	fmt.Fprintf(v.alerts, "✗ %s\n", text)
}

// printDashboard writes the stat slots and the history list.
func printDashboard(w io.Writer, st dashboard.PageState) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total gasto\t%s\n", st.Stats.TotalSpent)
	fmt.Fprintf(tw, "Corridas\t%s\n", st.Stats.RideCount)
	fmt.Fprintf(tw, "Média por corrida\t%s\n", st.Stats.Average)
	fmt.Fprintf(tw, "Este mês\t%s\n", st.Stats.MonthTotal)
	tw.Flush()
	fmt.Fprintln(w)

	if st.History.Placeholder != "" {
		fmt.Fprintln(w, st.History.Placeholder)
		return
	}

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLATAFORMA\tDATA\tTRAJETO\tPAGAMENTO\tVALOR")
	for _, r := range st.History.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Platform, r.Date, r.Path, r.Payment, r.Value)
	}
	tw.Flush()
}

// printMessage writes the status message, if any.
func printMessage(w io.Writer, m dashboard.Message) {
	switch {
	case m.Text == "":
	case m.Kind == dashboard.MessageSuccess:
		fmt.Fprintf(w, "✓ %s\n", m.Text)
	case m.Kind == dashboard.MessageError:
		fmt.Fprintf(w, "✗ %s\n", m.Text)
	default:
		fmt.Fprintln(w, m.Text)
	}
}
