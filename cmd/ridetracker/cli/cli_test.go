package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridetracker/ridetracker/internal/dashboard"
)

func TestPrintDashboard(t *testing.T) {
	var buf bytes.Buffer
	printDashboard(&buf, dashboard.PageState{
		Stats: dashboard.StatsSlots{
			TotalSpent: "R$ 1.234,50",
			RideCount:  "2",
			Average:    "R$ 617,25",
			MonthTotal: "R$ 23,50",
		},
		History: dashboard.History{Rows: []dashboard.Row{
			{ID: "1", Platform: "Uber", Date: "01/01/2024", Path: "Rua A → Rua B", Payment: "Pix", Value: "R$ 23,50"},
		}},
	})

	out := buf.String()
	assert.Contains(t, out, "R$ 1.234,50")
	assert.Contains(t, out, "PLATAFORMA")
	assert.Contains(t, out, "Rua A → Rua B")
	assert.Contains(t, out, "R$ 23,50")
}

func TestPrintDashboard_Placeholder(t *testing.T) {
	var buf bytes.Buffer
	printDashboard(&buf, dashboard.PageState{
		Stats:   dashboard.StatsSlots{TotalSpent: "Erro", RideCount: "Erro", Average: "Erro", MonthTotal: "Erro"},
		History: dashboard.History{Placeholder: dashboard.HistoryError, Failed: true},
	})

	out := buf.String()
	assert.Contains(t, out, dashboard.HistoryError)
	assert.NotContains(t, out, "PLATAFORMA")
}

func TestPrintMessage(t *testing.T) {
	tests := []struct {
		msg  dashboard.Message
		want string
	}{
		{dashboard.Message{}, ""},
		{dashboard.Message{Text: "ok", Kind: dashboard.MessageSuccess}, "✓ ok\n"},
		{dashboard.Message{Text: "Erro: x", Kind: dashboard.MessageError}, "✗ Erro: x\n"},
		{dashboard.Message{Text: "Adicionando...", Kind: dashboard.MessageInfo}, "Adicionando...\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		printMessage(&buf, tt.msg)
		assert.Equal(t, tt.want, buf.String())
	}
}

func TestTTYConfirmer(t *testing.T) {
	newConfirmer := func(input string, tty bool) (*ttyConfirmer, *bytes.Buffer) {
		out := &bytes.Buffer{}
		return &ttyConfirmer{
			in:         strings.NewReader(input),
			out:        out,
			isTerminal: func(int) bool { return tty },
		}, out
	}
	ctx := context.Background()

	c, _ := newConfirmer("sim\n", true)
	assert.True(t, c.Confirm(ctx, "?"))

	c, _ = newConfirmer("S\n", true)
	assert.True(t, c.Confirm(ctx, "?"))

	c, _ = newConfirmer("\n", true)
	assert.False(t, c.Confirm(ctx, "?"))

	c, _ = newConfirmer("", true)
	assert.False(t, c.Confirm(ctx, "?"))

	c, out := newConfirmer("sim\n", false)
	assert.False(t, c.Confirm(ctx, "?"), "no terminal means no answer")
	assert.Contains(t, out.String(), "--yes")

	c, _ = newConfirmer("", false)
	c.assumeYes = true
	assert.True(t, c.Confirm(ctx, "?"))
}

func TestTermViewAlert(t *testing.T) {
	var buf bytes.Buffer
	v := newTermView(&buf)
	v.Alert(dashboard.AlertDeleteFailed)

	assert.Equal(t, "✗ "+dashboard.AlertDeleteFailed+"\n", buf.String())
	assert.Empty(t, v.Snapshot().Alerts)
}

type fakeAPI struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	switch {
	case r.URL.Path == "/api/dashboard-stats":
		io.WriteString(w, `{"total_gasto": 50, "total_de_corridas": 1, "media_por_corrida": 50, "total_este_mes": 50}`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/corridas":
		io.WriteString(w, `[{"id": 7, "plataforma": "Uber", "valor": 50, "data_corrida": "2024-03-05"}]`)
	case r.Method == http.MethodDelete:
		io.WriteString(w, `{"mensagem": "Corrida deletada com sucesso!"}`)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) called(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == key {
			return true
		}
	}
	return false
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags puts every flag of cmd and its subcommands back to its
// default, so one Execute does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestResetFlags(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, rootCmd.ParseFlags([]string{"--config", cfg}))
	require.NoError(t, editCmd.ParseFlags([]string{"--value", "30", "--payment", "Pix"}))
	require.NoError(t, deleteCmd.ParseFlags([]string{"--yes"}))
	require.True(t, editCmd.Flags().Changed("value"))

	resetFlags(rootCmd)

	assert.Empty(t, flagConfig)
	assert.Empty(t, editValue)
	assert.Empty(t, editPayment)
	assert.False(t, deleteYes)
	assert.False(t, editCmd.Flags().Changed("value"))
	assert.False(t, deleteCmd.Flags().Changed("yes"))
}

func TestDashboardCommand(t *testing.T) {
	api := &fakeAPI{}
	ts := httptest.NewServer(api)
	defer ts.Close()

	cfg := filepath.Join(t.TempDir(), "config.hcl")
	out, err := execute(t, "dashboard", "--config", cfg, "--api-url", ts.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "R$ 50,00")
	assert.Contains(t, out, "05/03/2024")
	assert.True(t, api.called("GET /api/dashboard-stats"))
	assert.True(t, api.called("GET /api/corridas"))
}

func TestDeleteCommand_Yes(t *testing.T) {
	api := &fakeAPI{}
	ts := httptest.NewServer(api)
	defer ts.Close()

	cfg := filepath.Join(t.TempDir(), "config.hcl")
	_, err := execute(t, "delete", "7", "--yes", "--config", cfg, "--api-url", ts.URL)
	require.NoError(t, err)
	assert.True(t, api.called("DELETE /api/corridas/7"))
}

func TestLoadConfig_RejectsBadURL(t *testing.T) {
	old := flagAPIURL
	oldCfg := flagConfig
	t.Cleanup(func() {
		flagAPIURL = old
		flagConfig = oldCfg
	})

	flagConfig = filepath.Join(t.TempDir(), "config.hcl")
	flagAPIURL = "ftp://example.com"
	_, err := loadConfig()
	assert.Error(t, err)
}
