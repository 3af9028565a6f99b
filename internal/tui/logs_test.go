package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/config"
	"github.com/agbru/loganalyzer/internal/orchestration"
)

func fixedLogs() LogsModel {
	l := NewLogsModel()
	l.now = func() time.Time { return time.Date(2024, 1, 2, 10, 11, 12, 0, time.UTC) }
	return l
}

func TestLogsModel_ProgressEntry(t *testing.T) {
	l := fixedLogs()
	l.AddProgressEntry(ProgressMsg{AggregatedProgress: orchestration.AggregatedProgress{
		ProgressUpdate: orchestration.ProgressUpdate{
			Pass: analysis.PassConcurrent, Worker: 2, File: "/tmp/logs/app.log", Done: 3, Total: 5,
			Err: errors.New("permission denied"),
		},
	}})

	line := l.entries[len(l.entries)-1]
	for _, want := range []string{"10:11:12", "app.log", "(3/5)", "permission denied"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "/tmp/logs") {
		t.Error("only the base name should be logged")
	}
}

func TestLogsModel_ResetKeepsConfig(t *testing.T) {
	l := fixedLogs()
	l.AddExecutionConfig(config.AppConfig{Keywords: []string{"ERROR"}, PoolSize: 2}, "/data", 9)
	l.AddError(ErrorMsg{Err: errors.New("boom"), Duration: time.Second})
	l.Reset()

	if len(l.entries) != 4 {
		t.Fatalf("expected only the 4 config rows, got %d", len(l.entries))
	}
	if !strings.Contains(strings.Join(l.entries, "\n"), "/data") {
		t.Error("config rows should survive a reset")
	}
}

func TestLogsModel_Failures(t *testing.T) {
	l := fixedLogs()
	l.AddFailures(nil)
	if len(l.entries) != 0 {
		t.Error("no failures should log nothing")
	}
	l.AddFailures([]analysis.FileFailure{{File: "a.log", Err: errors.New("gone")}})
	if len(l.entries) != 2 || !strings.Contains(l.entries[1], "a.log: gone") {
		t.Errorf("unexpected entries %q", l.entries)
	}
}

func TestLogsModel_Scrollback(t *testing.T) {
	l := fixedLogs()
	l.SetSize(40, 7) // 5 visible lines
	for i := range maxLogEntries + 10 {
		l.add(fmt.Sprintf("line %d", i))
	}
	if len(l.entries) != maxLogEntries {
		t.Fatalf("expected scrollback capped at %d, got %d", maxLogEntries, len(l.entries))
	}

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	if l.offset != 1 {
		t.Fatalf("expected offset 1, got %d", l.offset)
	}
	// A new entry keeps the viewed lines in place.
	before := l.visible(5)
	l.add("fresh")
	after := l.visible(5)
	if before[0] != after[0] {
		t.Errorf("view moved while scrolled: %q vs %q", before[0], after[0])
	}

	l.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	if l.offset != 0 {
		t.Errorf("expected to be back at the bottom, got offset %d", l.offset)
	}
}

func TestLogsModel_RenderToHeight(t *testing.T) {
	l := fixedLogs()
	l.SetSize(40, 10)
	l.add("only line")
	out := l.renderToHeight(10)
	if got := strings.Count(out, "\n") + 1; got != 10 {
		t.Errorf("expected 10 rendered lines, got %d", got)
	}
}

func TestFooterModel_Status(t *testing.T) {
	f := NewFooterModel(DefaultKeyMap())
	f.SetWidth(120)
	if !strings.Contains(f.View(), "RUNNING") {
		t.Error("expected RUNNING status")
	}
	f.SetPaused(true)
	if !strings.Contains(f.View(), "PAUSED") {
		t.Error("expected PAUSED status")
	}
	f.SetDone(true)
	if !strings.Contains(f.View(), "DONE") {
		t.Error("expected DONE status")
	}
	f.SetError(true)
	if !strings.Contains(f.View(), "ERROR") {
		t.Error("expected ERROR status")
	}
}

func TestHeaderModel_FreezesOnDone(t *testing.T) {
	h := NewHeaderModel("dev", "/data")
	h.SetWidth(80)
	h.started = time.Now().Add(-2 * time.Second)
	h.SetDone()
	first := h.View()
	time.Sleep(20 * time.Millisecond)
	if h.View() != first {
		t.Error("elapsed time should not move after SetDone")
	}
	if strings.Contains(first, "dev") {
		t.Error("development builds should not show a version")
	}
}
