// Package tui implements the interactive top-style process view backed by
// tview. It repeatedly samples the process table and rates each pid's CPU use
// between consecutive listings; all policy about intervals lives here, in the
// caller's seat, not in the introspection core.
package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Paintersrp/sysq/internal/cliutil"
	"github.com/Paintersrp/sysq/internal/metrics"
	"github.com/Paintersrp/sysq/internal/proc"
)

const (
	tableTitle     = "Processes"
	defaultRefresh = 2 * time.Second
	filterPageName = "filter"
)

// Option configures UI behaviour.
type Option func(*UI)

// WithRefresh sets the sampling interval between listings.
func WithRefresh(d time.Duration) Option {
	return func(u *UI) {
		if d > 0 {
			u.refresh = d
		}
	}
}

// WithSort sets the initial sort key.
func WithSort(key string) Option {
	return func(u *UI) {
		if key != "" {
			u.sortKey = key
		}
	}
}

// WithMinCPU hides rated rows below the given CPU percentage. Rows without a
// rate yet are always shown.
func WithMinCPU(percent float64) Option {
	return func(u *UI) {
		if percent > 0 {
			u.minCPU = percent
		}
	}
}

// UI coordinates the interactive process view.
type UI struct {
	app    *tview.Application
	pages  *tview.Pages
	table  *tview.Table
	status *tview.TextView

	model   *model
	refresh time.Duration
	minCPU  float64

	mu      sync.Mutex
	sortKey string
	filter  string
	rows    []Row

	stopOnce sync.Once
	done     chan struct{}
}

// New constructs a UI configured with the supplied options.
func New(opts ...Option) *UI {
	app := tview.NewApplication()
	table := tview.NewTable().SetFixed(1, 0).SetSelectable(true, false)
	table.SetBorder(true).SetTitle(tableTitle)

	status := tview.NewTextView().SetDynamicColors(true)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(table, 0, 1, true).
		AddItem(status, 1, 0, false)

	pages := tview.NewPages().AddPage("main", flex, true, true)

	ui := &UI{
		app:     app,
		pages:   pages,
		table:   table,
		status:  status,
		model:   newModel(proc.Cores()),
		refresh: defaultRefresh,
		sortKey: sortKeys[0],
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(ui)
	}

	app.SetRoot(pages, true)
	app.SetInputCapture(ui.handleKey)

	return ui
}

// Run samples and renders until the context is cancelled or the user quits.
func (u *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ticker := time.NewTicker(u.refresh)
		defer ticker.Stop()

		u.sample()
		for {
			select {
			case <-ctx.Done():
				return
			case <-u.done:
				return
			case <-ticker.C:
				u.sample()
			}
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
		case <-u.done:
		}
		u.app.Stop()
	}()

	defer u.Stop()
	return u.app.Run()
}

// Stop terminates the view.
func (u *UI) Stop() {
	u.stopOnce.Do(func() {
		close(u.done)
	})
}

func (u *UI) sample() {
	start := time.Now()
	snaps, err := proc.List()
	metrics.ObserveQuery("list", time.Since(start))
	if err != nil {
		u.app.QueueUpdateDraw(func() {
			u.status.SetText(fmt.Sprintf("[red]list processes: %v", err))
		})
		return
	}

	u.mu.Lock()
	u.rows = u.model.update(snaps)
	u.mu.Unlock()

	u.app.QueueUpdateDraw(u.render)
}

// render redraws the table from the current rows. Callers hold no locks; the
// method takes its own copy under the mutex.
func (u *UI) render() {
	u.mu.Lock()
	rows := filterRows(append([]Row(nil), u.rows...), u.filter)
	if u.minCPU > 0 {
		kept := rows[:0]
		for _, row := range rows {
			if !row.HasCPU || row.CPUPercent >= u.minCPU {
				kept = append(kept, row)
			}
		}
		rows = kept
	}
	sortRows(rows, u.sortKey)
	sortKey := u.sortKey
	filter := u.filter
	u.mu.Unlock()

	u.table.Clear()
	for col, header := range []string{"PID", "NAME", "USER", "STATUS", "RSS", "THR", "CPU%"} {
		u.table.SetCell(0, col, tview.NewTableCell(header).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}

	for i, row := range rows {
		cpu := "-"
		if row.HasCPU {
			cpu = cliutil.FormatPercent(row.CPUPercent)
		}
		cells := []string{
			row.PID.String(),
			row.Name,
			row.Owner,
			string(row.Status),
			cliutil.FormatBytes(row.Resident),
			cliutil.FormatIntPtr(row.Threads),
			cpu,
		}
		for col, text := range cells {
			u.table.SetCell(i+1, col, tview.NewTableCell(text))
		}
	}

	summary := fmt.Sprintf(" %d processes | sort: %s | s sort, / filter, q quit", len(rows), sortKey)
	if filter != "" {
		summary += fmt.Sprintf(" | filter: %q", filter)
	}
	u.status.SetText(summary)
}

func (u *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if u.pages.HasPage(filterPageName) && u.app.GetFocus() != u.table {
		return event
	}

	switch {
	case event.Key() == tcell.KeyCtrlC:
		u.Stop()
		return nil
	case event.Key() == tcell.KeyRune && event.Rune() == 'q':
		u.Stop()
		return nil
	case event.Key() == tcell.KeyRune && event.Rune() == 's':
		u.mu.Lock()
		u.sortKey = nextSortKey(u.sortKey)
		u.mu.Unlock()
		u.render()
		return nil
	case event.Key() == tcell.KeyRune && event.Rune() == '/':
		u.promptFilter()
		return nil
	}
	return event
}

func (u *UI) promptFilter() {
	input := tview.NewInputField().SetLabel("filter: ")
	u.mu.Lock()
	input.SetText(u.filter)
	u.mu.Unlock()

	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			u.mu.Lock()
			u.filter = input.GetText()
			u.mu.Unlock()
		}
		u.pages.RemovePage(filterPageName)
		u.app.SetFocus(u.table)
		u.render()
	})

	u.pages.AddPage(filterPageName, input, true, true)
	u.app.SetFocus(input)
}
