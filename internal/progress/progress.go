// Package progress defines the observer interface for per-hook lifecycle
// events and a console implementation. Reporters are pure sinks: they can
// never influence execution outcomes.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/deixis/verdict/internal/report"
)

// Reporter observes hook lifecycle events. Implementations may render
// progress however they like; the pool serializes all calls through a
// single goroutine and swallows panics, so a broken reporter cannot
// corrupt or stall a run.
type Reporter interface {
	HookStarted(name string)
	HookFinished(name string, status report.Status)
}

// Nop is a Reporter that discards every event.
type Nop struct{}

func (Nop) HookStarted(string)                 {}
func (Nop) HookFinished(string, report.Status) {}

// Console renders one line per finished hook with an aggregate counter,
// using color glyphs on terminals and plain text elsewhere.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	total int
	done  int
	plain bool
}

// NewConsole creates a console reporter for a run of total hooks writing
// to w. Color is disabled when w is not a terminal.
func NewConsole(w io.Writer, total int) *Console {
	plain := true
	if f, ok := w.(*os.File); ok {
		plain = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return &Console{w: w, total: total, plain: plain}
}

func (c *Console) HookStarted(name string) {
	// Start events are intentionally quiet; a line per finished hook is
	// enough signal without interleaving concurrent starts.
}

func (c *Console) HookFinished(name string, status report.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.done++
	glyph, label := c.render(status)
	fmt.Fprintf(c.w, "%s [%d/%d] %s %s\n", glyph, c.done, c.total, name, label)
}

func (c *Console) render(status report.Status) (glyph, label string) {
	if c.plain {
		switch status {
		case report.Succeeded:
			return "ok", ""
		case report.Failed:
			return "FAIL", ""
		default:
			return "ERR", "(could not start)"
		}
	}
	switch status {
	case report.Succeeded:
		return color.GreenString("✓"), ""
	case report.Failed:
		return color.RedString("!"), color.YellowString("failed")
	default:
		return color.RedString("✗"), color.YellowString("could not start")
	}
}
