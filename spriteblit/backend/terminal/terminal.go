// Package terminal renders frames into a tcell screen using half-block
// characters, two buffer rows per terminal cell.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/rvalk/go-spriteblit/spriteblit"
	"github.com/rvalk/go-spriteblit/spriteblit/backend"
	"github.com/rvalk/go-spriteblit/spriteblit/backend/terminal/render"
)

const logRingSize = 100

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen     tcell.Screen
	running    bool
	config     backend.Config
	logRing    *render.LogRing
	logLevel   slog.Level
	prevLogger *slog.Logger
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{
		logLevel: slog.LevelInfo,
	}
}

// Init initializes the terminal and reroutes slog into the log panel.
func (t *Backend) Init(config backend.Config) error {
	t.config = config

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	t.screen = screen
	t.running = true

	// Writing to stderr would corrupt the screen, so logs go to a ring
	// drawn in the side panel instead.
	t.logRing = render.NewLogRing(logRingSize)
	t.prevLogger = slog.Default()
	slog.SetDefault(slog.New(render.NewHandler(t.logRing, slog.LevelDebug)))

	slog.Info("Terminal backend initialized")

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.handleSignals()

	return nil
}

// Update renders a frame and processes pending input events.
func (t *Backend) Update(buf *spriteblit.PixelBuffer) error {
	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	if !t.running {
		return nil
	}

	t.draw(buf)
	t.screen.Show()

	return nil
}

// Cleanup restores the terminal and the previous logger.
func (t *Backend) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	if t.prevLogger != nil {
		slog.SetDefault(t.prevLogger)
	}
	slog.Info("Terminal backend closed")
	return nil
}

func (t *Backend) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	<-signals
	t.running = false
	t.raise(backend.ActionQuit)
}

func (t *Backend) raise(a backend.Action) {
	if t.config.Callbacks.OnAction != nil {
		t.config.Callbacks.OnAction(a)
	}
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.running = false
		t.raise(backend.ActionQuit)
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case 'q':
		t.running = false
		t.raise(backend.ActionQuit)
	case ' ':
		t.raise(backend.ActionPause)
	case 's':
		t.raise(backend.ActionSnapshot)
	case '+', '=':
		t.changeLogLevel(1)
	case '-', '_':
		t.changeLogLevel(-1)
	}
}

func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel
	switch direction {
	case -1:
		switch t.logLevel {
		case slog.LevelDebug:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelError
		}
	case 1:
		switch t.logLevel {
		case slog.LevelError:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelDebug
		}
	}
	if oldLevel != t.logLevel {
		slog.Info("Log filter changed", "from", oldLevel, "to", t.logLevel)
	}
}

func (t *Backend) draw(buf *spriteblit.PixelBuffer) {
	termWidth, termHeight := t.screen.Size()

	// One cell per buffer column, one row per two buffer rows, plus the
	// title and help lines.
	neededWidth := buf.Width()
	neededHeight := (buf.Height()+1)/2 + 2

	if termWidth < neededWidth || termHeight < neededHeight {
		t.screen.Clear()
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", neededWidth, neededHeight)
		for i, ch := range msg {
			t.screen.SetContent(i, termHeight/2, ch, nil, style)
		}
		return
	}

	t.screen.Clear()
	t.drawFrame(buf)
	t.drawChrome(termWidth, termHeight, neededWidth)
	t.drawLogs(neededWidth+2, 1, termWidth-neededWidth-2, termHeight)
}

func (t *Backend) drawFrame(buf *spriteblit.PixelBuffer) {
	pixels := buf.Pixels()
	w, h := buf.Width(), buf.Height()

	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := pixels[y*w+x]
			bottom := uint32(0)
			if y+1 < h {
				bottom = pixels[(y+1)*w+x]
			}

			ch, style := render.HalfBlockCell(top, bottom)
			t.screen.SetContent(x, y/2+1, ch, nil, style)
		}
	}
}

func (t *Backend) drawChrome(termWidth, termHeight, dividerX int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	if dividerX+1 < termWidth {
		for y := 0; y < termHeight; y++ {
			t.screen.SetContent(dividerX+1, y, '│', nil, borderStyle)
		}
	}

	title := fmt.Sprintf(" %s ", t.config.Title)
	for i, ch := range title {
		if i < termWidth {
			t.screen.SetContent(i, 0, ch, nil, titleStyle)
		}
	}

	levelStr := "INFO"
	switch t.logLevel {
	case slog.LevelDebug:
		levelStr = "DEBUG"
	case slog.LevelWarn:
		levelStr = "WARN"
	case slog.LevelError:
		levelStr = "ERROR"
	}
	helpText := fmt.Sprintf(" q=quit SPACE=pause s=snapshot | logs [%s] (-/+ filter) ", levelStr)
	for i, ch := range helpText {
		if i < termWidth {
			t.screen.SetContent(i, termHeight-1, ch, nil, borderStyle)
		}
	}
}

func (t *Backend) drawLogs(startX, startY, width, termHeight int) {
	if width <= 0 || startY >= termHeight {
		return
	}

	availableHeight := termHeight - startY - 1
	if availableHeight <= 0 {
		return
	}

	allLogs := t.logRing.Recent(availableHeight * 2)
	logs := make([]render.Entry, 0, availableHeight)
	for _, entry := range allLogs {
		if entry.Level >= t.logLevel {
			logs = append(logs, entry)
			if len(logs) >= availableHeight {
				break
			}
		}
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range logs {
		style := infoStyle
		switch entry.Level {
		case slog.LevelDebug:
			style = debugStyle
		case slog.LevelWarn:
			style = warnStyle
		case slog.LevelError:
			style = errStyle
		}

		logText := render.FormatEntry(entry)
		if len(logText) > width {
			if width > 3 {
				logText = logText[:width-3] + "..."
			} else {
				logText = logText[:width]
			}
		}

		x := startX
		for _, ch := range logText {
			if x >= startX+width {
				break
			}
			t.screen.SetContent(x, startY+i, ch, nil, style)
			x++
		}
	}
}
