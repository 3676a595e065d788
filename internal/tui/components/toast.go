package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Cloudsky01/gh-restatus/internal/tui/theme"
)

type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastError
)

type Toast struct {
	ID      int
	Message string
	Level   ToastLevel
}

// ToastExpiredMsg removes the toast with the matching ID
type ToastExpiredMsg struct {
	ID int
}

// Toaster shows short-lived notifications. Only the newest is rendered.
type Toaster struct {
	toasts    []Toast
	width     int
	theme     *theme.Theme
	idCounter int
}

func NewToaster(t *theme.Theme) Toaster {
	return Toaster{theme: t}
}

func (t *Toaster) SetWidth(width int) {
	t.width = width
}

func (t *Toaster) Show(message string, level ToastLevel, duration time.Duration) tea.Cmd {
	t.idCounter++
	id := t.idCounter
	t.toasts = append(t.toasts, Toast{ID: id, Message: message, Level: level})

	return tea.Tick(duration, func(_ time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

func (t *Toaster) Info(message string) tea.Cmd {
	return t.Show(message, ToastInfo, 3*time.Second)
}

func (t *Toaster) Success(message string) tea.Cmd {
	return t.Show(message, ToastSuccess, 4*time.Second)
}

func (t *Toaster) Error(message string) tea.Cmd {
	return t.Show(message, ToastError, 6*time.Second)
}

func (t *Toaster) Update(msg tea.Msg) {
	if msg, ok := msg.(ToastExpiredMsg); ok {
		t.remove(msg.ID)
	}
}

func (t *Toaster) remove(id int) {
	active := t.toasts[:0]
	for _, toast := range t.toasts {
		if toast.ID != id {
			active = append(active, toast)
		}
	}
	t.toasts = active
}

func (t *Toaster) HasToasts() bool {
	return len(t.toasts) > 0
}

// Latest returns the toast that is displayed
func (t *Toaster) Latest() (Toast, bool) {
	if len(t.toasts) == 0 {
		return Toast{}, false
	}
	return t.toasts[len(t.toasts)-1], true
}

func (t *Toaster) View() string {
	toast, ok := t.Latest()
	if !ok {
		return ""
	}

	var style lipgloss.Style
	var icon string

	switch toast.Level {
	case ToastSuccess:
		style = t.theme.StatusSuccess
		icon = t.theme.Icons.Success
	case ToastError:
		style = t.theme.StatusError
		icon = t.theme.Icons.Failure
	default:
		style = t.theme.Text
		icon = t.theme.Icons.Info
	}

	rendered := lipgloss.NewStyle().
		Foreground(style.GetForeground()).
		Padding(0, 2).
		Bold(true).
		Render(icon + " " + toast.Message)

	return lipgloss.PlaceHorizontal(t.width, lipgloss.Right, rendered)
}
