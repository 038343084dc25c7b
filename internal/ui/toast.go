package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Toast is a short-lived notice surfaced after a store mutation.
type Toast struct {
	Message string
	Expires time.Time
}

const toastLifetime = 4 * time.Second

var toastStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("15")).
	Background(lipgloss.Color("12")).
	Padding(0, 1)

// ToastStack keeps the most recent notices until they expire.
type ToastStack struct {
	toasts []Toast
	now    func() time.Time
}

func NewToastStack() *ToastStack {
	return &ToastStack{now: time.Now}
}

func (s *ToastStack) Push(message string) {
	s.toasts = append(s.toasts, Toast{
		Message: message,
		Expires: s.now().Add(toastLifetime),
	})
	// Only the three freshest are worth showing
	if len(s.toasts) > 3 {
		s.toasts = s.toasts[len(s.toasts)-3:]
	}
}

// Prune drops expired toasts; called on every clock tick.
func (s *ToastStack) Prune() {
	now := s.now()
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if t.Expires.After(now) {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
}

func (s *ToastStack) View() string {
	if len(s.toasts) == 0 {
		return ""
	}
	var lines []string
	for _, t := range s.toasts {
		lines = append(lines, toastStyle.Render(t.Message))
	}
	return strings.Join(lines, "\n")
}
