package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type pomodoroPhase int

const (
	phaseIdle pomodoroPhase = iota
	phaseWork
	phaseBreak
)

// Pomodoro is a self-contained countdown. It never touches the task
// collection; its one-second tick exists purely for display and stops
// when the timer is idle.
type Pomodoro struct {
	phase     pomodoroPhase
	remaining time.Duration
	work      time.Duration
	rest      time.Duration
	completed int
}

func NewPomodoro(workMinutes, breakMinutes int) Pomodoro {
	return Pomodoro{
		work: time.Duration(workMinutes) * time.Minute,
		rest: time.Duration(breakMinutes) * time.Minute,
	}
}

func (p Pomodoro) Running() bool {
	return p.phase != phaseIdle
}

func (p Pomodoro) Start() Pomodoro {
	p.phase = phaseWork
	p.remaining = p.work
	return p
}

func (p Pomodoro) Stop() Pomodoro {
	p.phase = phaseIdle
	p.remaining = 0
	return p
}

// Tick advances the countdown by one second, rolling work into break and
// break back into idle.
func (p Pomodoro) Tick() Pomodoro {
	if p.phase == phaseIdle {
		return p
	}
	p.remaining -= time.Second
	if p.remaining > 0 {
		return p
	}
	switch p.phase {
	case phaseWork:
		p.completed++
		p.phase = phaseBreak
		p.remaining = p.rest
	case phaseBreak:
		p.phase = phaseIdle
		p.remaining = 0
	}
	return p
}

func (p Pomodoro) View() string {
	var label string
	switch p.phase {
	case phaseIdle:
		label = "Press 's' to start a focus session"
	case phaseWork:
		label = "Focus"
	case phaseBreak:
		label = "Break"
	}

	clock := "--:--"
	if p.phase != phaseIdle {
		total := int(p.remaining / time.Second)
		clock = fmt.Sprintf("%02d:%02d", total/60, total%60)
	}

	body := fmt.Sprintf("%s\n\n%s\n\nSessions completed: %d",
		label,
		lipgloss.NewStyle().Bold(true).Render(clock),
		p.completed,
	)
	return statBoxStyle.Render(body)
}
