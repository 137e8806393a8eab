package ui

import "todo/internal/controller"

type pendingConfirm struct {
	title     string
	message   string
	onConfirm func()
}

// Screen is the controller's render boundary for the TUI. It only records
// what to draw; the Bubble Tea model reads it in View.
type Screen struct {
	snap      controller.Snapshot
	notice    *controller.Notice
	noticeSeq int
	confirm   *pendingConfirm
}

func NewScreen() *Screen {
	return &Screen{}
}

func (s *Screen) Render(snap controller.Snapshot) {
	s.snap = snap
}

func (s *Screen) Notify(n controller.Notice) {
	s.notice = &n
	s.noticeSeq++
}

func (s *Screen) Confirm(title, message string, onConfirm func()) {
	s.confirm = &pendingConfirm{title: title, message: message, onConfirm: onConfirm}
}

func (s *Screen) dismiss(seq int) {
	if seq == s.noticeSeq {
		s.notice = nil
	}
}
