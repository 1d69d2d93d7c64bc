// Package ui holds the interactive front end's panels: the discovery
// sidebar, toast notifications, the stats bar and the saved-run browser.
// Layout and timing live in untagged files; drawing needs the ebiten tag.
package ui

import (
	"time"
)

const (
	// ToastLifetime is how long a toast stays on screen.
	ToastLifetime = 2500 * time.Millisecond
	// ToastFade is the tail of the lifetime over which a toast fades out.
	ToastFade = time.Second
	// MaxToasts caps how many toasts are visible at once.
	MaxToasts = 3
)

// Toast is one visible notification.
type Toast struct {
	Text  string
	Alpha float64
}

type toast struct {
	text    string
	created time.Time
}

// Toasts queues "Found:" notifications for new discoveries.
type Toasts struct {
	items []toast
	now   func() time.Time
}

// NewToasts returns an empty queue using the wall clock.
func NewToasts() *Toasts {
	return &Toasts{now: time.Now}
}

// Found queues a notification for a newly discovered pattern.
func (t *Toasts) Found(name string) {
	t.Add("Found: " + name)
}

// Add queues a notification.
func (t *Toasts) Add(text string) {
	t.items = append(t.items, toast{text: text, created: t.now()})
}

// Clear drops every pending toast.
func (t *Toasts) Clear() { t.items = t.items[:0] }

// Visible expires old toasts and returns the newest MaxToasts, oldest
// first, with their current opacity.
func (t *Toasts) Visible() []Toast {
	now := t.now()
	live := t.items[:0]
	for _, it := range t.items {
		if now.Sub(it.created) < ToastLifetime {
			live = append(live, it)
		}
	}
	t.items = live

	shown := live
	if len(shown) > MaxToasts {
		shown = shown[len(shown)-MaxToasts:]
	}
	out := make([]Toast, 0, len(shown))
	for _, it := range shown {
		out = append(out, Toast{Text: it.text, Alpha: toastAlpha(now.Sub(it.created))})
	}
	return out
}

// Len returns the number of unexpired toasts as of the last Visible call.
func (t *Toasts) Len() int { return len(t.items) }

func toastAlpha(age time.Duration) float64 {
	solid := ToastLifetime - ToastFade
	if age <= solid {
		return 1
	}
	a := 1 - float64(age-solid)/float64(ToastFade)
	return max(0, a)
}
