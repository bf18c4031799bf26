package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

const defaultInboxSize = 50

// Message is one entry in an admin's inbox.
type Message struct {
	Text       string
	ReceivedAt time.Time
}

// Inbox keeps the most recent messages per admin in memory so the admin page
// can show them. Older entries are dropped once size is reached.
type Inbox struct {
	mu    sync.Mutex
	size  int
	boxes map[string][]Message
	now   func() time.Time
}

// NewInbox returns an Inbox keeping the last size messages per admin.
func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = defaultInboxSize
	}
	return &Inbox{size: size, boxes: make(map[string][]Message), now: time.Now}
}

func (i *Inbox) Name() string { return "inbox" }

// Receive appends message to the recipient's inbox, dropping the oldest when full.
func (i *Inbox) Receive(_ context.Context, recipient domain.User, message string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	box := append(i.boxes[recipient.ID], Message{Text: message, ReceivedAt: i.now().UTC()})
	if len(box) > i.size {
		box = box[len(box)-i.size:]
	}
	i.boxes[recipient.ID] = box
	return nil
}

// Messages returns the admin's inbox, newest first.
func (i *Inbox) Messages(adminID string) []Message {
	i.mu.Lock()
	defer i.mu.Unlock()

	box := i.boxes[adminID]
	out := make([]Message, len(box))
	for n, m := range box {
		out[len(box)-1-n] = m
	}
	return out
}
