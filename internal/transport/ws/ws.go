// Package ws implements the channel transport over a websocket. Both ends
// expose the signal surface of internal/signal: Client dials the host's
// channel endpoint and reconnects on failure; Peer wraps a single accepted
// connection on the host side.
//
// Frames are JSON objects {"id","name","args"}. Sends are fire-and-forget:
// a frame queued while the far side is gone, or while the outbound buffer
// is full, is dropped silently (logged at debug). Ids are generated per
// frame for log correlation only and carry no protocol meaning.
package ws

import (
	"time"

	"github.com/google/uuid"

	"github.com/deskbridge/deskbridge/internal/signal"
)

// frame is the wire representation of a signal.
type frame struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Args []any  `json:"args,omitempty"`
}

func newFrame(name string, args []any) frame {
	return frame{ID: uuid.NewString(), Name: name, Args: args}
}

func (f frame) signalArgs() []any {
	if f.Args == nil {
		return nil
	}
	return f.Args
}

const (
	// writeWait bounds a single frame write.
	writeWait = 5 * time.Second

	// outboundBuffer is how many frames may queue before Send drops.
	outboundBuffer = 64

	// redialWait is the pause between failed dial attempts.
	redialWait = 2 * time.Second
)

var _ signal.Duplex = (*Client)(nil)
var _ signal.Duplex = (*Peer)(nil)
