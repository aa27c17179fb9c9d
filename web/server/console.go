package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/df07/go-lane-raytracer/pkg/core"
)

// ConsoleMessage is one line of render output returned to the client
type ConsoleMessage struct {
	RenderID  string    `json:"renderId,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// WebLogger implements core.Logger by copying messages to the server log
// and to a per-request console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a web logger for one render request
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger. Sends never block; a full channel drops
// the console copy.
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	log.Print(message)

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{RenderID: wl.renderID, Message: message, Timestamp: time.Now()}:
	default:
	}
}
