package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/cursorcontext/architect/internal/relay"
)

// streamEvents forwards relay events to the response, flushing after every
// delta so chunks reach the client as they are produced. A terminal error is
// written as a single JSON line; the relay guarantees nothing follows it.
func streamEvents(c *gin.Context, events <-chan relay.Event) {
	for event := range events {
		if event.Err != nil {
			payload, err := json.Marshal(gin.H{"error": event.Err.Error()})
			if err != nil {
				return
			}
			if _, err := c.Writer.Write(append(payload, '\n')); err != nil {
				return
			}
			c.Writer.Flush()
			return
		}

		if _, err := io.WriteString(c.Writer, event.Delta); err != nil {
			// client went away; the request context cancels the relay
			return
		}
		c.Writer.Flush()
	}
}
