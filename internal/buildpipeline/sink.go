package buildpipeline

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ChannelSink forwards events into Ch. Sends block; the reader must drain
// Ch until the build returns.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// LogSink writes one line per song that finished or failed. Events of
// earlier stages are ignored.
type LogSink struct {
	W  io.Writer
	mu sync.Mutex
}

func (s *LogSink) OnEvent(evt Event) {
	if s == nil || s.W == nil || evt.File == "" {
		return
	}
	var line string
	switch {
	case evt.Status == StatusError:
		line = fmt.Sprintf("error  %s (%s): %v", evt.File, evt.Stage, evt.Err)
	case evt.Status == StatusDone && evt.Stage == StageRender:
		line = fmt.Sprintf("done   %s %s", evt.File, evt.Elapsed.Round(time.Microsecond))
	default:
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.W, line)
}
