package tcp

import (
	"bytes"
	"context"
	"sync/atomic"
	"time"

	logging "github.com/op/go-logging"
	"github.com/panjf2000/gnet/v2"
)

var log = logging.MustGetLogger("tcp")

const maxLineSize = 4096

// Server speaks the newline delimited command protocol on top of gnet.
type Server struct {
	gnet.BuiltinEventEngine

	dispatcher    *Dispatcher
	addr          string
	eng           gnet.Engine
	started       atomic.Bool
	connections   atomic.Int64
	totalRequests atomic.Uint64
	totalErrors   atomic.Uint64
	startTime     time.Time
}

func NewServer(dispatcher *Dispatcher) *Server {
	return &Server{dispatcher: dispatcher}
}

// ListenAndServe blocks until the engine stops.
func (s *Server) ListenAndServe(addr string) error {
	s.addr = addr
	s.startTime = time.Now()
	log.Infof("[TCP] Listening on %s", addr)

	return gnet.Run(s, "tcp://"+addr,
		gnet.WithMulticore(true),
		gnet.WithTCPKeepAlive(time.Minute),
		gnet.WithTCPNoDelay(gnet.TCPNoDelay),
		gnet.WithTicker(true),
	)
}

func (s *Server) OnBoot(eng gnet.Engine) gnet.Action {
	s.eng = eng
	s.started.Store(true)
	return gnet.None
}

func (s *Server) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	s.connections.Add(1)
	return nil, gnet.None
}

func (s *Server) OnClose(c gnet.Conn, err error) gnet.Action {
	s.connections.Add(-1)
	if err != nil {
		s.totalErrors.Add(1)
	}
	return gnet.None
}

// OnTraffic executes every complete line in the inbound buffer. A partial
// line stays buffered until more data arrives.
func (s *Server) OnTraffic(c gnet.Conn) gnet.Action {
	buf, err := c.Peek(-1)
	if err != nil {
		s.totalErrors.Add(1)
		return gnet.Close
	}

	processed := 0
	var out []byte
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimRight(buf[:i], "\r"))
		buf = buf[i+1:]
		processed += i + 1

		if line == "" {
			continue
		}
		s.totalRequests.Add(1)
		reply, ok := s.dispatcher.Execute(line)
		if !ok {
			s.totalErrors.Add(1)
		}
		out = append(out, reply...)
	}

	if processed > 0 {
		c.Discard(processed)
	}
	if len(out) > 0 {
		c.AsyncWrite(out, nil)
	}

	if len(buf) > maxLineSize {
		log.Warningf("[TCP] Line too long from %s, closing", c.RemoteAddr())
		s.totalErrors.Add(1)
		return gnet.Close
	}
	return gnet.None
}

func (s *Server) OnTick() (time.Duration, gnet.Action) {
	log.Debugf("[TCP] Conns: %d | Reqs: %d | Errors: %d",
		s.connections.Load(), s.totalRequests.Load(), s.totalErrors.Load())
	return 30 * time.Second, gnet.None
}

// Shutdown stops the engine. It is a no-op if the server never booted.
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.started.Swap(false) {
		return nil
	}
	log.Info("[TCP] Shutting down...")
	return s.eng.Stop(ctx)
}
