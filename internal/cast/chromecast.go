package cast

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/vishen/go-chromecast/application"
	castv2 "github.com/vishen/go-chromecast/cast"

	"github.com/claes/dirigible/internal/model"
)

const defaultCastPort = 8009

// Chromecast plays descriptors on a Chromecast reachable at a fixed address.
// The connection is opened on first use and reused.
type Chromecast struct {
	host string
	port int

	mu        sync.Mutex
	app       *application.Application
	conn      castv2.Conn
	requestID int
}

var _ Player = (*Chromecast)(nil)

// NewChromecast parses addr as host or host:port.
func NewChromecast(addr string) (*Chromecast, error) {
	host, port := addr, defaultCastPort
	if h, p, err := net.SplitHostPort(addr); err == nil {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 || n > 65535 {
			return nil, fmt.Errorf("invalid chromecast port %q", p)
		}
		host, port = h, n
	}
	if host == "" {
		return nil, fmt.Errorf("missing chromecast host")
	}
	return &Chromecast{host: host, port: port}, nil
}

func (c *Chromecast) Addr() string {
	return net.JoinHostPort(c.host, strconv.Itoa(c.port))
}

func (c *Chromecast) connect() error {
	if c.app != nil {
		return nil
	}
	conn := castv2.NewConnection()
	app := application.NewApplication(
		application.WithDebug(false),
		application.WithCacheDisabled(true),
		application.WithConnection(conn),
	)
	if err := app.Start(c.host, c.port); err != nil {
		_ = conn.Close()
		return fmt.Errorf("connecting to chromecast: %w", err)
	}
	c.app, c.conn = app, conn
	return nil
}

// Play loads mi on the default media receiver, launching it first when
// another app is in front. The whole descriptor is sent, metadata included.
func (c *Chromecast) Play(ctx context.Context, mi model.MediaInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.connect(); err != nil {
		return err
	}
	s := &castSession{conn: c.conn, app: c.app, nextID: &c.requestID}
	if err := s.load(ctx, mi); err != nil {
		// drop the session so the next call reconnects
		_ = c.app.Close(false)
		c.app, c.conn = nil, nil
		return fmt.Errorf("load media: %w", err)
	}
	return nil
}

func (c *Chromecast) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.app == nil {
		return nil
	}
	err := c.app.Close(false)
	c.app, c.conn = nil, nil
	return err
}
