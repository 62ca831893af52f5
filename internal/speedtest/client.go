// Package speedtest wraps the speedtest.net client behind a small interface
// the monitor loop and the headless commands share.
package speedtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	st "github.com/showwin/speedtest-go/speedtest"
)

// Result is one completed measurement.
type Result struct {
	Timestamp    time.Time
	DownloadMbps float64
	UploadMbps   float64
	LatencyMs    float64
	ServerName   string
	ServerHost   string
}

// Tester runs speed measurements. The monitor loop depends on this interface
// so tests can substitute a fake.
type Tester interface {
	Measure(ctx context.Context) (Result, error)
}

// ErrNotInitialized is returned when Measure is called before Init succeeded.
var ErrNotInitialized = errors.New("speedtest client not initialized")

// Client is a Tester backed by speedtest.net. A single mutex guards the
// underlying client handle; measurements never run concurrently.
type Client struct {
	mu      sync.Mutex
	client  *st.Speedtest
	server  *st.Server
	timeout time.Duration
}

// NewClient creates an uninitialized client. timeout bounds each measurement
// phase (ping, download, upload).
func NewClient(timeout time.Duration) *Client {
	return &Client{
		client:  st.New(),
		timeout: timeout,
	}
}

// Init fetches the server list and selects a target server. serverID pins a
// specific server; 0 selects the closest by latency.
func (c *Client) Init(ctx context.Context, serverID int) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	servers, err := c.client.FetchServerListContext(ctx)
	if err != nil {
		return fmt.Errorf("fetch server list: %w", err)
	}

	var ids []int
	if serverID > 0 {
		ids = []int{serverID}
	}
	targets, err := servers.FindServer(ids)
	if err != nil {
		return fmt.Errorf("select server: %w", err)
	}
	if len(targets) == 0 {
		return errors.New("no speedtest servers available")
	}

	c.mu.Lock()
	c.server = targets[0]
	c.mu.Unlock()
	return nil
}

// Server returns the selected server's name and host, or empty strings before
// Init.
func (c *Client) Server() (name, host string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.server == nil {
		return "", ""
	}
	return c.server.Name, c.server.Host
}

// Measure runs ping, download and upload against the selected server and
// returns the speeds in Mbps.
func (c *Client) Measure(ctx context.Context) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.server == nil {
		return Result{}, ErrNotInitialized
	}
	srv := c.server

	if err := c.phase(ctx, func(pc context.Context) error {
		return srv.PingTestContext(pc, nil)
	}); err != nil {
		return Result{}, fmt.Errorf("ping test: %w", err)
	}
	if err := c.phase(ctx, srv.DownloadTestContext); err != nil {
		return Result{}, fmt.Errorf("download test: %w", err)
	}
	if err := c.phase(ctx, srv.UploadTestContext); err != nil {
		return Result{}, fmt.Errorf("upload test: %w", err)
	}

	res := Result{
		Timestamp:    time.Now(),
		DownloadMbps: srv.DLSpeed.Mbps(),
		UploadMbps:   srv.ULSpeed.Mbps(),
		LatencyMs:    float64(srv.Latency) / float64(time.Millisecond),
		ServerName:   srv.Name,
		ServerHost:   srv.Host,
	}

	// Reset the transfer manager so the next cycle starts from clean rate
	// counters.
	srv.Context.Reset()
	return res, nil
}

func (c *Client) phase(ctx context.Context, run func(context.Context) error) error {
	pc, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return run(pc)
}
