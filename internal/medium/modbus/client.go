// internal/medium/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Transport names accepted in Config.
const (
	TransportRTU = "rtu"
	TransportTCP = "tcp"
)

// registerClient is the exact subset of modbus.Client the medium uses.
type registerClient interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error)
}

// Config is minimal transport config.
type Config struct {
	Transport   string
	Endpoint    string // serial device (rtu) or host:port (tcp)
	SlaveID     uint8
	BaudRate    int
	Timeout     time.Duration
	BaseAddress uint16
}

// Client stores the configuration image in a device's holding registers.
// Two image bytes per register, big-endian: register n holds bytes 2n (high)
// and 2n+1 (low). Requests are serialised.
type Client struct {
	mu     sync.Mutex
	client registerClient
	close  func() error
	base   uint16

	needFull bool
	cache    []byte // last image known to be on the device, even length
}

// New connects to the device described by cfg.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("medium modbus: endpoint required")
	}

	switch cfg.Transport {
	case TransportTCP:
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.SlaveID
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("medium modbus: connect %s: %w", cfg.Endpoint, err)
		}
		return newClient(modbus.NewClient(h), h.Close, cfg.BaseAddress), nil

	case TransportRTU, "":
		h := modbus.NewRTUClientHandler(cfg.Endpoint)
		h.BaudRate = cfg.BaudRate
		h.DataBits = 8
		h.Parity = "N"
		h.StopBits = 1
		h.SlaveId = cfg.SlaveID
		h.Timeout = cfg.Timeout
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("medium modbus: open %s: %w", cfg.Endpoint, err)
		}
		return newClient(modbus.NewClient(h), h.Close, cfg.BaseAddress), nil

	default:
		return nil, fmt.Errorf("medium modbus: unsupported transport %q", cfg.Transport)
	}
}

func newClient(rc registerClient, closeFn func() error, base uint16) *Client {
	return &Client{
		client:   rc,
		close:    closeFn,
		base:     base,
		needFull: true, // full re-assert on first successful write
	}
}

// Close releases the transport.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.close == nil {
		return nil
	}
	return c.close()
}

// ReadImage reads size bytes from the register block.
func (c *Client) ReadImage(size int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	qty := registersFor(size)
	raw, err := c.client.ReadHoldingRegisters(c.base, qty)
	if err != nil {
		return nil, fmt.Errorf("medium modbus: read %d registers at %d: %w", qty, c.base, err)
	}
	if len(raw) < 2*int(qty) {
		return nil, fmt.Errorf("medium modbus: short read: got %d bytes want %d", len(raw), 2*int(qty))
	}

	c.cache = append(c.cache[:0], raw[:2*int(qty)]...)
	return append([]byte(nil), c.cache[:size]...), nil
}

// WriteAt writes data at image offset off.
// The first write (and the first after any failure) re-asserts the whole
// cached block; later writes only touch the registers data covers.
func (c *Client) WriteAt(off int, data []byte) error {
	if off < 0 {
		return fmt.Errorf("medium modbus: negative offset %d", off)
	}
	if len(data) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prev := append([]byte(nil), c.cache...)
	c.grow(off + len(data))
	copy(c.cache[off:], data)

	first, last := off/2, (off+len(data)-1)/2
	if c.needFull {
		first, last = 0, len(c.cache)/2-1
	}

	qty := uint16(last - first + 1)
	addr := c.base + uint16(first)
	if _, err := c.client.WriteMultipleRegisters(addr, qty, c.cache[2*first:2*(last+1)]); err != nil {
		c.cache = prev
		c.needFull = true
		return fmt.Errorf("medium modbus: write %d registers at %d: %w", qty, addr, err)
	}

	c.needFull = false
	return nil
}

// grow extends the cache (even length) to cover n bytes. Caller holds mu.
func (c *Client) grow(n int) {
	want := 2 * int(registersFor(n))
	if len(c.cache) >= want {
		return
	}
	grown := make([]byte, want)
	copy(grown, c.cache)
	c.cache = grown
}

func registersFor(size int) uint16 {
	return uint16((size + 1) / 2)
}
