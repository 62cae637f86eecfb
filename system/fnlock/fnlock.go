package fnlock

import (
	"sync"

	"github.com/qc71/QC71Manager/system/ec"
	"github.com/qc71/QC71Manager/system/persist"

	"github.com/pkg/errors"
)

const (
	persistKey = "FnLock"
)

const fnLockMask byte = 0x10

// Control reads and writes the Fn lock bit in the firmware control register
type Control struct {
	mu        sync.RWMutex
	ec        ec.Control
	lastState int
}

// NewControl returns a Fn lock store over the given EC
func NewControl(ctrl ec.Control) (*Control, error) {
	if ctrl == nil {
		return nil, errors.New("fnlock: nil EC control is invalid")
	}
	return &Control{
		ec: ctrl,
	}, nil
}

// GetState returns the current Fn lock state (0 or 1)
func (c *Control) GetState() (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status, err := c.ec.ReadByte(ec.BiosCtrl1Addr)
	if err != nil {
		return 0, err
	}
	if status&fnLockMask != 0 {
		return 1, nil
	}
	return 0, nil
}

// SetState writes the Fn lock bit, preserving the other register bits
func (c *Control) SetState(state int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	status, err := c.ec.ReadByte(ec.BiosCtrl1Addr)
	if err != nil {
		return err
	}

	value := status &^ fnLockMask
	if state != 0 {
		value |= fnLockMask
	}
	if err := c.ec.WriteByte(ec.BiosCtrl1Addr, value); err != nil {
		return err
	}

	c.lastState = 0
	if state != 0 {
		c.lastState = 1
	}
	return nil
}

var _ persist.Registry = &Control{}

// Name satisfies persist.Registry
func (c *Control) Name() string {
	return persistKey
}

// Value satisfies persist.Registry
func (c *Control) Value() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return []byte{byte(c.lastState)}
}

// Load satisfies persist.Registry
func (c *Control) Load(v []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(v) == 0 {
		return nil
	}
	c.lastState = int(v[0] & 1)
	return nil
}

// Apply satisfies persist.Registry
func (c *Control) Apply() error {
	c.mu.RLock()
	state := c.lastState
	c.mu.RUnlock()

	return c.SetState(state)
}

// Close satisfies persist.Registry. The EC transport is owned by the fan
// control; nothing to release here.
func (c *Control) Close() error {
	return nil
}
