package fan

import (
	"encoding/binary"
	"log"
	"sync"

	"github.com/qc71/QC71Manager/system/ec"
	"github.com/qc71/QC71Manager/system/persist"

	"github.com/pkg/errors"
)

const (
	persistKey = "PerformanceProfile"
)

// Profile bits in the fan control register. Any combination other than
// exactly one profile bit decodes as Balanced.
const (
	ctrlSilentMode byte = 0x04
	ctrlTurbo      byte = 0x10
	ctrlAuto       byte = 0x80

	profileBits = ctrlSilentMode | ctrlTurbo
)

// Profile is one of the three logical fan/performance states
type Profile int

// Defines the cycle order
const (
	Balanced Profile = iota
	Silent
	Turbo
)

func (p Profile) String() string {
	return [...]string{"balanced", "silent", "turbo"}[p]
}

// Next returns the profile following p in the fixed cyclic order
func (p Profile) Next() Profile {
	switch p {
	case Balanced:
		return Silent
	case Silent:
		return Turbo
	default:
		return Balanced
	}
}

func (p Profile) bits() byte {
	switch p {
	case Silent:
		return ctrlSilentMode
	case Turbo:
		return ctrlTurbo
	default:
		return 0
	}
}

func profileFromBits(b byte) Profile {
	switch b & profileBits {
	case ctrlSilentMode:
		return Silent
	case ctrlTurbo:
		return Turbo
	default:
		// zero and the both-bits pattern both collapse to Balanced
		return Balanced
	}
}

// Control cycles the fan/performance profile through the EC control
// register. The mutex serializes in-process callers only: the register
// itself is shared with the firmware, and a race between two
// near-simultaneous cycles can still lose or duplicate a transition.
type Control struct {
	mu          sync.RWMutex
	ec          ec.Control
	lastProfile Profile
}

// NewControl returns a profile cycler over the given EC
func NewControl(ctrl ec.Control) (*Control, error) {
	if ctrl == nil {
		return nil, errors.New("fan: nil EC control is invalid")
	}
	return &Control{
		ec: ctrl,
	}, nil
}

// CurrentProfile reads the control register and decodes the active profile
func (c *Control) CurrentProfile() (Profile, error) {
	status, err := c.ec.ReadByte(ec.FanCtrlAddr)
	if err != nil {
		return Balanced, err
	}
	return profileFromBits(status), nil
}

// Cycle reads the control register, advances to the next profile and writes
// it back with the automatic control bit asserted. Register IO failures
// degrade to a no-op; the write is not verified by a follow-up read.
func (c *Control) Cycle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	status, err := c.ec.ReadByte(ec.FanCtrlAddr)
	if err != nil {
		log.Printf("fan: cannot read control register: %s\n", err)
		return
	}

	next := profileFromBits(status).Next()
	c.write(status, next)
}

// SwitchToProfile sets a specific profile, preserving the non-profile bits
func (c *Control) SwitchToProfile(p Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	status, err := c.ec.ReadByte(ec.FanCtrlAddr)
	if err != nil {
		log.Printf("fan: cannot read control register: %s\n", err)
		return
	}
	c.write(status, p)
}

func (c *Control) write(status byte, next Profile) {
	value := (status &^ profileBits) | next.bits() | ctrlAuto
	if err := c.ec.WriteByte(ec.FanCtrlAddr, value); err != nil {
		log.Printf("fan: cannot write control register: %s\n", err)
		return
	}
	c.lastProfile = next
	log.Printf("fan: setting profile to: %s\n", next)
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

	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(c.lastProfile))
	return b
}

// Load satisfies persist.Registry
func (c *Control) Load(v []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(v) < 2 {
		return nil
	}
	p := Profile(binary.LittleEndian.Uint16(v))
	if p < Balanced || p > Turbo {
		return nil
	}
	c.lastProfile = p
	return nil
}

// Apply satisfies persist.Registry
func (c *Control) Apply() error {
	c.mu.Lock()
	profile := c.lastProfile
	c.mu.Unlock()

	c.SwitchToProfile(profile)
	return nil
}

// Close satisfies persist.Registry. The cycler owns the EC transport.
func (c *Control) Close() error {
	return c.ec.Close()
}
