package ec

import (
	"log"
	"sync"

	"github.com/pkg/errors"
)

// DryControl is an in-memory EC without actual IOs. Registers read as zero
// until written. Reads and writes can be failed on demand for tests.
type DryControl struct {
	mu        sync.Mutex
	registers map[int64]byte
	failReads bool
}

var _ Control = &DryControl{}

// NewDryControl returns an EC control without actual IOs
func NewDryControl() *DryControl {
	log.Println("[dry run] ec: initializing EC without IOs")
	return &DryControl{
		registers: make(map[int64]byte),
	}
}

// FailReads makes every subsequent ReadByte return an error
func (d *DryControl) FailReads(fail bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.failReads = fail
}

func (d *DryControl) ReadByte(addr int64) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failReads {
		return 0, errors.New("ec: read failure")
	}
	return d.registers[addr], nil
}

func (d *DryControl) WriteByte(addr int64, value byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.registers[addr] = value
	return nil
}

func (d *DryControl) Close() error {
	return nil
}
