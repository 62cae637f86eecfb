package ec

import (
	"os"
	"sync"

	"github.com/pkg/errors"
)

// ecIoPath is exposed by the ec_sys kernel module and maps the EC address
// space as a seekable file
const ecIoPath = "/sys/kernel/debug/ec/ec0/io"

type debugfsControl struct {
	mu   sync.Mutex
	file *os.File
}

var _ Control = &debugfsControl{}

// NewDebugfsControl opens the EC IO file exposed by ec_sys. The file stays
// open for the lifetime of the control; requires ec_sys to be loaded with
// write_support=1.
func NewDebugfsControl() (Control, error) {
	f, err := os.OpenFile(ecIoPath, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrap(err, "ec: cannot open EC IO file")
	}
	return &debugfsControl{
		file: f,
	}, nil
}

func (c *debugfsControl) ReadByte(addr int64) (byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf := make([]byte, 1)
	if _, err := c.file.ReadAt(buf, addr); err != nil {
		return 0, errors.Wrapf(err, "ec: cannot read address %#x", addr)
	}
	return buf[0], nil
}

func (c *debugfsControl) WriteByte(addr int64, value byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.file.WriteAt([]byte{value}, addr); err != nil {
		return errors.Wrapf(err, "ec: cannot write address %#x", addr)
	}
	return nil
}

func (c *debugfsControl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.file.Close()
}
