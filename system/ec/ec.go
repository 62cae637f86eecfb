package ec

// Defines the embedded controller register addresses used by this module
const (
	FanCtrlAddr   = 0x1808
	BiosCtrl1Addr = 0x1840
)

// Control provides byte-granularity access to the embedded controller
// address space. Read and write failures are recoverable by design: callers
// treat them as no-ops and the register as the sole source of truth.
type Control interface {
	// ReadByte returns the byte at the given EC address
	ReadByte(addr int64) (byte, error)
	// WriteByte stores the byte at the given EC address
	WriteByte(addr int64, value byte) error
	// Close releases the underlying transport
	Close() error
}
