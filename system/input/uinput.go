package input

import (
	"bytes"
	"encoding/binary"
	"os"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const uinputPath = "/dev/uinput"

const deviceName = "QC71 laptop input device"

// ioctl request encoding (Linux _IOC macro)
const (
	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	iocNone  = 0
	iocWrite = 1
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr((dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift))
}

// uinput ioctl requests
var (
	uiSetEvBit   = ioc(iocWrite, 'U', 100, 4) // UI_SET_EVBIT
	uiSetKeyBit  = ioc(iocWrite, 'U', 101, 4) // UI_SET_KEYBIT
	uiSetSwBit   = ioc(iocWrite, 'U', 109, 4) // UI_SET_SWBIT
	uiDevCreate  = ioc(iocNone, 'U', 1, 0)    // UI_DEV_CREATE
	uiDevDestroy = ioc(iocNone, 'U', 2, 0)    // UI_DEV_DESTROY
)

// uinputUserDev mirrors struct uinput_user_dev
type uinputUserDev struct {
	Name [80]byte
	ID   struct {
		BusType uint16
		Vendor  uint16
		Product uint16
		Version uint16
	}
	FFEffectsMax uint32
	AbsMax       [64]int32
	AbsMin       [64]int32
	AbsFuzz      [64]int32
	AbsFlat      [64]int32
}

type uinputDevice struct {
	file *os.File
}

var _ Device = &uinputDevice{}

// NewUinputDevice registers a virtual input device through /dev/uinput with
// the key and switch capabilities of the hotkey keymap
func NewUinputDevice() (Device, error) {
	f, err := os.OpenFile(uinputPath, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, errors.Wrap(err, "input: cannot open uinput")
	}

	d := &uinputDevice{file: f}

	for _, ev := range []uint16{EvKey, EvSw} {
		if err := d.ioctl(uiSetEvBit, uintptr(ev)); err != nil {
			f.Close()
			return nil, errors.Wrap(err, "input: cannot set event bit")
		}
	}
	for _, e := range Keymap {
		switch e.Action {
		case ActionIgnore, ActionKey:
			if err := d.ioctl(uiSetKeyBit, uintptr(e.Key)); err != nil {
				f.Close()
				return nil, errors.Wrapf(err, "input: cannot set key bit %d", e.Key)
			}
		case ActionSwitch:
			if err := d.ioctl(uiSetSwBit, uintptr(e.Switch)); err != nil {
				f.Close()
				return nil, errors.Wrapf(err, "input: cannot set switch bit %d", e.Switch)
			}
		}
	}

	var spec uinputUserDev
	copy(spec.Name[:], deviceName)
	spec.ID.BusType = BusHost

	buf := bytes.Buffer{}
	if err := binary.Write(&buf, binary.LittleEndian, &spec); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "input: cannot write device spec")
	}

	if err := d.ioctl(uiDevCreate, 0); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "input: cannot create device")
	}

	return d, nil
}

func (d *uinputDevice) ioctl(req uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.file.Fd(), req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

// inputEvent mirrors struct input_event on 64-bit platforms
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

func (d *uinputDevice) WriteEvent(evType uint16, code uint16, value int32) error {
	now := time.Now()
	ev := inputEvent{
		Sec:   now.Unix(),
		Usec:  int64(now.Nanosecond() / 1000),
		Type:  evType,
		Code:  code,
		Value: value,
	}

	buf := make([]byte, int(unsafe.Sizeof(ev)))
	binary.LittleEndian.PutUint64(buf[0:], uint64(ev.Sec))
	binary.LittleEndian.PutUint64(buf[8:], uint64(ev.Usec))
	binary.LittleEndian.PutUint16(buf[16:], ev.Type)
	binary.LittleEndian.PutUint16(buf[18:], ev.Code)
	binary.LittleEndian.PutUint32(buf[20:], uint32(ev.Value))

	_, err := d.file.Write(buf)
	return err
}

func (d *uinputDevice) Close() error {
	// destroy before closing so the kernel unregisters the device
	d.ioctl(uiDevDestroy, 0)
	return d.file.Close()
}
