package fnlock

import (
	"testing"

	"github.com/qc71/QC71Manager/system/ec"

	"github.com/stretchr/testify/require"
)

func TestGetSetState(t *testing.T) {
	dry := ec.NewDryControl()
	control, err := NewControl(dry)
	require.NoError(t, err)

	state, err := control.GetState()
	require.NoError(t, err)
	require.Equal(t, 0, state)

	require.NoError(t, control.SetState(1))
	state, err = control.GetState()
	require.NoError(t, err)
	require.Equal(t, 1, state)

	require.NoError(t, control.SetState(0))
	state, err = control.GetState()
	require.NoError(t, err)
	require.Equal(t, 0, state)
}

func TestSetStatePreservesOtherBits(t *testing.T) {
	dry := ec.NewDryControl()
	require.NoError(t, dry.WriteByte(ec.BiosCtrl1Addr, 0x4b))

	control, err := NewControl(dry)
	require.NoError(t, err)

	require.NoError(t, control.SetState(1))
	status, err := dry.ReadByte(ec.BiosCtrl1Addr)
	require.NoError(t, err)
	require.Equal(t, byte(0x4b|fnLockMask), status)

	require.NoError(t, control.SetState(0))
	status, err = dry.ReadByte(ec.BiosCtrl1Addr)
	require.NoError(t, err)
	require.Equal(t, byte(0x4b), status)
}

func TestFnLockPersist(t *testing.T) {
	dry := ec.NewDryControl()
	control, err := NewControl(dry)
	require.NoError(t, err)
	require.NoError(t, control.SetState(1))

	require.NotEmpty(t, control.Name())

	b := control.Value()
	require.NotEmpty(t, b)

	loaded, err := NewControl(ec.NewDryControl())
	require.NoError(t, err)

	require.NoError(t, loaded.Load(b))
	require.Equal(t, 1, loaded.lastState)

	require.NoError(t, loaded.Apply())
	state, err := loaded.GetState()
	require.NoError(t, err)
	require.Equal(t, 1, state)
}
