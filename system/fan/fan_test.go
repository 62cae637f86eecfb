package fan

import (
	"testing"

	"github.com/qc71/QC71Manager/system/ec"

	"github.com/stretchr/testify/require"
)

func TestCycleOrder(t *testing.T) {
	cases := []struct {
		current Profile
		next    Profile
	}{
		{Balanced, Silent},
		{Silent, Turbo},
		{Turbo, Balanced},
	}

	for _, c := range cases {
		dry := ec.NewDryControl()
		require.NoError(t, dry.WriteByte(ec.FanCtrlAddr, c.current.bits()))

		control, err := NewControl(dry)
		require.NoError(t, err)

		control.Cycle()

		status, err := dry.ReadByte(ec.FanCtrlAddr)
		require.NoError(t, err)
		require.Equal(t, c.next, profileFromBits(status))
		require.Equal(t, ctrlAuto, status&ctrlAuto, "automatic bit must be asserted on every transition")
	}
}

func TestCycleThreeTimesReturnsToStart(t *testing.T) {
	for _, start := range []Profile{Balanced, Silent, Turbo} {
		dry := ec.NewDryControl()
		require.NoError(t, dry.WriteByte(ec.FanCtrlAddr, start.bits()))

		control, err := NewControl(dry)
		require.NoError(t, err)

		control.Cycle()
		control.Cycle()
		control.Cycle()

		status, err := dry.ReadByte(ec.FanCtrlAddr)
		require.NoError(t, err)
		require.Equal(t, start, profileFromBits(status))
		require.Equal(t, ctrlAuto, status&ctrlAuto)
	}
}

func TestUnrecognizedBitsCollapseToBalanced(t *testing.T) {
	dry := ec.NewDryControl()
	// the raw encoding admits a fourth pattern with both profile bits set
	require.NoError(t, dry.WriteByte(ec.FanCtrlAddr, ctrlSilentMode|ctrlTurbo))

	control, err := NewControl(dry)
	require.NoError(t, err)

	current, err := control.CurrentProfile()
	require.NoError(t, err)
	require.Equal(t, Balanced, current)

	control.Cycle()

	status, err := dry.ReadByte(ec.FanCtrlAddr)
	require.NoError(t, err)
	require.Equal(t, Silent, profileFromBits(status))
}

func TestCyclePreservesOtherBits(t *testing.T) {
	dry := ec.NewDryControl()
	require.NoError(t, dry.WriteByte(ec.FanCtrlAddr, 0x43|ctrlSilentMode))

	control, err := NewControl(dry)
	require.NoError(t, err)

	control.Cycle()

	status, err := dry.ReadByte(ec.FanCtrlAddr)
	require.NoError(t, err)
	require.Equal(t, byte(0x43), status&^(profileBits|ctrlAuto))
	require.Equal(t, Turbo, profileFromBits(status))
}

func TestCycleReadFailureIsNoOp(t *testing.T) {
	dry := ec.NewDryControl()
	require.NoError(t, dry.WriteByte(ec.FanCtrlAddr, ctrlSilentMode))
	dry.FailReads(true)

	control, err := NewControl(dry)
	require.NoError(t, err)

	control.Cycle()
	dry.FailReads(false)

	status, err := dry.ReadByte(ec.FanCtrlAddr)
	require.NoError(t, err)
	require.Equal(t, ctrlSilentMode, status, "no write may happen when the read fails")
}

func TestFanPersist(t *testing.T) {
	dry := ec.NewDryControl()
	control, err := NewControl(dry)
	require.NoError(t, err)
	control.lastProfile = Turbo

	require.NotEmpty(t, control.Name())

	b := control.Value()
	require.NotEmpty(t, b)

	loaded, err := NewControl(ec.NewDryControl())
	require.NoError(t, err)

	require.NoError(t, loaded.Load(b))
	require.Equal(t, Turbo, loaded.lastProfile)
}
