package background

import (
	"testing"
	"time"

	"github.com/qc71/QC71Manager/util"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newTestUpdater(t *testing.T, running string, latest string, fetchErr error) (*Updater, chan util.Notification) {
	notifier := make(chan util.Notification, 1)
	u, err := NewUpdater(running, "qc71/QC71Manager", notifier)
	require.NoError(t, err)

	u.fetch = func() (*semver.Version, error) {
		if fetchErr != nil {
			return nil, fetchErr
		}
		return semver.NewVersion(latest)
	}
	return u, notifier
}

func TestUpdaterNotifiesOnNewerRelease(t *testing.T) {
	u, notifier := newTestUpdater(t, "v1.2.3", "v1.3.0", nil)

	u.check()

	select {
	case msg := <-notifier:
		require.Contains(t, msg.Message, "v1.3.0")
	case <-time.After(time.Second):
		t.Fatal("expected an update notification")
	}
}

func TestUpdaterStaysQuietOnSameOrOlderRelease(t *testing.T) {
	for _, latest := range []string{"v1.2.3", "v1.0.0"} {
		u, notifier := newTestUpdater(t, "v1.2.3", latest, nil)

		u.check()

		select {
		case msg := <-notifier:
			t.Fatalf("unexpected notification for %s: %+v", latest, msg)
		default:
		}
	}
}

func TestUpdaterRecoversFromFetchFailure(t *testing.T) {
	u, notifier := newTestUpdater(t, "v1.2.3", "", errors.New("endpoint unavailable"))

	u.check()
	require.Empty(t, notifier)

	u.fetch = func() (*semver.Version, error) {
		return semver.NewVersion("v2.0.0")
	}
	u.check()
	require.Len(t, notifier, 1)
}

func TestUpdaterRejectsUnparseableRunningVersion(t *testing.T) {
	_, err := NewUpdater("not-a-version", "qc71/QC71Manager", nil)
	require.Error(t, err)
}
