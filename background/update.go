package background

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/qc71/QC71Manager/util"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

const updateInterval = time.Hour * 6

// Updater watches the project's published releases and raises a user
// notification when one newer than the running version appears
type Updater struct {
	current  *semver.Version
	notifier chan<- util.Notification
	interval time.Duration
	fetch    func() (*semver.Version, error)
}

func NewUpdater(current string, repo string, notifier chan<- util.Notification) (*Updater, error) {
	v, err := semver.NewVersion(current)
	if err != nil {
		return nil, errors.Wrapf(err, "background: cannot parse running version %q", current)
	}
	return &Updater{
		current:  v,
		notifier: notifier,
		interval: updateInterval,
		fetch:    fetchLatestRelease(repo),
	}, nil
}

func (u *Updater) String() string {
	return "Updater"
}

func (u *Updater) Serve(haltCtx context.Context) error {
	log.Println("[updates] starting release watch")

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		u.check()
		select {
		case <-ticker.C:
		case <-haltCtx.Done():
			log.Println("[updates] stopping release watch")
			return nil
		}
	}
}

func (u *Updater) check() {
	latest, err := u.fetch()
	if err != nil {
		log.Printf("[updates] cannot fetch the latest release: %s\n", err)
		return
	}
	if !latest.GreaterThan(u.current) {
		return
	}

	log.Printf("[updates] new release available: %s\n", latest)
	select {
	case u.notifier <- util.Notification{
		Title:   "Update available",
		Message: fmt.Sprintf("QC71Manager %s has been released (running %s)", latest, u.current),
	}:
	default:
		// the notifier is best effort; never stall the watch loop
	}
}

func fetchLatestRelease(repo string) func() (*semver.Version, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", repo)
	client := &http.Client{
		Timeout: time.Second * 10,
	}
	return func() (*semver.Version, error) {
		res, err := client.Get(url)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return nil, errors.Errorf("background: release endpoint returned %d", res.StatusCode)
		}

		var r struct {
			TagName string `json:"tag_name"`
		}
		if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
			return nil, err
		}
		return semver.NewVersion(r.TagName)
	}
}
