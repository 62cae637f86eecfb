package persist

import "log"

type dryConfigHelper struct {
	ConfigRegistry
}

var _ ConfigRegistry = &dryConfigHelper{}

// NewDryConfigHelper returns a helper that applies configs but never touches
// the backing storage
func NewDryConfigHelper() (ConfigRegistry, error) {
	helper, _ := NewFileConfigHelper("")
	log.Println("[dry run] persist: initializing config registry without save IOs")
	return &dryConfigHelper{
		ConfigRegistry: helper,
	}, nil
}

// Load will do nothing
func (d *dryConfigHelper) Load() error {
	return nil
}

// Save will do nothing
func (d *dryConfigHelper) Save() error {
	return nil
}
