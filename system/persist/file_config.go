package persist

import (
	"bytes"
	"encoding/gob"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const defaultStatePath = "/var/lib/qc71manager/state.bin"

// FileConfigHelper contains a list of configurations to be loaded, saved,
// and applied; the backing storage is a gob-encoded file
type FileConfigHelper struct {
	mu            sync.Mutex
	alreadyClosed bool
	configs       map[string]Registry
	path          string
}

var _ ConfigRegistry = &FileConfigHelper{}

// NewFileConfigHelper returns a helper to persist config to a state file.
// An empty path selects the default location.
func NewFileConfigHelper(path string) (ConfigRegistry, error) {
	if path == "" {
		path = defaultStatePath
	}
	return &FileConfigHelper{
		configs: make(map[string]Registry),
		path:    path,
	}, nil
}

// Register will add the config to the list
func (h *FileConfigHelper) Register(config Registry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.configs[config.Name()] = config
}

// Load will read the state file and populate each config
func (h *FileConfigHelper) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, err := ioutil.ReadFile(h.path)
	if os.IsNotExist(err) {
		// nothing to load
		return nil
	}
	if err != nil {
		return err
	}

	values := make(map[string][]byte)
	dec := gob.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&values); err != nil {
		log.Printf("persist: state file is unreadable, starting fresh: %s\n", err)
		return nil
	}

	for _, config := range h.configs {
		log.Printf("persist: loading \"%s\" from the state file\n", config.Name())
		if err := config.Load(values[config.Name()]); err != nil {
			log.Printf("persist: error loading \"%s\": %s\n", config.Name(), err)
		}
	}

	return nil
}

// Save will persist all the configs to the state file as binary values
func (h *FileConfigHelper) Save() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	values := make(map[string][]byte)
	for _, config := range h.configs {
		log.Printf("persist: saving \"%s\" to the state file\n", config.Name())
		values[config.Name()] = config.Value()
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(values); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return err
	}

	// write-then-rename so a crash never leaves a truncated state file
	tmp := h.path + ".tmp"
	if err := ioutil.WriteFile(tmp, buf.Bytes(), 0600); err != nil {
		return err
	}
	return os.Rename(tmp, h.path)
}

// Apply will apply each config accordingly. This is usually called after Load()
func (h *FileConfigHelper) Apply() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, config := range h.configs {
		log.Printf("persist: applying \"%s\" config\n", config.Name())
		err := config.Apply()
		if err != nil {
			log.Printf("persist: error applying \"%s\": %s\n", config.Name(), err)
			return err
		}
		time.Sleep(time.Millisecond * 25) // allow time for hardware configuration to propagate
	}

	return nil
}

// Close will release resources of each config
func (h *FileConfigHelper) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.alreadyClosed {
		return
	}
	h.alreadyClosed = true

	for _, config := range h.configs {
		log.Printf("persist: closing \"%s\"\n", config.Name())
		err := config.Close()
		if err != nil {
			log.Printf("persist: error closing \"%s\": %s\n", config.Name(), err)
		}
	}
}
