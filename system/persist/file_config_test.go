package persist

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type mockConfig struct {
	bytes   []byte
	applied int
}

func (m *mockConfig) Name() string        { return "MockConfig" }
func (m *mockConfig) Value() []byte       { return m.bytes }
func (m *mockConfig) Load(v []byte) error { m.bytes = v; return nil }
func (m *mockConfig) Apply() error        { m.applied++; return nil }
func (m *mockConfig) Close() error        { return nil }

var _ Registry = &mockConfig{}

func tempStatePath(t *testing.T) string {
	dir, err := ioutil.TempDir("", "persist-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "state.bin")
}

func TestPersistRoundTrip(t *testing.T) {
	expectedBytes := []byte{1, 2, 3, 4, 5, 6}
	path := tempStatePath(t)

	h, err := NewFileConfigHelper(path)
	require.NoError(t, err)

	m := mockConfig{
		bytes: expectedBytes,
	}
	h.Register(&m)

	require.NoError(t, h.Save())

	hL, err := NewFileConfigHelper(path)
	require.NoError(t, err)

	loaded := mockConfig{}
	hL.Register(&loaded)

	require.NoError(t, hL.Load())
	require.EqualValues(t, expectedBytes, loaded.bytes)
}

func TestLoadMissingFileIsNoOp(t *testing.T) {
	h, err := NewFileConfigHelper(tempStatePath(t))
	require.NoError(t, err)

	m := mockConfig{bytes: []byte{9}}
	h.Register(&m)

	require.NoError(t, h.Load())
	require.EqualValues(t, []byte{9}, m.bytes)
}

type brokenConfig struct {
	mockConfig
}

func (b *brokenConfig) Name() string        { return "BrokenConfig" }
func (b *brokenConfig) Load(v []byte) error { return errors.New("stale binary format") }

func TestLoadContinuesPastFailingConfig(t *testing.T) {
	path := tempStatePath(t)

	h, err := NewFileConfigHelper(path)
	require.NoError(t, err)
	good := mockConfig{bytes: []byte{7, 7}}
	h.Register(&good)
	h.Register(&brokenConfig{})
	require.NoError(t, h.Save())

	hL, err := NewFileConfigHelper(path)
	require.NoError(t, err)
	loaded := mockConfig{}
	hL.Register(&loaded)
	hL.Register(&brokenConfig{})

	// a config rejecting its binary value must not abort the load
	require.NoError(t, hL.Load())
	require.EqualValues(t, []byte{7, 7}, loaded.bytes)
}

func TestApplyReachesEveryConfig(t *testing.T) {
	h, err := NewFileConfigHelper(tempStatePath(t))
	require.NoError(t, err)

	m := mockConfig{}
	h.Register(&m)

	require.NoError(t, h.Apply())
	require.Equal(t, 1, m.applied)
}
