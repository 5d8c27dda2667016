// pkg/flash/file_test.go

package flash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenFileDeviceCreatesImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.img")
	d, err := OpenFileDevice(path, testBase, testBlockSize)
	assert.Nil(t, err)
	assert.Equal(t, Erased, d.ReadHalfWord(testBase))

	info, err := os.Stat(path)
	assert.Nil(t, err)
	assert.Equal(t, int64(testBlockSize), info.Size())
}

func TestFileDevicePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.img")
	d, err := OpenFileDevice(path, testBase, testBlockSize)
	assert.Nil(t, err)
	d.Unlock()
	assert.Nil(t, d.ProgramHalfWord(testBase, 0x5A5A))
	assert.Nil(t, d.ProgramHalfWord(testBase+4, 0x0001))
	d.Lock()

	d2, err := OpenFileDevice(path, testBase, testBlockSize)
	assert.Nil(t, err)
	assert.Equal(t, uint16(0x5A5A), d2.ReadHalfWord(testBase))
	assert.Equal(t, uint16(0x0001), d2.ReadHalfWord(testBase+4))
	assert.Equal(t, Erased, d2.ReadHalfWord(testBase+6))
}

func TestFileDeviceErasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.img")
	d, err := OpenFileDevice(path, testBase, testBlockSize)
	assert.Nil(t, err)
	d.Unlock()
	assert.Nil(t, d.ProgramHalfWord(testBase, 0))
	assert.Nil(t, d.ErasePage(testBase))
	d.Lock()

	d2, err := OpenFileDevice(path, testBase, testBlockSize)
	assert.Nil(t, err)
	assert.Equal(t, Erased, d2.ReadHalfWord(testBase))
}

func TestOpenFileDeviceSizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.img")
	assert.Nil(t, os.WriteFile(path, make([]byte, 16), 0644))
	_, err := OpenFileDevice(path, testBase, testBlockSize)
	assert.NotNil(t, err)
}
