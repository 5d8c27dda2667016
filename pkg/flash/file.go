// pkg/flash/file.go

package flash

import (
	"os"

	"github.com/pkg/errors"
)

// FileDevice is a MemDevice whose block image is persisted to a file, so
// separate processes see the same flash state. The image is loaded on open
// and written through after every successful erase or program.
type FileDevice struct {
	*MemDevice
	path string
}

// OpenFileDevice opens (or creates, fully erased) a block image of `size`
// bytes at path.
func OpenFileDevice(path string, base uint32, size int) (*FileDevice, error) {
	d := &FileDevice{
		MemDevice: NewMemDevice(base, size),
		path:      path,
	}
	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return d, d.flush()
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read image %s", path)
	}
	if len(buf) != size {
		return nil, errors.Errorf("image %s is %d bytes, want %d", path, len(buf), size)
	}
	d.setBytes(buf)
	return d, nil
}

func (d *FileDevice) ErasePage(addr uint32) error {
	if err := d.MemDevice.ErasePage(addr); err != nil {
		return err
	}
	return d.flush()
}

func (d *FileDevice) ProgramHalfWord(addr uint32, v uint16) error {
	if err := d.MemDevice.ProgramHalfWord(addr, v); err != nil {
		return err
	}
	return d.flush()
}

func (d *FileDevice) flush() error {
	return errors.Wrapf(os.WriteFile(d.path, d.Bytes(), 0644), "write image %s", d.path)
}
