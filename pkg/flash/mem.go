// pkg/flash/mem.go

package flash

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const defaultSpinLimit = 50000

// MemDevice emulates one flash erase block in memory. Erase sets every
// half-word to Erased; programming can only clear bits, so reprogramming a
// non-erased cell fails verification the same way real hardware does.
// The zero value is not usable, call NewMemDevice.
type MemDevice struct {
	base      uint32
	cells     []uint16
	locked    bool
	spinLimit int

	busy      int // busy polls remaining before the device reports ready
	stuck     bool
	failAfter int // erase/program ops until injected failures, -1 disables
}

// NewMemDevice creates a locked, fully erased block of `size` bytes
// starting at base. Size must be a multiple of 2.
func NewMemDevice(base uint32, size int) *MemDevice {
	m := &MemDevice{
		base:      base,
		cells:     make([]uint16, size/2),
		locked:    true,
		spinLimit: defaultSpinLimit,
		failAfter: -1,
	}
	for i := range m.cells {
		m.cells[i] = Erased
	}
	return m
}

func (m *MemDevice) Unlock() {
	m.locked = false
}

func (m *MemDevice) Lock() {
	m.locked = true
}

// Locked reports the lock state, so tests can check that the engine
// restores the lock on every exit path.
func (m *MemDevice) Locked() bool {
	return m.locked
}

func (m *MemDevice) WaitReady() error {
	for i := 0; i < m.spinLimit; i++ {
		if m.stuck {
			continue
		}
		if m.busy > 0 {
			m.busy--
			continue
		}
		return nil
	}
	return ErrTimeout
}

func (m *MemDevice) ErasePage(addr uint32) error {
	if m.locked {
		return ErrLocked
	}
	if _, err := m.index(addr); err != nil {
		return err
	}
	if m.faulted() {
		return ErrVerify
	}
	for i := range m.cells {
		m.cells[i] = Erased
	}
	m.busy = 1
	if m.cells[0] != Erased {
		return ErrVerify
	}
	return nil
}

func (m *MemDevice) ProgramHalfWord(addr uint32, v uint16) error {
	if m.locked {
		return ErrLocked
	}
	i, err := m.index(addr)
	if err != nil {
		return err
	}
	if !m.faulted() {
		m.cells[i] &= v // one-shot, can only clear bits
	}
	m.busy = 1
	if m.cells[i] != v {
		return ErrVerify
	}
	return nil
}

func (m *MemDevice) ReadHalfWord(addr uint32) uint16 {
	i, err := m.index(addr)
	if err != nil {
		return Erased
	}
	return m.cells[i]
}

func (m *MemDevice) index(addr uint32) (int, error) {
	if addr < m.base || addr >= m.base+uint32(len(m.cells))*2 {
		return 0, errors.Errorf("flash: address 0x%08X out of block", addr)
	}
	return int(addr-m.base) / 2, nil
}

func (m *MemDevice) faulted() bool {
	if m.failAfter < 0 {
		return false
	}
	if m.failAfter == 0 {
		return true
	}
	m.failAfter--
	return false
}

// SetStuck forces WaitReady to time out while set.
func (m *MemDevice) SetStuck(stuck bool) {
	m.stuck = stuck
}

// FailAfter makes erase and program operations fail after n more of them
// succeed. A negative n disables injection.
func (m *MemDevice) FailAfter(n int) {
	m.failAfter = n
}

// Corrupt overwrites a cell directly, bypassing lock and program rules.
// Test aid for simulating bit rot.
func (m *MemDevice) Corrupt(addr uint32, v uint16) {
	if i, err := m.index(addr); err == nil {
		m.cells[i] = v
	}
}

// Bytes returns the block image as little-endian bytes.
func (m *MemDevice) Bytes() []byte {
	buf := make([]byte, len(m.cells)*2)
	for i, c := range m.cells {
		binary.LittleEndian.PutUint16(buf[i*2:], c)
	}
	return buf
}

func (m *MemDevice) setBytes(buf []byte) {
	for i := range m.cells {
		m.cells[i] = binary.LittleEndian.Uint16(buf[i*2:])
	}
}
