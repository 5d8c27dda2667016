// pkg/flash/mem_test.go

package flash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testBase      = 0x08003C00
	testBlockSize = 1024
)

func TestNewMemDeviceErasedAndLocked(t *testing.T) {
	m := NewMemDevice(testBase, testBlockSize)
	assert.True(t, m.Locked())
	for off := uint32(0); off < testBlockSize; off += 2 {
		assert.Equal(t, Erased, m.ReadHalfWord(testBase+off))
	}
}

func TestProgramWhileLocked(t *testing.T) {
	m := NewMemDevice(testBase, testBlockSize)
	assert.ErrorIs(t, m.ProgramHalfWord(testBase, 0x1234), ErrLocked)
	assert.ErrorIs(t, m.ErasePage(testBase), ErrLocked)
	assert.Equal(t, Erased, m.ReadHalfWord(testBase))
}

func TestProgramAndRead(t *testing.T) {
	m := NewMemDevice(testBase, testBlockSize)
	m.Unlock()
	assert.Nil(t, m.ProgramHalfWord(testBase+10, 0x1234))
	m.Lock()
	assert.Equal(t, uint16(0x1234), m.ReadHalfWord(testBase+10))
}

func TestProgramIsOneShot(t *testing.T) {
	m := NewMemDevice(testBase, testBlockSize)
	m.Unlock()
	assert.Nil(t, m.ProgramHalfWord(testBase, 0xABCD))
	// a programmed cell can only lose bits until the next erase
	assert.ErrorIs(t, m.ProgramHalfWord(testBase, 0x1234), ErrVerify)
	assert.Equal(t, uint16(0xABCD&0x1234), m.ReadHalfWord(testBase))
}

func TestEraseResetsBlock(t *testing.T) {
	m := NewMemDevice(testBase, testBlockSize)
	m.Unlock()
	assert.Nil(t, m.ProgramHalfWord(testBase+4, 0))
	assert.Nil(t, m.ErasePage(testBase))
	assert.Equal(t, Erased, m.ReadHalfWord(testBase+4))
}

func TestWaitReadyStuck(t *testing.T) {
	m := NewMemDevice(testBase, testBlockSize)
	assert.Nil(t, m.WaitReady())
	m.SetStuck(true)
	assert.ErrorIs(t, m.WaitReady(), ErrTimeout)
	m.SetStuck(false)
	assert.Nil(t, m.WaitReady())
}

func TestBusyAfterOperation(t *testing.T) {
	m := NewMemDevice(testBase, testBlockSize)
	m.Unlock()
	assert.Nil(t, m.ProgramHalfWord(testBase, 0x5A5A))
	assert.Nil(t, m.WaitReady())
}

func TestOutOfBlockAccess(t *testing.T) {
	m := NewMemDevice(testBase, testBlockSize)
	m.Unlock()
	assert.NotNil(t, m.ProgramHalfWord(testBase-2, 0))
	assert.NotNil(t, m.ErasePage(testBase+testBlockSize))
	assert.Equal(t, Erased, m.ReadHalfWord(testBase+testBlockSize))
}

func TestFailAfter(t *testing.T) {
	m := NewMemDevice(testBase, testBlockSize)
	m.Unlock()
	m.FailAfter(1)
	assert.Nil(t, m.ProgramHalfWord(testBase, 0x1111))
	assert.ErrorIs(t, m.ProgramHalfWord(testBase+2, 0x2222), ErrVerify)
	assert.ErrorIs(t, m.ErasePage(testBase), ErrVerify)
	m.FailAfter(-1)
	assert.Nil(t, m.ErasePage(testBase))
}

func TestCorrupt(t *testing.T) {
	m := NewMemDevice(testBase, testBlockSize)
	m.Corrupt(testBase+8, 0x00FF)
	assert.Equal(t, uint16(0x00FF), m.ReadHalfWord(testBase+8))
}
