// pkg/flash/flash.go

package flash

import "github.com/pkg/errors"

// Erased is the pattern every half-word reads as after a block erase.
const Erased uint16 = 0xFFFF

var (
	// ErrTimeout means the busy condition never cleared within the bounded spin.
	ErrTimeout = errors.New("flash: busy timeout")
	// ErrVerify means a post-erase or post-program read-back mismatched.
	ErrVerify = errors.New("flash: verify failed")
	// ErrLocked means an erase or program was attempted without unlocking first.
	ErrLocked = errors.New("flash: device locked")
)

// Device is the contract of the flash controller the storage engine runs on.
// The engine only computes logical offsets; every actual memory access goes
// through a Device. All operations are synchronous and blocking.
type Device interface {
	// Unlock enables erase and program operations.
	Unlock()
	// Lock disables erase and program operations. Every Unlock must be
	// paired with a Lock on all exit paths.
	Lock()
	// WaitReady spins until the device is no longer busy, bounded by an
	// iteration count. Returns ErrTimeout if the bound is exhausted.
	WaitReady() error
	// ErasePage erases the whole block containing addr and verifies that
	// its first half-word reads back as Erased.
	ErasePage(addr uint32) error
	// ProgramHalfWord programs one half-word and verifies the read-back.
	// Programming is one-shot: a cell holds the requested value only if it
	// was erased first.
	ProgramHalfWord(addr uint32, v uint16) error
	// ReadHalfWord reads one half-word. No side effects.
	ReadHalfWord(addr uint32) uint16
}
