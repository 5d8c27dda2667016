// pkg/eeprom/store.go

package eeprom

import (
	"EmuROM/pkg/flash"
	"EmuROM/pkg/utils"

	"github.com/pkg/errors"
)

var logger = utils.GetLogger("emurom")

// ErrCapacity means a save would leave more than MaxVars live records.
// The page is not touched when this is returned.
var ErrCapacity = errors.New("eeprom: variable capacity exceeded")

// Record is one live variable.
type Record struct {
	ID    uint8
	Value uint16
}

// Store emulates EEPROM on one flash erase block. Updates follow the
// compaction protocol: collect surviving records, erase the page, rewrite
// everything. Not safe for concurrent use; flash cannot interleave
// unlock/erase/program sequences.
type Store struct {
	dev  flash.Device
	base uint32
}

// New binds a store to a device and the block's base address. No hardware
// side effects.
func New(dev flash.Device, base uint32) *Store {
	return &Store{dev: dev, base: base}
}

// Format erases the page. On failure the page is left in an undefined,
// partially erased state; the caller may retry with another Format.
func (s *Store) Format() error {
	s.dev.Unlock()
	defer s.dev.Lock()

	if err := s.dev.WaitReady(); err != nil {
		return err
	}
	if err := s.dev.ErasePage(s.base); err != nil {
		return err
	}
	if err := s.dev.WaitReady(); err != nil {
		return err
	}
	if s.dev.ReadHalfWord(s.base) != flash.Erased {
		return flash.ErrVerify
	}
	return nil
}

// Initialized reports whether the page carries the marker. Pure read.
func (s *Store) Initialized() bool {
	return s.dev.ReadHalfWord(s.base+markerOffset) == Marker
}

// Save persists one variable, replacing any live record with the same id.
// Any flash failure aborts immediately with no rollback; the caller must
// treat the persisted state as unknown and retry a save or Format.
func (s *Store) Save(id uint8, value uint16) error {
	return s.compact([]uint8{id}, []uint16{value})
}

// SaveBatch persists several variables in one erase cycle. Live records
// whose id appears anywhere in ids are replaced. If an id occurs twice in
// the batch, both records are written and the earlier one wins on read.
func (s *Store) SaveBatch(ids []uint8, values []uint16) error {
	if len(ids) != len(values) {
		return errors.Errorf("eeprom: %d ids but %d values", len(ids), len(values))
	}
	return s.compact(ids, values)
}

// Read returns the stored value, or the erased pattern 0xFFFF when no live
// record matches. A genuinely stored 0xFFFF is indistinguishable from
// absence; use Exists to tell them apart.
func (s *Store) Read(id uint8) uint16 {
	if addr, ok := s.find(id); ok {
		return s.dev.ReadHalfWord(addr + 2)
	}
	return flash.Erased
}

// Exists reports whether a live record matches id. No side effects.
func (s *Store) Exists(id uint8) bool {
	_, ok := s.find(id)
	return ok
}

// Records returns the live run in slot order.
func (s *Store) Records() []Record {
	if !s.Initialized() {
		return nil
	}
	return s.collect(nil)
}

// find scans slots in address order, stopping at the first erased slot or
// after MaxVars. A slot matches when the narrowed id equals the requested
// one and its checksum validates; the earliest match wins.
func (s *Store) find(id uint8) (uint32, bool) {
	if !s.Initialized() {
		return 0, false
	}
	addr := s.base + slotsOffset
	for i := 0; i < MaxVars; i++ {
		rawID := s.dev.ReadHalfWord(addr)
		if rawID == flash.Erased {
			break
		}
		value := s.dev.ReadHalfWord(addr + 2)
		sum := s.dev.ReadHalfWord(addr + 4)
		if uint8(rawID) == id && sum == checksum(rawID, value) {
			return addr, true
		}
		addr += slotSize
	}
	return 0, false
}

// collect reads every live, checksum-valid record whose id is not in skip.
// Records with a bad checksum are dropped here for good.
func (s *Store) collect(skip []uint8) []Record {
	recs := make([]Record, 0, MaxVars)
	addr := s.base + slotsOffset
	for i := 0; i < MaxVars; i++ {
		rawID := s.dev.ReadHalfWord(addr)
		if rawID == flash.Erased {
			break
		}
		value := s.dev.ReadHalfWord(addr + 2)
		sum := s.dev.ReadHalfWord(addr + 4)
		addr += slotSize
		if sum != checksum(rawID, value) {
			logger.Debugf("dropping slot %d (id %d): checksum mismatch", i, uint8(rawID))
			continue
		}
		if containsID(skip, uint8(rawID)) {
			continue
		}
		recs = append(recs, Record{ID: uint8(rawID), Value: value})
	}
	return recs
}

// compact is the erase-and-rewrite protocol shared by Save and SaveBatch.
// The capacity check runs before any flash mutation.
func (s *Store) compact(ids []uint8, values []uint16) error {
	var recs []Record
	if !s.Initialized() {
		if len(ids) > MaxVars {
			return ErrCapacity
		}
		if err := s.initPage(); err != nil {
			return err
		}
	} else {
		recs = s.collect(ids)
		if len(recs)+len(ids) > MaxVars {
			return ErrCapacity
		}
	}

	for i := range ids {
		recs = append(recs, Record{ID: ids[i], Value: values[i]})
	}

	logger.Debugf("rewriting page with %d records", len(recs))
	if err := s.initPage(); err != nil {
		return err
	}
	addr := s.base + slotsOffset
	for _, r := range recs {
		id := uint16(r.ID)
		if err := s.writeHalfWord(addr, id); err != nil {
			return err
		}
		if err := s.writeHalfWord(addr+2, r.Value); err != nil {
			return err
		}
		if err := s.writeHalfWord(addr+4, checksum(id, r.Value)); err != nil {
			return err
		}
		addr += slotSize
	}
	return nil
}

// initPage erases the page and writes the marker and reserved half-words.
func (s *Store) initPage() error {
	if err := s.Format(); err != nil {
		return err
	}
	if err := s.writeHalfWord(s.base+markerOffset, Marker); err != nil {
		return err
	}
	return s.writeHalfWord(s.base+reservedOffset, 0)
}

// writeHalfWord brackets one program operation with unlock/lock. The lock
// is restored on every exit path.
func (s *Store) writeHalfWord(addr uint32, v uint16) error {
	s.dev.Unlock()
	defer s.dev.Lock()

	if err := s.dev.WaitReady(); err != nil {
		return err
	}
	return s.dev.ProgramHalfWord(addr, v)
}

func containsID(ids []uint8, id uint8) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
