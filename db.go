package dicee

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/golang/glog"
	"golang.org/x/sys/unix"
)

const unsetValue = -1.0

// One entry per (rolls remaining, configuration) pair.
const solutionEntries = (MaxRolls + 1) * NumConfigs

const solutionFileSize = 8 * solutionEntries

// SolutionDB stores the solved expected value of every turn state for
// one fixed category set in a memory-mapped flat file. It is an offline
// export written by cmd/solve-dicee; the solver's in-process cache never
// touches disk.
type SolutionDB struct {
	f    *os.File
	mmap []byte

	nPuts int
}

// NewSolutionDB opens the solution file at path, creating and
// initializing it if it does not exist.
func NewSolutionDB(path string) (*SolutionDB, error) {
	var f *os.File
	stat, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		f, err = os.Create(path)
		if err != nil {
			return nil, err
		}
		glog.Infof("Initializing new solution database at %s with %d entries",
			path, solutionEntries)
		unsetBits := make([]byte, 8)
		binary.LittleEndian.PutUint64(unsetBits, math.Float64bits(unsetValue))
		buf := make([]byte, 0, solutionFileSize)
		for i := 0; i < solutionEntries; i++ {
			buf = append(buf, unsetBits...)
		}
		if _, err := f.Write(buf); err != nil {
			_ = f.Close()
			return nil, err
		}
	} else if err != nil {
		return nil, err
	} else if stat.Size() != solutionFileSize {
		return nil, fmt.Errorf(
			"%s is not the correct size for a solution database: "+
				"got %d, expected %d", path, stat.Size(), solutionFileSize)
	} else {
		f, err = os.OpenFile(path, os.O_RDWR, 0755)
		if err != nil {
			return nil, err
		}
	}

	flags := unix.MAP_SHARED
	prot := unix.PROT_READ | unix.PROT_WRITE
	mmap, err := unix.Mmap(int(f.Fd()), 0, solutionFileSize, prot, flags)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &SolutionDB{f: f, mmap: mmap}, nil
}

func solutionOffset(idx ConfigIndex, rolls uint8) int {
	return 8 * (int(rolls)*NumConfigs + int(idx))
}

// Put stores the expected value for a turn state.
func (db *SolutionDB) Put(idx ConfigIndex, rolls uint8, ev float64) {
	off := solutionOffset(idx, rolls)
	binary.LittleEndian.PutUint64(db.mmap[off:off+8], math.Float64bits(ev))

	db.nPuts++
	if db.nPuts%100000 == 0 {
		glog.Infof("Solution database has %d entries. Last put: %s r=%d -> %.4f",
			db.nPuts, idx.Config(), rolls, ev)
	}
}

// Get retrieves a stored expected value for a turn state, and whether
// one has been written.
func (db *SolutionDB) Get(idx ConfigIndex, rolls uint8) (float64, bool) {
	off := solutionOffset(idx, rolls)
	ev := math.Float64frombits(binary.LittleEndian.Uint64(db.mmap[off : off+8]))
	return ev, ev >= 0
}

func (db *SolutionDB) Close() error {
	defer db.f.Close()

	if err := unix.Msync(db.mmap, unix.MS_SYNC); err != nil {
		return err
	}
	if err := unix.Munmap(db.mmap); err != nil {
		return err
	}

	return db.f.Close()
}
