package blockio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"github.com/ncw/directio"
	"golang.org/x/sys/unix"
)

// FilePerm is a permission mode of the newly created data file.
const FilePerm fs.FileMode = 0o640

// OpenFile opens the data file for reading and writing creating it if
// necessary. If direct is set, the file is opened bypassing OS page cache.
func OpenFile(p string, direct bool) (*os.File, error) {
	const flag = os.O_RDWR | os.O_CREATE

	var (
		f   *os.File
		err error
	)
	if direct {
		f, err = directio.OpenFile(p, flag, FilePerm)
		if errors.Is(err, syscall.EINVAL) {
			return nil, fmt.Errorf("%w: %s", ErrDirectIOUnsupported, p)
		}
	} else {
		f, err = os.OpenFile(p, flag, FilePerm)
	}
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat data file: %w", err)
	}
	if !fi.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("data file %s is not a regular file (%s)", p, fi.Mode().Type())
	}

	return f, nil
}

// DupFile returns a new [os.File] referring to a duplicate of f's descriptor.
// Duplicates share file status flags (including direct I/O) but can be closed
// independently.
func DupFile(f *os.File) (*os.File, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return nil, fmt.Errorf("get raw connection: %w", err)
	}

	var (
		fd     int
		errDup error
	)
	err = rc.Control(func(orig uintptr) {
		fd, errDup = unix.FcntlInt(orig, unix.F_DUPFD_CLOEXEC, 0)
	})
	if err == nil {
		err = errDup
	}
	if err != nil {
		return nil, fmt.Errorf("duplicate descriptor: %w", err)
	}

	return os.NewFile(uintptr(fd), f.Name()), nil
}

// StatFile returns Info of the opened file.
func StatFile(f *os.File) (Info, error) {
	fi, err := f.Stat()
	if err != nil {
		return Info{}, fmt.Errorf("stat data file: %w", err)
	}

	return Info{
		Path:    f.Name(),
		Size:    uint64(fi.Size()),
		ModTime: fi.ModTime(),
	}, nil
}
