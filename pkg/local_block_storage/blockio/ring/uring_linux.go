//go:build linux

package ring

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/nspcc-dev/neofs-blockstore/pkg/local_block_storage/blockio"
	"golang.org/x/sys/unix"
)

// Kernel ABI, see include/uapi/linux/io_uring.h.
const (
	opNop    = 0
	opReadv  = 1
	opWritev = 2

	enterGetEvents = 1 << 0

	offSQRing = 0
	offCQRing = 0x8000000
	offSQEs   = 0x10000000

	// user_data of the NOP stopping the reaper.
	stopTag = math.MaxUint64
)

type sqRingOffsets struct {
	head        uint32
	tail        uint32
	ringMask    uint32
	ringEntries uint32
	flags       uint32
	dropped     uint32
	array       uint32
	resv1       uint32
	userAddr    uint64
}

type cqRingOffsets struct {
	head        uint32
	tail        uint32
	ringMask    uint32
	ringEntries uint32
	overflow    uint32
	cqes        uint32
	flags       uint32
	resv1       uint32
	userAddr    uint64
}

type setupParams struct {
	sqEntries    uint32
	cqEntries    uint32
	flags        uint32
	sqThreadCPU  uint32
	sqThreadIdle uint32
	features     uint32
	wqFD         uint32
	resv         [3]uint32
	sqOff        sqRingOffsets
	cqOff        cqRingOffsets
}

type submissionEntry struct {
	opcode      uint8
	flags       uint8
	ioprio      uint16
	fd          int32
	off         uint64
	addr        uint64
	len         uint32
	opFlags     uint32
	userData    uint64
	bufIndex    uint16
	personality uint16
	spliceFDIn  int32
	addr3       uint64
	_           uint64
}

type completionEntry struct {
	userData uint64
	res      int32
	flags    uint32
}

// operation is an in-flight request. It keeps the buffer and the iovec
// referenced until the kernel reports completion.
type operation struct {
	iov  unix.Iovec
	buf  []byte
	done chan int32
}

// uring is a single io_uring instance shared by all handles of the file.
//
// Submissions are serialized by mtx, completions are collected by the only
// reaper routine which wakes up waiting submitters.
type uring struct {
	fd int

	sqMem  []byte
	cqMem  []byte
	sqeMem []byte

	sqTail  *uint32
	sqMask  uint32
	sqArray []uint32
	sqes    []submissionEntry

	cqHead *uint32
	cqTail *uint32
	cqMask uint32
	cqes   []completionEntry

	// bounds the number of in-flight operations by the SQ size, so neither
	// ring overflows.
	slots chan struct{}

	mtx     sync.Mutex
	closed  bool
	broken  error
	lastID  uint64
	pending map[uint64]*operation
	active  sync.WaitGroup

	reaperDone chan struct{}
}

func setup(entries uint32, p *setupParams) (int, error) {
	fd, _, errno := unix.Syscall(unix.SYS_IO_URING_SETUP, uintptr(entries), uintptr(unsafe.Pointer(p)), 0)
	if errno != 0 {
		return -1, errno
	}
	return int(fd), nil
}

func enter(fd int, toSubmit, minComplete uint32, flags uint32) (int, error) {
	n, _, errno := unix.Syscall6(unix.SYS_IO_URING_ENTER,
		uintptr(fd), uintptr(toSubmit), uintptr(minComplete), uintptr(flags), 0, 0)
	if errno != 0 {
		return int(n), errno
	}
	return int(n), nil
}

func isTemporary(err error) bool {
	return errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EBUSY)
}

// newURing creates io_uring with at least the given number of submission
// entries and starts its reaper.
func newURing(entries uint32) (*uring, error) {
	var p setupParams

	fd, err := setup(entries, &p)
	if err != nil {
		if errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EPERM) {
			return nil, fmt.Errorf("%w: io_uring_setup: %w", ErrUnsupported, err)
		}
		return nil, fmt.Errorf("io_uring_setup: %w", err)
	}

	r := &uring{
		fd:         fd,
		pending:    make(map[uint64]*operation),
		reaperDone: make(chan struct{}),
	}

	err = r.mmap(&p)
	if err != nil {
		r.unmap()
		_ = unix.Close(fd)
		return nil, err
	}

	r.slots = make(chan struct{}, p.sqEntries)

	go r.reap()

	return r, nil
}

func (r *uring) mmap(p *setupParams) error {
	const (
		prot  = unix.PROT_READ | unix.PROT_WRITE
		flags = unix.MAP_SHARED | unix.MAP_POPULATE
	)

	var (
		err    error
		sqSize = int(p.sqOff.array + p.sqEntries*uint32(unsafe.Sizeof(uint32(0))))
		cqSize = int(p.cqOff.cqes + p.cqEntries*uint32(unsafe.Sizeof(completionEntry{})))
		eSize  = int(p.sqEntries * uint32(unsafe.Sizeof(submissionEntry{})))
	)

	r.sqMem, err = unix.Mmap(r.fd, offSQRing, sqSize, prot, flags)
	if err != nil {
		return fmt.Errorf("mmap submission queue: %w", err)
	}

	r.cqMem, err = unix.Mmap(r.fd, offCQRing, cqSize, prot, flags)
	if err != nil {
		return fmt.Errorf("mmap completion queue: %w", err)
	}

	r.sqeMem, err = unix.Mmap(r.fd, offSQEs, eSize, prot, flags)
	if err != nil {
		return fmt.Errorf("mmap submission entries: %w", err)
	}

	r.sqTail = (*uint32)(unsafe.Pointer(&r.sqMem[p.sqOff.tail]))
	r.sqMask = *(*uint32)(unsafe.Pointer(&r.sqMem[p.sqOff.ringMask]))
	r.sqArray = unsafe.Slice((*uint32)(unsafe.Pointer(&r.sqMem[p.sqOff.array])), p.sqEntries)
	r.sqes = unsafe.Slice((*submissionEntry)(unsafe.Pointer(&r.sqeMem[0])), p.sqEntries)

	r.cqHead = (*uint32)(unsafe.Pointer(&r.cqMem[p.cqOff.head]))
	r.cqTail = (*uint32)(unsafe.Pointer(&r.cqMem[p.cqOff.tail]))
	r.cqMask = *(*uint32)(unsafe.Pointer(&r.cqMem[p.cqOff.ringMask]))
	r.cqes = unsafe.Slice((*completionEntry)(unsafe.Pointer(&r.cqMem[p.cqOff.cqes])), p.cqEntries)

	return nil
}

func (r *uring) unmap() {
	for _, m := range [][]byte{r.sqeMem, r.cqMem, r.sqMem} {
		if m != nil {
			_ = unix.Munmap(m)
		}
	}
	r.sqeMem, r.cqMem, r.sqMem = nil, nil, nil
}

// push places one entry into the submission queue and passes it to the
// kernel. Must be called under mtx.
func (r *uring) push(e submissionEntry) error {
	tail := atomic.LoadUint32(r.sqTail)
	idx := tail & r.sqMask

	r.sqes[idx] = e
	r.sqArray[idx] = idx
	atomic.StoreUint32(r.sqTail, tail+1)

	for {
		n, err := enter(r.fd, 1, 0, 0)
		if err == nil && n == 1 {
			return nil
		}
		if err == nil || isTemporary(err) {
			continue
		}
		// Nothing was consumed, submissions are serialized, so the entry
		// can be taken back.
		atomic.StoreUint32(r.sqTail, tail)
		return fmt.Errorf("io_uring_enter: %w", err)
	}
}

// do performs single-buffer operation and returns its raw result: number of
// bytes transferred or negated errno.
func (r *uring) do(opcode uint8, fd int, buf []byte, off uint64) (int32, error) {
	r.mtx.Lock()
	if r.closed {
		r.mtx.Unlock()
		return 0, blockio.ErrClosed
	}
	if r.broken != nil {
		r.mtx.Unlock()
		return 0, r.broken
	}
	r.active.Add(1)
	r.mtx.Unlock()

	defer r.active.Done()

	r.slots <- struct{}{}
	defer func() { <-r.slots }()

	op := &operation{
		buf:  buf,
		done: make(chan int32, 1),
	}
	if len(buf) > 0 {
		op.iov.Base = &buf[0]
	}
	op.iov.SetLen(len(buf))

	e := submissionEntry{
		opcode: opcode,
		fd:     int32(fd),
		off:    off,
	}
	if opcode != opNop {
		e.addr = uint64(uintptr(unsafe.Pointer(&op.iov)))
		e.len = 1
	}

	r.mtx.Lock()
	r.lastID++
	id := r.lastID
	e.userData = id
	r.pending[id] = op

	err := r.push(e)
	if err != nil {
		delete(r.pending, id)
	}
	r.mtx.Unlock()

	if err != nil {
		return 0, err
	}

	res := <-op.done

	return res, nil
}

// reap collects completions until the stop NOP is seen.
func (r *uring) reap() {
	defer close(r.reaperDone)

	for {
		_, err := enter(r.fd, 0, 1, enterGetEvents)
		if err != nil && !isTemporary(err) {
			r.fail(fmt.Errorf("wait for io_uring completions: %w", err))
			return
		}

		var (
			head = atomic.LoadUint32(r.cqHead)
			tail = atomic.LoadUint32(r.cqTail)
			stop bool
		)
		for ; head != tail; head++ {
			c := r.cqes[head&r.cqMask]
			if c.userData == stopTag {
				stop = true
				continue
			}

			r.mtx.Lock()
			op, ok := r.pending[c.userData]
			delete(r.pending, c.userData)
			r.mtx.Unlock()

			if ok {
				op.done <- c.res
			}
		}
		atomic.StoreUint32(r.cqHead, head)

		if stop {
			return
		}
	}
}

// fail completes all pending operations with EIO and makes the ring
// unusable.
func (r *uring) fail(err error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.broken = err
	for id, op := range r.pending {
		op.done <- -int32(syscall.EIO)
		delete(r.pending, id)
	}
}

// close waits for in-flight operations, stops the reaper and releases kernel
// resources.
func (r *uring) close() error {
	r.mtx.Lock()
	if r.closed {
		r.mtx.Unlock()
		return nil
	}
	r.closed = true
	r.mtx.Unlock()

	r.active.Wait()

	select {
	case <-r.reaperDone:
	default:
		r.mtx.Lock()
		err := r.push(submissionEntry{opcode: opNop, fd: -1, userData: stopTag})
		r.mtx.Unlock()
		if err != nil {
			// The reaper is blocked in the kernel and can not be woken up,
			// leave the ring mapped rather than unmap memory under it.
			return fmt.Errorf("stop io_uring reaper: %w", err)
		}
		<-r.reaperDone
	}

	r.unmap()

	err := unix.Close(r.fd)
	if err != nil {
		return fmt.Errorf("close io_uring descriptor: %w", err)
	}
	return nil
}
