package trie

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/edsrzf/mmap-go"
	"github.com/gofrs/flock"
	"github.com/gomlx/go-botok/internal/files"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// cacheMagic starts every compiled trie file.
var cacheMagic = []byte("BOTRIE\x01\n")

// DefaultDirCreationPerm is used when creating the cache directory.
const DefaultDirCreationPerm = 0755

// WriteCache saves the entries of the trie to path, in the compiled trie format:
// the magic header, the number of entries, and each word and tag as uvarint-length-prefixed strings.
func WriteCache(path string, t *Trie) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create trie cache file %q", path)
	}
	w := bufio.NewWriter(f)
	entries := t.Entries()
	buf := append([]byte(nil), cacheMagic...)
	buf = binary.AppendUvarint(buf, uint64(len(entries)))
	for _, e := range entries {
		buf = binary.AppendUvarint(buf, uint64(len(e.Word)))
		buf = append(buf, e.Word...)
		buf = binary.AppendUvarint(buf, uint64(len(e.Tag)))
		buf = append(buf, e.Tag...)
		if len(buf) > 64*1024 {
			if _, err := w.Write(buf); err != nil {
				_ = f.Close()
				return errors.Wrapf(err, "failed to write trie cache file %q", path)
			}
			buf = buf[:0]
		}
	}
	if _, err := w.Write(buf); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write trie cache file %q", path)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write trie cache file %q", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close trie cache file %q", path)
	}
	return nil
}

// ReadCache loads a trie saved with WriteCache. The file is memory-mapped while it is decoded.
func ReadCache(path string) (*Trie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open trie cache %q", path)
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat trie cache %q", path)
	}
	if info.Size() < int64(len(cacheMagic)) {
		return nil, errors.Errorf("trie cache %q is truncated (%d bytes)", path, info.Size())
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to mmap trie cache %q", path)
	}
	defer func() {
		if err := m.Unmap(); err != nil {
			klog.Warningf("failed to unmap trie cache %q: %v", path, err)
		}
	}()
	t, err := decodeCache(m)
	if err != nil {
		return nil, errors.WithMessagef(err, "while reading trie cache %q", path)
	}
	return t, nil
}

// decodeCache parses the compiled trie format. Strings are copied out of data.
func decodeCache(data []byte) (*Trie, error) {
	if !bytes.HasPrefix(data, cacheMagic) {
		return nil, errors.New("invalid trie cache header")
	}
	pos := len(cacheMagic)
	readUvarint := func() (uint64, error) {
		v, n := binary.Uvarint(data[pos:])
		if n <= 0 {
			return 0, errors.Errorf("invalid length at byte %d", pos)
		}
		pos += n
		return v, nil
	}
	readString := func() (string, error) {
		length, err := readUvarint()
		if err != nil {
			return "", err
		}
		if length > uint64(len(data)-pos) {
			return "", errors.Errorf("string of %d bytes at byte %d overflows the file", length, pos)
		}
		s := string(data[pos : pos+int(length)])
		pos += int(length)
		return s, nil
	}

	count, err := readUvarint()
	if err != nil {
		return nil, err
	}
	t := New()
	for range count {
		word, err := readString()
		if err != nil {
			return nil, err
		}
		tag, err := readString()
		if err != nil {
			return nil, err
		}
		t.Add(word, tag)
	}
	if pos != len(data) {
		return nil, errors.Errorf("%d unexpected trailing bytes", len(data)-pos)
	}
	return t, nil
}

// lockedWriteCache saves the trie to cachePath.
//
// If cachePath already exists, it is assumed to have been written by a concurrent process for the same sources,
// and it returns immediately.
//
// It writes the file to cachePath+".tmp" and then atomically moves it to cachePath, using a cachePath+".lock" file
// to coordinate multiple processes building the same trie at the same time.
func lockedWriteCache(ctx context.Context, cachePath string, t *Trie) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), DefaultDirCreationPerm); err != nil {
		return errors.Wrapf(err, "failed to create directory for trie cache %q", cachePath)
	}

	lockPath := cachePath + ".lock"
	var mainErr error
	errLock := execOnFileLock(ctx, lockPath, func() {
		if files.Exists(cachePath) {
			// Some concurrent process already saved it.
			return
		}
		tmpPath := cachePath + ".tmp"
		if err := WriteCache(tmpPath, t); err != nil {
			mainErr = err
			if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
				klog.Warningf("failed removing temporary file %q: %v", tmpPath, err)
			}
			return
		}
		if err := os.Rename(tmpPath, cachePath); err != nil {
			mainErr = errors.Wrapf(err, "failed to move trie cache %q to %q", tmpPath, cachePath)
			return
		}

		// The cache file exists, so the lock file is no longer needed.
		if err := os.Remove(lockPath); err != nil {
			klog.Warningf("error removing lock file %q: %+v", lockPath, err)
		}
	})
	if mainErr != nil {
		return mainErr
	}
	if errLock != nil {
		return errors.WithMessagef(errLock, "while locking %q to save trie cache", lockPath)
	}
	return nil
}

// execOnFileLock opens the lockPath file (or creates if it doesn't yet exist), locks it, and executes the function.
// If the lockPath is already locked, it polls with a 1 to 2 seconds period (randomly), until it acquires the lock
// or the context is cancelled.
func execOnFileLock(ctx context.Context, lockPath string, fn func()) (err error) {
	fileLock := flock.New(lockPath)
	for {
		locked, err := fileLock.TryLock()
		if err != nil {
			return errors.Wrapf(err, "while trying to lock %q", lockPath)
		}
		if locked {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond * time.Duration(1000+rand.IntN(1000))):
		}
	}

	// Unlock in a deferred function, so it happens even if `fn()` panics.
	defer func() {
		unlockErr := fileLock.Unlock()
		if unlockErr != nil {
			if err == nil {
				err = errors.Wrapf(unlockErr, "unlocking file %q", lockPath)
			} else {
				klog.Errorf("Error unlocking file %q: %v", lockPath, unlockErr)
			}
		}
	}()

	fn()
	return
}
