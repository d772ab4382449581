// Package fileutil provides the copy and hashing primitives used when
// assembling a merged comic directory. Page images are copied byte for
// byte; the verified variant hashes the source stream and a readback
// of the written file so silent corruption surfaces as a copy failure
// instead of a broken archive.
package fileutil

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"
)

// CopyFile streams src to dst with default permissions (0o644).
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// CopyFileVerified streams src to dst hashing the source as it is
// read, then hashes dst back from disk and compares. A size or digest
// mismatch removes dst and fails. Returns the content digest on
// success.
//
// xxh3 rather than a cryptographic hash: the check guards against
// truncated or corrupted I/O, not an adversary, and page images are
// large enough that hash throughput matters.
func CopyFileVerified(src, dst string) (uint64, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := xxh3.New()
	written, err := io.Copy(out, io.TeeReader(in, srcHasher))
	if err != nil {
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	// Hash what actually landed on disk, not the buffer that was written.
	dstSum, err := HashFile(dst)
	if err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("failed to read back copy: %w", err)
	}
	srcSum := srcHasher.Sum64()
	if dstSum != srcSum {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return srcSum, nil
}

// HashFile returns the xxh3 digest of the file at path.
func HashFile(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return HashReader(f)
}

// HashReader returns the xxh3 digest of everything readable from r.
func HashReader(r io.Reader) (uint64, error) {
	h := xxh3.New()
	if _, err := io.Copy(h, r); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
