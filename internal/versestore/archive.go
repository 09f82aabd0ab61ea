package versestore

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

var ErrDigestMismatch = errors.New("verse file digest mismatch")

// Digest is the BLAKE3-256 sum of an uncompressed data file.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

func (d Digest) IsZero() bool { return d == Digest{} }

// ParseDigest decodes a hex digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("parse digest: %w", err)
	}
	if len(b) != len(d) {
		return d, fmt.Errorf("parse digest: want %d bytes, got %d", len(d), len(b))
	}
	copy(d[:], b)
	return d, nil
}

// Pack writes an xz-compressed copy of src to dst and returns the digest
// of the uncompressed bytes.
func Pack(src, dst string) (Digest, error) {
	in, err := os.Open(src)
	if err != nil {
		return Digest{}, fmt.Errorf("pack: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return Digest{}, fmt.Errorf("pack: %w", err)
	}
	defer out.Close()

	xw, err := xz.NewWriter(out)
	if err != nil {
		return Digest{}, fmt.Errorf("pack: %w", err)
	}

	h := blake3.New()
	if _, err := io.Copy(io.MultiWriter(xw, h), in); err != nil {
		xw.Close()
		return Digest{}, fmt.Errorf("pack: %w", err)
	}
	if err := xw.Close(); err != nil {
		return Digest{}, fmt.Errorf("pack: %w", err)
	}
	if err := out.Close(); err != nil {
		return Digest{}, fmt.Errorf("pack: %w", err)
	}

	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// Unpack decompresses r into dst. The file only appears at dst once its
// digest matches want; a zero want skips the check.
func Unpack(r io.Reader, dst string, want Digest) (int64, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("unpack: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("unpack: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	h := blake3.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), xr)
	if err != nil {
		tmp.Close()
		return n, fmt.Errorf("unpack: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("unpack: %w", err)
	}

	var got Digest
	copy(got[:], h.Sum(nil))
	if !want.IsZero() && got != want {
		return n, fmt.Errorf("%w: got %s, want %s", ErrDigestMismatch, got, want)
	}

	if err := os.Rename(tmpName, dst); err != nil {
		return n, fmt.Errorf("unpack: %w", err)
	}
	return n, nil
}

// HashFile returns the digest of the file at path.
func HashFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return Digest{}, err
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// VerifyFile checks the file at path against want.
func VerifyFile(path string, want Digest) error {
	got, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if got != want {
		return fmt.Errorf("%w: got %s, want %s", ErrDigestMismatch, got, want)
	}
	return nil
}
