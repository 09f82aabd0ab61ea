package versestore_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore/versestoretest"
)

func TestPackUnpack(t *testing.T) {
	src := versestoretest.SecondaryFile(t)
	dir := t.TempDir()
	packed := filepath.Join(dir, "KJV.sqlite.xz")

	digest, err := versestore.Pack(src, packed)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if digest.IsZero() {
		t.Fatal("zero digest")
	}

	raw, err := os.ReadFile(packed)
	if err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "KJV.sqlite")
	n, err := versestore.Unpack(bytes.NewReader(raw), dst, digest)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}

	info, err := os.Stat(src)
	if err != nil {
		t.Fatal(err)
	}
	if n != info.Size() {
		t.Errorf("unpacked %d bytes, source has %d", n, info.Size())
	}
	if err := versestore.VerifyFile(dst, digest); err != nil {
		t.Errorf("verify: %v", err)
	}

	s := versestoretest.Open(t)
	if err := s.AttachSecondary(context.Background(), dst); err != nil {
		t.Fatalf("attach unpacked file: %v", err)
	}
}

func TestUnpack_DigestMismatch(t *testing.T) {
	src := versestoretest.SecondaryFile(t)
	dir := t.TempDir()
	packed := filepath.Join(dir, "KJV.sqlite.xz")

	if _, err := versestore.Pack(src, packed); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(packed)
	if err != nil {
		t.Fatal(err)
	}

	var wrong versestore.Digest
	wrong[0] = 1

	dst := filepath.Join(dir, "KJV.sqlite")
	if _, err := versestore.Unpack(bytes.NewReader(raw), dst, wrong); !errors.Is(err, versestore.ErrDigestMismatch) {
		t.Fatalf("expected ErrDigestMismatch, got %v", err)
	}
	if _, err := os.Stat(dst); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("mismatched file must not be left at dst, stat err=%v", err)
	}
}

func TestParseDigest(t *testing.T) {
	src := versestoretest.SecondaryFile(t)
	d, err := versestore.HashFile(src)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := versestore.ParseDigest(d.String())
	if err != nil {
		t.Fatal(err)
	}
	if parsed != d {
		t.Errorf("ParseDigest(String()) = %s, want %s", parsed, d)
	}

	if _, err := versestore.ParseDigest("abcd"); err == nil {
		t.Error("expected error for short digest")
	}
}
