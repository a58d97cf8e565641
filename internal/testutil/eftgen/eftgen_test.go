package eftgen

import (
	"bytes"
	"fmt"
	"testing"
)

func TestRecordDeclaresItsLength(t *testing.T) {
	for _, n := range []int{0, 1, 3, 80, 95, 9990} {
		rec := Record(14, Bytes(999, bytes.Repeat([]byte{'x'}, n)))
		prefix := fmt.Sprintf("14.001:%d", len(rec))
		if !bytes.HasPrefix(rec, []byte(prefix)) {
			t.Errorf("payload %d: record starts %q, want prefix %q", n, rec[:len(prefix)], prefix)
		}
		if rec[len(rec)-1] != FS {
			t.Errorf("payload %d: record not FS-terminated", n)
		}
	}
}

func TestBinary4Length(t *testing.T) {
	rec := Binary4(Type4{Image: []byte{1, 2, 3}})
	if got := len(rec); got != Type4HeaderSize+3+1 {
		t.Errorf("len = %d, want %d", got, Type4HeaderSize+4)
	}
	if rec[3] != Type4HeaderSize+3 {
		t.Errorf("length byte = %d, want %d", rec[3], Type4HeaderSize+3)
	}
}
