package reedsolomon

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestEncodeKnownBlock(t *testing.T) {
	// 16 data codewords of a QR 1-M "HELLO WORLD" symbol; the field and
	// generator are shared with rMQR.
	data := []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17}
	want := []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}

	got := NewEncoder(Field256).Encode(data, len(want))
	if !bytes.Equal(got, want) {
		t.Errorf("parity = %v, want %v", got, want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	enc := NewEncoder(Field256)
	dec := NewDecoder(Field256)

	for _, tc := range []struct{ data, ec int }{
		{6, 7}, {3, 10}, {44, 24}, {12, 22}, {11, 22}, {38, 20},
	} {
		data := make([]byte, tc.data)
		rng.Read(data)
		block := append(append([]byte{}, data...), enc.Encode(data, tc.ec)...)

		received := append([]byte{}, block...)
		errs := tc.ec / 2
		for _, pos := range rng.Perm(len(received))[:errs] {
			received[pos] ^= byte(1 + rng.Intn(255))
		}

		corrected, err := dec.Decode(received, tc.ec)
		if err != nil {
			t.Fatalf("%d+%d: Decode failed: %v", tc.data, tc.ec, err)
		}
		if corrected != errs {
			t.Errorf("%d+%d: corrected = %d, want %d", tc.data, tc.ec, corrected, errs)
		}
		if !bytes.Equal(received, block) {
			t.Errorf("%d+%d: block not restored", tc.data, tc.ec)
		}
	}
}

func TestDecodeNoErrors(t *testing.T) {
	data := []byte{10, 20, 30, 40, 50}
	block := append(data, NewEncoder(Field256).Encode(data, 4)...)

	corrected, err := NewDecoder(Field256).Decode(block, 4)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if corrected != 0 {
		t.Errorf("corrected = %d, want 0 (no errors)", corrected)
	}
}

func TestDecodeTooManyErrors(t *testing.T) {
	data := []byte{10, 20, 30, 40, 50}
	block := append(data, NewEncoder(Field256).Encode(data, 4)...)
	block[0] = 0
	block[1] = 0
	block[2] = 0 // 3 errors, ecLen/2 = 2

	if _, err := NewDecoder(Field256).Decode(block, 4); err == nil {
		t.Error("expected error for too many errors")
	}
}

func TestFieldBasics(t *testing.T) {
	f := Field256
	if f.GeneratorBase() != 0 {
		t.Errorf("generatorBase = %d, want 0", f.GeneratorBase())
	}
	for a := 1; a < 256; a++ {
		if p := f.Multiply(a, f.Inverse(a)); p != 1 {
			t.Errorf("a=%d: a*inv(a) = %d, want 1", a, p)
		}
		if f.Exp(f.Log(a)) != a {
			t.Errorf("exp(log(%d)) != %d", a, a)
		}
	}
	if f.Multiply(0, 100) != 0 || f.Multiply(100, 0) != 0 {
		t.Error("multiply by 0 should be 0")
	}
	// alpha^8 reduces by the primitive polynomial
	if f.Exp(8) != 0x1D {
		t.Errorf("alpha^8 = %#x, want 0x1d", f.Exp(8))
	}
}

func TestEncoderConcurrentUse(t *testing.T) {
	enc := NewEncoder(Field256)
	data := []byte{1, 2, 3, 4, 5, 6}
	want := NewEncoder(Field256).Encode(data, 13)

	done := make(chan []byte)
	for i := 0; i < 8; i++ {
		go func() { done <- enc.Encode(data, 13) }()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; !bytes.Equal(got, want) {
			t.Errorf("concurrent parity = %v, want %v", got, want)
		}
	}
}
