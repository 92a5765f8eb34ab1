package npy

import "testing"

func TestKindProperties(t *testing.T) {
	var kindtests = []struct {
		kind  Kind
		size  int
		dtype string
		name  string
	}{
		{Int8, 1, "|i1", "int8"},
		{Int16, 2, "<i2", "int16"},
		{Int32, 4, "<i4", "int32"},
		{Int64, 8, "<i8", "int64"},
		{Uint8, 1, "|u1", "uint8"},
		{Uint16, 2, "<u2", "uint16"},
		{Uint32, 4, "<u4", "uint32"},
		{Uint64, 8, "<u8", "uint64"},
		{Float32, 4, "<f4", "float32"},
		{Float64, 8, "<f8", "float64"},
	}
	for _, kt := range kindtests {
		if got := kt.kind.Size(); got != kt.size {
			t.Errorf("%s.Size() = %d, want %d", kt.name, got, kt.size)
		}
		if got := kt.kind.Dtype(); got != kt.dtype {
			t.Errorf("%s.Dtype() = %q, want %q", kt.name, got, kt.dtype)
		}
		if got := kt.kind.String(); got != kt.name {
			t.Errorf("String() = %q, want %q", got, kt.name)
		}
	}
}

func TestKindInvalid(t *testing.T) {
	if KindInvalid.Size() != 0 {
		t.Errorf("KindInvalid.Size() = %d, want 0", KindInvalid.Size())
	}
	if KindInvalid.Dtype() != "" {
		t.Errorf("KindInvalid.Dtype() = %q, want empty", KindInvalid.Dtype())
	}
	if KindInvalid.String() != "invalid" {
		t.Errorf("KindInvalid.String() = %q, want invalid", KindInvalid.String())
	}
}

func checkKindOf[T Element](t *testing.T, want Kind) {
	t.Helper()
	if got := KindOf[T](); got != want {
		t.Errorf("KindOf = %s, want %s", got, want)
	}
}

func TestKindOf(t *testing.T) {
	checkKindOf[int8](t, Int8)
	checkKindOf[int16](t, Int16)
	checkKindOf[int32](t, Int32)
	checkKindOf[int64](t, Int64)
	checkKindOf[uint8](t, Uint8)
	checkKindOf[uint16](t, Uint16)
	checkKindOf[uint32](t, Uint32)
	checkKindOf[uint64](t, Uint64)
	checkKindOf[float32](t, Float32)
	checkKindOf[float64](t, Float64)
}

func TestKindLookup(t *testing.T) {
	var lookuptests = []struct {
		letter byte
		width  int
		want   Kind
	}{
		{'i', 1, Int8},
		{'i', 8, Int64},
		{'u', 2, Uint16},
		{'f', 4, Float32},
		{'f', 8, Float64},
		{'f', 2, KindInvalid}, // float16 is unsupported
		{'i', 3, KindInvalid},
		{'c', 8, KindInvalid}, // complex64
		{'b', 1, KindInvalid},
		{'S', 4, KindInvalid},
	}
	for _, lt := range lookuptests {
		if got := kindOf(lt.letter, lt.width); got != lt.want {
			t.Errorf("kindOf(%q, %d) = %s, want %s", lt.letter, lt.width, got, lt.want)
		}
	}
}
