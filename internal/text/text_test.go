package text

import (
	"testing"
	"unicode/utf16"
	"unicode/utf8"
)

func TestDecodeOffsets(t *testing.T) {
	const s = "拼音Ab😀"

	tests := []struct {
		name    string
		text    *Text
		offsets []int
	}{
		{"utf8", FromUTF8([]byte(s)), []int{0, 3, 6, 7, 8, 12}},
		{"string", FromString(s), []int{0, 3, 6, 7, 8, 12}},
		{"utf16", FromUTF16(utf16.Encode([]rune(s))), []int{0, 1, 2, 3, 4, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.text.Len(); got != 5 {
				t.Fatalf("Len() = %d, want 5", got)
			}
			if got := string(tt.text.Runes()); got != s {
				t.Errorf("Runes() = %q, want %q", got, s)
			}
			for i, want := range tt.offsets {
				if got := tt.text.Offset(i); got != want {
					t.Errorf("Offset(%d) = %d, want %d", i, got, want)
				}
			}
			if got, want := tt.text.NativeLen(), tt.offsets[len(tt.offsets)-1]; got != want {
				t.Errorf("NativeLen() = %d, want %d", got, want)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	tx := FromUTF8([]byte("a拼b"))
	tests := []struct {
		off  int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{5, 3},
		{100, 3},
	}
	for _, tt := range tests {
		if got := tx.Index(tt.off); got != tt.want {
			t.Errorf("Index(%d) = %d, want %d", tt.off, got, tt.want)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	tx := FromUTF8([]byte{'a', 0xff, 'b'})
	if tx.Len() != 3 || tx.At(1) != utf8.RuneError {
		t.Errorf("invalid byte: got %q", tx.Runes())
	}

	u := FromUTF16([]uint16{'a', 0xd800, 'b'})
	if u.Len() != 3 || u.At(1) != utf8.RuneError || u.Offset(2) != 2 {
		t.Errorf("unpaired surrogate: got %q", u.Runes())
	}
}

func TestReuse(t *testing.T) {
	var tx Text
	tx.DecodeString("hello world")
	tx.DecodeUTF16(utf16.Encode([]rune("拼")))
	if tx.Len() != 1 || tx.NativeLen() != 1 || tx.Bytes() != nil {
		t.Errorf("reused text: len=%d native=%d", tx.Len(), tx.NativeLen())
	}
	tx.DecodeUTF8(nil)
	if tx.Len() != 0 || tx.NativeLen() != 0 {
		t.Errorf("empty text: len=%d native=%d", tx.Len(), tx.NativeLen())
	}
}

func TestReset(t *testing.T) {
	tx := FromUTF8([]byte("拼音"))
	tx.Reset()
	if tx.Len() != 0 || tx.Bytes() != nil {
		t.Errorf("after Reset: len=%d bytes=%v", tx.Len(), tx.Bytes())
	}
	tx.DecodeString("ab")
	if tx.Len() != 2 || tx.Offset(2) != 2 {
		t.Errorf("decode after Reset: len=%d", tx.Len())
	}
}
