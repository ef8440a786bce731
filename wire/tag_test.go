package wire

import "testing"

func TestTag_IsError(t *testing.T) {
	errorTags := []Tag{
		TagErrorBase, TagErrorEval, TagErrorRange,
		TagErrorReference, TagErrorSyntax, TagErrorType, TagErrorURI,
	}
	for _, tag := range errorTags {
		if !tag.IsError() {
			t.Errorf("tag %v should be IsError", tag)
		}
		if tag.IsBuffer() {
			t.Errorf("tag %v should not be IsBuffer", tag)
		}
	}

	nonErrorTags := []Tag{TagNull, TagString, TagBuffer, TagExtension, TagSequence}
	for _, tag := range nonErrorTags {
		if tag.IsError() {
			t.Errorf("tag %v should not be IsError", tag)
		}
	}
}

func TestTag_IsBuffer(t *testing.T) {
	bufferTags := []Tag{
		TagBuffer, TagViewBytes, TagViewInt8, TagViewUint8, TagViewUint8Clamped,
		TagViewInt16, TagViewUint16, TagViewInt32, TagViewUint32,
		TagViewFloat32, TagViewFloat64, TagViewInt64, TagViewUint64,
	}
	for _, tag := range bufferTags {
		if !tag.IsBuffer() {
			t.Errorf("tag %v should be IsBuffer", tag)
		}
	}

	nonBufferTags := []Tag{TagNull, TagErrorBase, TagExtension}
	for _, tag := range nonBufferTags {
		if tag.IsBuffer() {
			t.Errorf("tag %v should not be IsBuffer", tag)
		}
	}
}

func TestTag_IsExtension(t *testing.T) {
	if !TagExtension.IsExtension() {
		t.Error("TagExtension should be IsExtension")
	}
	if TagBuffer.IsExtension() {
		t.Error("TagBuffer should not be IsExtension")
	}
}

func TestElementViewSize(t *testing.T) {
	cases := map[Tag]int{
		TagViewInt8:         1,
		TagViewUint8:        1,
		TagViewUint8Clamped: 1,
		TagViewInt16:        2,
		TagViewUint16:       2,
		TagViewInt32:        4,
		TagViewUint32:       4,
		TagViewFloat32:      4,
		TagViewFloat64:      8,
		TagViewInt64:        8,
		TagViewUint64:       8,
		TagViewBytes:        0,
		TagNull:             0,
	}
	for tag, want := range cases {
		if got := ElementViewSize(tag); got != want {
			t.Errorf("ElementViewSize(%v) = %d, want %d", tag, got, want)
		}
	}
}

func TestTag_ExactAssignments(t *testing.T) {
	cases := map[Tag]byte{
		TagNull: 0x01, TagUndefined: 0x02, TagTrue: 0x03, TagFalse: 0x04,
		TagBackRef: 0x05, TagNumber: 0x06, TagDate: 0x07, TagRegexp: 0x08,
		TagString: 0x09, TagBigIntNeg: 0x0A, TagBigIntPos: 0x0B,
		TagSequence: 0x0C, TagRecord: 0x0D, TagSet: 0x0E, TagMap: 0x0F,
		TagErrorBase: 0x20, TagErrorEval: 0x21, TagErrorRange: 0x22,
		TagErrorReference: 0x23, TagErrorSyntax: 0x24, TagErrorType: 0x25, TagErrorURI: 0x26,
		TagBuffer: 0x40, TagViewBytes: 0x41, TagExtension: 0x80,
	}
	for tag, want := range cases {
		if byte(tag) != want {
			t.Errorf("tag constant mismatch: got 0x%02X, want 0x%02X", byte(tag), want)
		}
	}
}
