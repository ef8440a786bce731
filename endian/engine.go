// Package endian provides byte order utilities for binary encoding and decoding.
//
// It extends Go's standard encoding/binary package by combining ByteOrder and
// AppendByteOrder into a unified EndianEngine interface, used throughout
// package codec to write/read the fixed-width multi-byte fields of the wire
// format (float64 payloads, big-integer chunks).
//
// # Basic Usage
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint64(buf, bits)
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine.
//
// The wire format fixes all multi-byte integer and float fields (other than
// varints, which are LEB128 by definition) to big-endian, so this is the
// only engine package codec constructs by default.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
//
// Not used by the core wire format, but kept available for extensions (see
// package ext) that define their own reduced-value encodings.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
