// Package codec serializes keypoint lists and descriptor bytes into the BLOB
// values stored in image_features.
//
// Both payloads use the same layout: a little-endian uint64 element count
// followed by the elements. A keypoint is four little-endian IEEE 754 float32
// values (x, y, size, angle); a descriptor element is a single byte.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/srs-sudeep/vyuwer/internal/model"
)

const (
	lengthPrefixSize = 8
	keypointSize     = 16
)

// ErrDecode is returned when a BLOB cannot be parsed back into its structured form.
var ErrDecode = errors.New("malformed blob")

// EncodeKeypoints encodes keypoints into a length-prefixed BLOB.
func EncodeKeypoints(keypoints []model.Keypoint) ([]byte, error) {
	b := make([]byte, lengthPrefixSize+len(keypoints)*keypointSize)
	binary.LittleEndian.PutUint64(b, uint64(len(keypoints)))

	off := lengthPrefixSize
	for _, kp := range keypoints {
		for _, v := range [4]float32{kp.X, kp.Y, kp.Size, kp.Angle} {
			binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
			off += 4
		}
	}
	return b, nil
}

// DecodeKeypoints decodes a BLOB produced by EncodeKeypoints.
func DecodeKeypoints(b []byte) ([]model.Keypoint, error) {
	n, err := readCount(b, keypointSize)
	if err != nil {
		return nil, fmt.Errorf("keypoints: %w", err)
	}

	keypoints := make([]model.Keypoint, n)
	off := lengthPrefixSize
	for i := range keypoints {
		keypoints[i] = model.Keypoint{
			X:     math.Float32frombits(binary.LittleEndian.Uint32(b[off:])),
			Y:     math.Float32frombits(binary.LittleEndian.Uint32(b[off+4:])),
			Size:  math.Float32frombits(binary.LittleEndian.Uint32(b[off+8:])),
			Angle: math.Float32frombits(binary.LittleEndian.Uint32(b[off+12:])),
		}
		off += keypointSize
	}
	return keypoints, nil
}

// EncodeDescriptors wraps raw descriptor bytes into a length-prefixed BLOB.
func EncodeDescriptors(descriptors []byte) ([]byte, error) {
	b := make([]byte, lengthPrefixSize+len(descriptors))
	binary.LittleEndian.PutUint64(b, uint64(len(descriptors)))
	copy(b[lengthPrefixSize:], descriptors)
	return b, nil
}

// DecodeDescriptors decodes a BLOB produced by EncodeDescriptors.
func DecodeDescriptors(b []byte) ([]byte, error) {
	n, err := readCount(b, 1)
	if err != nil {
		return nil, fmt.Errorf("descriptors: %w", err)
	}

	descriptors := make([]byte, n)
	copy(descriptors, b[lengthPrefixSize:])
	return descriptors, nil
}

// readCount validates the length prefix against the payload size.
func readCount(b []byte, elemSize int) (int, error) {
	if len(b) < lengthPrefixSize {
		return 0, fmt.Errorf("%w: blob length %d shorter than length prefix", ErrDecode, len(b))
	}

	n := binary.LittleEndian.Uint64(b)
	payload := uint64(len(b) - lengthPrefixSize)
	if n > payload/uint64(elemSize) || n*uint64(elemSize) != payload {
		return 0, fmt.Errorf("%w: count %d does not match %d payload bytes", ErrDecode, n, payload)
	}
	return int(n), nil
}
