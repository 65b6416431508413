// Package proto defines the radio datagram format.
package proto

import "emojiradio/board"

// PictureSize is the exact length of a picture datagram.
const PictureSize = board.ImageSize

// PicturePayload encodes one picture.
//
// Payload format:
//
//	b[y*5+x] == 0 => pixel (x, y) off
//	b[y*5+x] != 0 => pixel (x, y) on
//
// There is no header or checksum; the radio layer supplies framing and integrity.
func PicturePayload(img board.Image) []byte {
	b := make([]byte, PictureSize)
	copy(b, img[:])
	return b
}

// DecodePicturePayload accepts only payloads of exactly PictureSize bytes.
func DecodePicturePayload(b []byte) (img board.Image, ok bool) {
	if len(b) != PictureSize {
		return board.Image{}, false
	}
	copy(img[:], b)
	return img, true
}
