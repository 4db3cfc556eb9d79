package ai

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/mrz1836/relay/internal/constants"
	"github.com/mrz1836/relay/internal/errors"
)

// DecodeOutput converts raw process output to a string.
//
// encodingName is a WHATWG label ("utf-8", "windows-1252", ...). In strict
// mode undecodable input returns an error wrapping errors.ErrOutputDecode;
// in replace mode each bad sequence becomes U+FFFD.
func DecodeOutput(raw []byte, encodingName string, mode constants.DecodeMode) (string, error) {
	enc, err := htmlindex.Get(encodingName)
	if err != nil {
		return "", errors.Wrapf(errors.ErrUnknownEncoding, "%q", encodingName)
	}
	name, _ := htmlindex.Name(enc)

	if name == constants.DefaultEncoding && utf8.Valid(raw) {
		return string(raw), nil
	}
	if name == constants.DefaultEncoding && mode == constants.DecodeStrict {
		return "", fmt.Errorf("%w: invalid utf-8 at byte %d", errors.ErrOutputDecode, firstInvalidUTF8(raw))
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", errors.ErrOutputDecode, name, err)
	}
	// Decoders substitute U+FFFD for bad input instead of failing. A U+FFFD
	// that re-encodes to the original bytes was really in the output.
	if mode == constants.DecodeStrict && bytes.ContainsRune(decoded, utf8.RuneError) && !roundTrips(enc, decoded, raw) {
		return "", fmt.Errorf("%w: undecodable input for %s", errors.ErrOutputDecode, name)
	}
	return string(decoded), nil
}

// roundTrips reports whether encoding decoded with enc gives back raw.
func roundTrips(enc encoding.Encoding, decoded, raw []byte) bool {
	encoded, err := enc.NewEncoder().Bytes(decoded)
	return err == nil && bytes.Equal(encoded, raw)
}

// firstInvalidUTF8 returns the offset of the first invalid UTF-8 sequence, or -1.
func firstInvalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
