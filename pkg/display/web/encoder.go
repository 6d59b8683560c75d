package web

import (
	"encoding/binary"
	"fmt"
	"image"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
)

const (
	cacheSize = 64
	// patchUnit is the number of dirty pixels a FramePatchingRatio
	// step allows before sending a whole frame.
	patchUnit = 4608
)

// settings are the hub settings used to encode frames.
type settings struct {
	compression      bool
	compressionLevel int
	framePatching    bool
	framePatchRatio  int
	frameSkipping    bool
}

// info packs s in a byte:
//
//	Bit 0: Emulator running
//	Bit 1: Emulator paused
//	Bit 2: Compression enabled
//	Bit 3: Frame patching enabled
//	Bit 4: Frame skipping enabled
func (s settings) info(running, paused bool) byte {
	var info byte
	for bit, set := range []bool{running, paused, s.compression, s.framePatching, s.frameSkipping} {
		if set {
			info |= 1 << bit
		}
	}
	return info
}

// encoder turns frames into the messages sent to the clients. Only
// the pixels that changed since the previous frame are sent when few
// of them did, and frames or patches already in the caches are sent
// as their cache index.
type encoder struct {
	current []byte // RGBA of the last frame
	patch   []byte // changed pixels, alpha 0 for the others

	frameCache, patchCache *cache
	skipped                uint32
}

func newEncoder(width, height int) *encoder {
	return &encoder{
		current:    make([]byte, width*height*4),
		patch:      make([]byte, width*height*4),
		frameCache: newCache(cacheSize),
		patchCache: newCache(cacheSize),
	}
}

// encode returns the messages for frame, or none when frame skipping
// is enabled and the frame didn't change.
func (e *encoder) encode(frame *image.RGBA, s settings) ([][]byte, error) {
	if len(frame.Pix) != len(e.current) {
		return nil, fmt.Errorf("web: frame of %d bytes, expected %d", len(frame.Pix), len(e.current))
	}

	clear(e.patch)
	dirty := 0
	for i := 0; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] != e.current[i] || frame.Pix[i+1] != e.current[i+1] || frame.Pix[i+2] != e.current[i+2] {
			copy(e.patch[i:i+3], frame.Pix[i:i+3])
			e.patch[i+3] = 0xFF
			dirty++
		}
	}
	copy(e.current, frame.Pix)

	if dirty == 0 && s.frameSkipping {
		e.skipped++
		return nil, nil
	}

	var messages [][]byte
	if e.skipped > 0 {
		messages = append(messages, binary.LittleEndian.AppendUint32([]byte{FrameSkip}, e.skipped))
		e.skipped = 0
	}

	typ, cached, buffer, c := Frame, FrameCache, e.current, e.frameCache
	if s.framePatching && dirty < s.framePatchRatio*patchUnit {
		typ, cached, buffer, c = FramePatch, PatchCache, e.patch, e.patchCache
	}

	output := buffer
	if s.compression {
		var err error
		output, err = cbrotli.Encode(buffer, cbrotli.WriterOptions{Quality: s.compressionLevel})
		if err != nil {
			return nil, fmt.Errorf("web: compressing frame: %w", err)
		}
	} else {
		output = append([]byte(nil), buffer...)
	}

	hash := xxhash.Sum64(output)
	if idx := c.index(hash); idx != -1 {
		return append(messages, binary.LittleEndian.AppendUint16([]byte{cached}, uint16(idx))), nil
	}
	idx := c.add(hash, output)
	msg := binary.LittleEndian.AppendUint16([]byte{typ}, uint16(idx))
	return append(messages, append(msg, output...)), nil
}

// sync returns the messages bringing a new client up to date: the
// current frame, then the caches.
func (e *encoder) sync() ([][]byte, error) {
	frame, err := cbrotli.Encode(e.current, cbrotli.WriterOptions{Quality: 9})
	if err != nil {
		return nil, fmt.Errorf("web: compressing frame: %w", err)
	}
	return [][]byte{
		append([]byte{FrameSync}, frame...),
		append([]byte{PatchCacheSync}, e.patchCache.sync()...),
		append([]byte{FrameCacheSync}, e.frameCache.sync()...),
	}, nil
}
