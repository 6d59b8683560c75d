package web

// The wire protocol is binary: the first byte of every websocket
// message tells its kind, the rest is its payload.

// Setting is a hub option a client changes with [Control, Setting,
// value]. The change is echoed to the other clients as ClientInfo.
type Setting = uint8

const (
	_                  Setting = iota
	Compression                // brotli on (1) or off (0)
	CompressionLevel           // brotli quality, 0 to 11
	FramePatching              // send patches against the previous frame
	FrameSkipping              // skip frames identical to the previous one
	ClientStatus               // settings and emulator status, sent on connect
	FramePatchingRatio         // dirty pixel threshold, in patchUnit
	RegisterUsername           // the value is the name
)

// Messages read from the clients.
const (
	// Command carries an encoded emulator.CommandPacket. Only the
	// player may send it.
	Command   uint8 = 9
	Control   uint8 = 10
	KeepAlive uint8 = 254
	Closing   uint8 = 255
)

// Type is the kind of a message written to the clients.
type Type = uint8

const (
	Frame          Type = iota // a whole frame
	FramePatch                 // the changed pixels since the last frame
	FrameSkip                  // the number of unchanged frames skipped
	ClientInfo                 // a setting of a client changed
	PatchCache                 // a cached patch, by hash
	PatchCacheSync             // the hashes of the cached patches
	FrameCache                 // a cached frame, by hash
	FrameCacheSync             // the hashes of the cached frames
	FrameSync                  // the current frame, for a new client
	ClientListSync             // the connected clients
	ClientClosing              // a client left
	ServerInfo                 // the round trip time of every client
	PlayerIdentify             // the receiver is the player
	Title                      // the window title changed
	Error                      // the emulator stopped on an error
)
