//go:build !linux

package web

import (
	"net"
	"time"
)

// roundTrip is only implemented on linux.
func roundTrip(net.Conn) (time.Duration, bool) {
	return 0, false
}
