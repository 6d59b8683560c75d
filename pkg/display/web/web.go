// Package web implements a display driver streaming the frames to
// browsers over websockets. The first browser to connect plays, the
// others watch.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/thelolagemann/gameboj/internal/joypad"
	"github.com/thelolagemann/gameboj/pkg/display"
	"github.com/thelolagemann/gameboj/pkg/display/event"
	"github.com/thelolagemann/gameboj/pkg/log"
	"github.com/thelolagemann/gameboj/pkg/utils"
)

func init() {
	driver := &webDriver{log: log.NewNullLogger()}
	display.Install("web", driver, []display.DriverOption{
		{
			Name:        "listen",
			Default:     "localhost:8080",
			Value:       &driver.listen,
			Type:        "string",
			Description: "Address to listen on for websocket clients",
		},
		{
			Name:        "compression",
			Default:     true,
			Value:       &driver.settings.compression,
			Type:        "bool",
			Description: "Compress the frames with brotli",
		},
		{
			Name:        "compression-level",
			Default:     5,
			Value:       &driver.settings.compressionLevel,
			Type:        "int",
			Description: "Brotli quality, from 0 to 11",
		},
		{
			Name:        "frame-patching",
			Default:     true,
			Value:       &driver.settings.framePatching,
			Type:        "bool",
			Description: "Only send the pixels that changed when few of them did",
		},
		{
			Name:        "frame-patch-ratio",
			Default:     2,
			Value:       &driver.settings.framePatchRatio,
			Type:        "int",
			Description: "Number of 4608 changed pixels steps below which frames are patched",
		},
		{
			Name:        "frame-skipping",
			Default:     true,
			Value:       &driver.settings.frameSkipping,
			Type:        "bool",
			Description: "Don't send frames identical to the previous one",
		},
	})
}

type webDriver struct {
	listen   string
	settings settings

	emu    display.Emulator
	log    log.Logger
	cancel context.CancelFunc
}

// SetLogger sets the logger of the driver.
func (w *webDriver) SetLogger(l log.Logger) {
	w.log = log.WithComponent(l, "web")
}

func (w *webDriver) Initialize(emu display.Emulator, _ display.Keys) {
	w.emu = emu
}

// Start serves the websocket clients until an event.Quit is received,
// or Stop is called.
func (w *webDriver) Start(frames <-chan display.Frame, events <-chan event.Event, pressed, released chan<- joypad.Button) error {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	defer cancel()

	s := w.settings
	s.compressionLevel = utils.Clamp(0, s.compressionLevel, 11)
	h := newHub(w.emu, s, pressed, released, w.log)
	go h.run(ctx)

	server := &http.Server{
		Addr:              w.listen,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()
	w.log.Infof("listening on %s", w.listen)

	defer func() {
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(shutdown)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("web: %w", err)
		case f := <-frames:
			if err := h.frame(f); err != nil {
				w.log.Errorf("%v", err)
			}
		case e := <-events:
			switch e.Type {
			case event.Title:
				h.send(append([]byte{Title}, fmt.Sprint(e.Data)...))
			case event.Error:
				h.send(append([]byte{Error}, fmt.Sprint(e.Data)...))
			case event.Quit:
				return nil
			}
		}
	}
}

// Stop stops the display driver.
func (w *webDriver) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	return nil
}
