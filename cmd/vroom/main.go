// Command vroom presents the example scene through the flatscreen
// loopback compositor: both eyes composed side by side in a window.
// Drag to look around, press H to plant the hand, escape to exit.
package main

import (
	"image"
	"log"
	"math"
	"os"

	"dasa.cc/glxr/flatscreen"
	"dasa.cc/glxr/glw"
	"dasa.cc/glxr/linear"
	"dasa.cc/glxr/xr"
	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/gl"
)

func init() {
	log.SetFlags(0)
	log.SetPrefix("vroom: ")
}

func main() {
	app.Main(func(a app.App) {
		w := &VRWidget{}
		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				log.Println(e)
				w.OnLifecycleEvent(e)
				a.Send(paint.Event{})
			case size.Event:
				w.OnSizeEvent(e)
			case paint.Event:
				if w.ctx == nil || e.External {
					continue
				}
				w.Paint()
				a.Publish()
				a.Send(paint.Event{})
			case touch.Event, key.Event:
				w.OnInputEvent(e)
			}
		}
	})
}

type VRWidget struct {
	ctx  gl.Context
	size image.Point
	st   glw.GPUState

	comp   *flatscreen.Compositor
	stereo *xr.Stereo
	rend   *renderer

	yaw, pitch   float32
	lastX, lastY float32
	dragging     bool
	planted      bool
}

func (w *VRWidget) OnLifecycleEvent(e lifecycle.Event) {
	switch e.Crosses(lifecycle.StageVisible) {
	case lifecycle.CrossOn:
		glctx, _ := e.DrawContext.(gl.Context)
		w.ctx = glw.With(glctx)
		w.comp = flatscreen.New(w.ctx, &w.st)
		if w.size.X > 0 {
			w.comp.SetWindowSize(w.size.X, w.size.Y)
		}
		stereo, err := xr.NewStereo(w.comp, xr.GraphicsBinding{Version: contextVersion(w.ctx)}, xr.HandInput)
		if err != nil {
			log.Fatalf("stereo session: %v", err)
		}
		w.stereo = stereo
		rend, err := newRenderer(w.ctx, &w.st, w.stereo)
		if err != nil {
			log.Fatalf("renderer: %v", err)
		}
		w.rend = rend
	case lifecycle.CrossOff:
		w.teardown()
	}
}

func (w *VRWidget) teardown() {
	if w.rend != nil {
		w.rend.delete()
		w.rend = nil
	}
	if w.stereo != nil {
		if err := w.stereo.Close(); err != nil {
			log.Printf("close session: %v", err)
		}
		w.stereo = nil
	}
	w.comp = nil
	w.ctx = nil
	glw.With(nil)
}

func (w *VRWidget) OnSizeEvent(e size.Event) {
	w.size = e.Size()
	if w.comp != nil {
		w.comp.SetWindowSize(w.size.X, w.size.Y)
	}
}

func (w *VRWidget) Paint() {
	if w.stereo.PollEvents() == xr.PleaseStop {
		w.teardown()
		os.Exit(0)
	}
	w.comp.SetViewPose(xr.Posef{Orientation: w.look()})
	if err := w.stereo.PaintFrame(w.rend, &w.st); err != nil {
		log.Printf("paint frame: %v", err)
	}
}

// look folds the drag orbit into the camera orientation, yaw about Y
// then pitch about X.
func (w *VRWidget) look() linear.Quat {
	return linear.AxisAngle(linear.Vec3{0, 1, 0}, w.yaw).
		Mul(linear.AxisAngle(linear.Vec3{1, 0, 0}, w.pitch))
}

func (w *VRWidget) OnInputEvent(ev interface{}) {
	switch ev := ev.(type) {
	case touch.Event:
		switch ev.Type {
		case touch.TypeBegin:
			w.dragging = true
		case touch.TypeMove:
			if w.dragging && w.size.X > 0 && w.size.Y > 0 {
				w.yaw -= math.Pi * (ev.X - w.lastX) / float32(w.size.X)
				w.pitch -= math.Pi / 2 * (ev.Y - w.lastY) / float32(w.size.Y)
				if w.pitch > math.Pi/2 {
					w.pitch = math.Pi / 2
				}
				if w.pitch < -math.Pi/2 {
					w.pitch = -math.Pi / 2
				}
			}
		case touch.TypeEnd:
			w.dragging = false
		}
		w.lastX, w.lastY = ev.X, ev.Y
	case key.Event:
		if ev.Direction != key.DirPress {
			return
		}
		switch ev.Code {
		case key.CodeEscape:
			if w.stereo != nil {
				if err := w.stereo.RequestExit(); err != nil {
					log.Printf("request exit: %v", err)
				}
			}
		case key.CodeH:
			w.planted = !w.planted
			if w.comp != nil {
				w.comp.SetHandPose(xr.Posef{
					Orientation: linear.QuatIdent(),
					Position:    linear.Vec3{0.3, -0.2, -1},
				}, w.planted)
			}
		}
	}
}

// contextVersion reads the major GL version the context reports.
func contextVersion(glctx gl.Context) xr.Version {
	s := glctx.GetString(gl.VERSION)
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return xr.MakeVersion(uint32(s[i]-'0'), 0, 0)
		}
	}
	return xr.MakeVersion(2, 0, 0)
}
