// Package flatscreen is a loopback compositor for plain windows. It
// implements the xr interfaces without a headset: swapchains are rings
// of GL textures, views are a fixed IPD-offset stereo pair around a
// settable camera pose, and EndFrame composes both eyes side by side
// into the window framebuffer.
package flatscreen

import (
	"fmt"
	"time"

	"dasa.cc/glxr/glw"
	"dasa.cc/glxr/linear"
	"dasa.cc/glxr/xr"
	"golang.org/x/mobile/gl"
)

// Results this runtime hands back, matching the native numbering.
const (
	resultValidationFailure xr.Result = -1
	resultCallOrderInvalid  xr.Result = -37
)

// WindowSize sets the window extent the two eyes split.
func WindowSize(width, height int) func(*Compositor) {
	return func(c *Compositor) { c.width, c.height = width, height }
}

// IPD sets the eye separation in meters.
func IPD(meters float32) func(*Compositor) {
	return func(c *Compositor) { c.ipd = meters }
}

// FieldOfView sets the per eye field of view.
func FieldOfView(fov linear.Fov) func(*Compositor) {
	return func(c *Compositor) { c.fov = fov }
}

// Compositor is the loopback runtime. One session at a time; the camera
// pose and hand pose are plumbed in from the window's input events.
type Compositor struct {
	glctx gl.Context
	st    *glw.GPUState

	width, height int
	ipd           float32
	fov           linear.Fov
	pose          xr.Posef

	hand        xr.Posef
	handTracked bool

	events  []xr.Event
	paths   []string
	session *session
	blit    *blitter
}

// New returns a compositor painting through glctx. The queue opens with
// IDLE and READY so session negotiation can proceed immediately.
func New(glctx gl.Context, st *glw.GPUState, options ...func(*Compositor)) *Compositor {
	c := &Compositor{
		glctx:  glctx,
		st:     st,
		width:  1600,
		height: 900,
		ipd:    0.063,
		fov:    linear.Fov{AngleLeft: -0.8, AngleRight: 0.8, AngleUp: 0.8, AngleDown: -0.8},
		pose:   xr.IdentityPose(),
	}
	for _, opt := range options {
		opt(c)
	}
	c.push(xr.SessionStateChanged{State: xr.StateIdle, Time: now()})
	c.push(xr.SessionStateChanged{State: xr.StateReady, Time: now()})
	return c
}

func now() xr.Time { return xr.Time(time.Now().UnixNano()) }

func (c *Compositor) push(ev xr.Event) { c.events = append(c.events, ev) }

// SetWindowSize tracks the window so composition fills it. The per eye
// swapchain extent is fixed at session setup and does not follow.
func (c *Compositor) SetWindowSize(width, height int) {
	c.width, c.height = width, height
}

// SetViewPose moves the camera both eyes offset from.
func (c *Compositor) SetViewPose(pose xr.Posef) { c.pose = pose }

// SetHandPose plants the tracked hand, standing in for a controller.
func (c *Compositor) SetHandPose(pose xr.Posef, tracked bool) {
	c.hand, c.handTracked = pose, tracked
}

func (c *Compositor) GraphicsRequirements() (xr.GraphicsRequirements, error) {
	return xr.GraphicsRequirements{
		MinVersion: xr.MakeVersion(2, 0, 0),
		MaxVersion: xr.MakeVersion(4, 6, 0),
	}, nil
}

func (c *Compositor) ViewConfigViews(t xr.ViewConfigType) ([]xr.ViewConfigView, error) {
	if t != xr.ViewConfigStereo {
		return nil, xr.Annotate(c, "enumerate view configuration views", resultValidationFailure)
	}
	v := xr.ViewConfigView{
		RecommendedWidth:   int32(c.width / 2),
		RecommendedHeight:  int32(c.height),
		RecommendedSamples: 1,
	}
	return []xr.ViewConfigView{v, v}, nil
}

func (c *Compositor) CreateSession(binding xr.GraphicsBinding) (xr.Session, error) {
	if c.session != nil {
		return nil, xr.Annotate(c, "create session", resultCallOrderInvalid)
	}
	c.session = &session{comp: c}
	return c.session, nil
}

func (c *Compositor) PollEvent() (xr.Event, bool) {
	if len(c.events) == 0 {
		return nil, false
	}
	ev := c.events[0]
	c.events = c.events[1:]
	return ev, true
}

func (c *Compositor) DecodeResult(r xr.Result) string {
	switch r {
	case 0:
		return "SUCCESS"
	case xr.ResultTimeoutExpired:
		return "TIMEOUT_EXPIRED"
	case resultValidationFailure:
		return "VALIDATION_FAILURE"
	case resultCallOrderInvalid:
		return "CALL_ORDER_INVALID"
	}
	return ""
}

func (c *Compositor) CreateActionSet(name, localized string, priority uint32) (xr.ActionSet, error) {
	return &actionSet{comp: c}, nil
}

func (c *Compositor) StringToPath(s string) (xr.Path, error) {
	if s == "" || s[0] != '/' {
		return 0, xr.Annotate(c, "string to path", resultValidationFailure)
	}
	for i, p := range c.paths {
		if p == s {
			return xr.Path(i + 1), nil
		}
	}
	c.paths = append(c.paths, s)
	return xr.Path(len(c.paths)), nil
}

func (c *Compositor) SuggestBindings(profile xr.Path, bindings []xr.SuggestedBinding) error {
	if int(profile) < 1 || int(profile) > len(c.paths) {
		return xr.Annotate(c, "suggest interaction profile bindings", resultValidationFailure)
	}
	return nil
}

// ensureBlit builds the composition program and quad on first use, once
// a GL context is known good.
func (c *Compositor) ensureBlit() error {
	if c.blit != nil {
		return nil
	}
	b := new(blitter)
	if err := b.create(c.st); err != nil {
		return err
	}
	c.blit = b
	return nil
}

type actionSet struct {
	comp *Compositor
}

func (a *actionSet) CreatePoseAction(name, localized string) (xr.PoseAction, error) {
	return &poseAction{comp: a.comp}, nil
}

func (a *actionSet) Destroy() error { return nil }

type poseAction struct {
	comp *Compositor
}

func (p *poseAction) CreateSpace(s xr.Session, subaction xr.Path, pose xr.Posef) (xr.Space, error) {
	return &handSpace{comp: p.comp}, nil
}

// handSpace reports the planted hand pose, untracked until one is set.
type handSpace struct {
	comp *Compositor
}

func (h *handSpace) Locate(base xr.Space, t xr.Time) (xr.SpaceLocation, error) {
	if !h.comp.handTracked {
		return xr.SpaceLocation{}, nil
	}
	return xr.SpaceLocation{
		Flags: xr.LocationOrientationValid | xr.LocationPositionValid |
			xr.LocationOrientationTracked | xr.LocationPositionTracked,
		Pose: h.comp.hand,
	}, nil
}

func (h *handSpace) Destroy() error { return nil }

// refSpace is a reference space at a fixed offset from the origin.
type refSpace struct {
	pose xr.Posef
}

func (r *refSpace) Locate(base xr.Space, t xr.Time) (xr.SpaceLocation, error) {
	return xr.SpaceLocation{
		Flags: xr.LocationOrientationValid | xr.LocationPositionValid |
			xr.LocationOrientationTracked | xr.LocationPositionTracked,
		Pose: r.pose,
	}, nil
}

func (r *refSpace) Destroy() error { return nil }

var _ xr.Compositor = (*Compositor)(nil)

func unsupportedLayer(l xr.CompositionLayer) error {
	return fmt.Errorf("unsupported composition layer %T", l)
}
