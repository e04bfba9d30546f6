package flatscreen

import (
	"dasa.cc/glxr/linear"
	"dasa.cc/glxr/xr"
	"golang.org/x/mobile/gl"
)

const displayPeriod = xr.Duration(16666667)

// session is the one presentation session the loopback runs. Frame
// calls follow the wait, begin, end protocol; EndFrame composes.
type session struct {
	comp *Compositor

	began      bool
	frameBegun bool
	stopping   bool
	chains     []*Swapchain
}

func (s *session) Begin(t xr.ViewConfigType) error {
	if t != xr.ViewConfigStereo {
		return xr.Annotate(s.comp, "begin session", resultValidationFailure)
	}
	if s.began {
		return xr.Annotate(s.comp, "begin session", resultCallOrderInvalid)
	}
	s.began = true
	for _, st := range []xr.SessionState{xr.StateSynchronized, xr.StateVisible, xr.StateFocused} {
		s.comp.push(xr.SessionStateChanged{State: st, Time: now()})
	}
	return nil
}

func (s *session) RequestExit() error {
	if s.stopping {
		return nil
	}
	s.stopping = true
	s.comp.push(xr.SessionStateChanged{State: xr.StateStopping, Time: now()})
	return nil
}

func (s *session) End() error {
	if !s.began {
		return xr.Annotate(s.comp, "end session", resultCallOrderInvalid)
	}
	s.began = false
	s.comp.push(xr.SessionStateChanged{State: xr.StateIdle, Time: now()})
	return nil
}

func (s *session) Close() error {
	s.comp.session = nil
	return nil
}

func (s *session) CreateReferenceSpace(info xr.ReferenceSpaceCreateInfo) (xr.Space, error) {
	switch info.Type {
	case xr.RefSpaceView, xr.RefSpaceLocal, xr.RefSpaceStage:
	default:
		return nil, xr.Annotate(s.comp, "create reference space", resultValidationFailure)
	}
	return &refSpace{pose: info.Pose}, nil
}

func (s *session) SwapchainFormats() ([]int64, error) {
	return []int64{xr.FormatRGBA8, xr.FormatSRGB8A8}, nil
}

func (s *session) CreateSwapchain(ci xr.SwapchainCreateInfo) (xr.Swapchain, error) {
	if ci.Width <= 0 || ci.Height <= 0 {
		return nil, xr.Annotate(s.comp, "create swapchain", resultValidationFailure)
	}
	sc, err := newSwapchain(s.comp, int(ci.Width), int(ci.Height))
	if err != nil {
		return nil, err
	}
	s.chains = append(s.chains, sc)
	return sc, nil
}

func (s *session) WaitFrame() (xr.FrameState, error) {
	if !s.began {
		return xr.FrameState{}, xr.Annotate(s.comp, "wait frame", resultCallOrderInvalid)
	}
	return xr.FrameState{
		PredictedDisplayTime:   now() + xr.Time(displayPeriod),
		PredictedDisplayPeriod: displayPeriod,
		ShouldRender:           !s.stopping,
	}, nil
}

func (s *session) BeginFrame() error {
	if !s.began {
		return xr.Annotate(s.comp, "begin frame", resultCallOrderInvalid)
	}
	s.frameBegun = true
	return nil
}

// LocateViews reports the stereo pair: the camera pose shifted half the
// IPD along its local X per eye, both sharing the symmetric FOV.
func (s *session) LocateViews(space xr.Space, t xr.Time) ([]xr.View, error) {
	c := s.comp
	m := linear.TRS(c.pose.Position, c.pose.Orientation, linear.Vec3{1, 1, 1})
	views := make([]xr.View, 2)
	for eye := range views {
		offset := linear.Vec3{-c.ipd / 2, 0, 0}
		if eye == 1 {
			offset[0] = c.ipd / 2
		}
		views[eye] = xr.View{
			Pose: xr.Posef{
				Orientation: c.pose.Orientation,
				Position:    m.TransformVec3(offset),
			},
			Fov: c.fov,
		}
	}
	return views, nil
}

// EndFrame composes the released image of each projection view side by
// side into the window framebuffer. A frame without layers blanks the
// window.
func (s *session) EndFrame(info xr.FrameEndInfo) error {
	if !s.frameBegun {
		return xr.Annotate(s.comp, "end frame", resultCallOrderInvalid)
	}
	s.frameBegun = false

	c := s.comp
	c.glctx.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{})
	c.glctx.Viewport(0, 0, c.width, c.height)
	c.glctx.Disable(gl.DEPTH_TEST)
	c.glctx.ClearColor(0, 0, 0, 1)
	c.glctx.Clear(gl.COLOR_BUFFER_BIT)

	for _, l := range info.Layers {
		proj, ok := l.(xr.CompositionLayerProjection)
		if !ok {
			return unsupportedLayer(l)
		}
		if err := c.ensureBlit(); err != nil {
			return err
		}
		cell := c.width / 2
		if n := len(proj.Views); n > 0 {
			cell = c.width / n
		}
		for i, pv := range proj.Views {
			sc, ok := pv.SubImage.Swapchain.(*Swapchain)
			if !ok {
				return xr.Annotate(c, "end frame", resultValidationFailure)
			}
			tex, err := sc.presented()
			if err != nil {
				return err
			}
			c.glctx.Viewport(i*cell, 0, cell, c.height)
			if err := c.blit.paint(c.st, tex); err != nil {
				return err
			}
		}
	}
	c.glctx.Viewport(0, 0, c.width, c.height)
	return nil
}

func (s *session) AttachActionSets(sets ...xr.ActionSet) error {
	if s.began {
		return xr.Annotate(s.comp, "attach action sets", resultCallOrderInvalid)
	}
	return nil
}

func (s *session) SyncActions(sets ...xr.ActionSet) error {
	if !s.began {
		return xr.Annotate(s.comp, "sync actions", resultCallOrderInvalid)
	}
	return nil
}

var _ xr.Session = (*session)(nil)
