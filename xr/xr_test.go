package xr

import (
	"fmt"

	"dasa.cc/glxr/glw"
	"dasa.cc/glxr/linear"
)

// fakeComp scripts a compositor: queued events, canned requirement and
// view answers, and a single session.
type fakeComp struct {
	req     GraphicsRequirements
	views   []ViewConfigView
	events  []Event
	session *fakeSession
	decoded map[Result]string

	actionSpace *fakeSpace
	paths       map[string]Path
	suggested   int
}

func newFakeComp() *fakeComp {
	return &fakeComp{
		req: GraphicsRequirements{
			MinVersion: MakeVersion(2, 0, 0),
			MaxVersion: MakeVersion(4, 6, 0),
		},
		views: []ViewConfigView{
			{RecommendedWidth: 32, RecommendedHeight: 32, RecommendedSamples: 1},
			{RecommendedWidth: 32, RecommendedHeight: 32, RecommendedSamples: 1},
		},
		events: []Event{SessionStateChanged{State: StateReady}},
		session: &fakeSession{
			formats: []int64{FormatRGBA8},
			frame:   FrameState{PredictedDisplayTime: 1000, ShouldRender: true},
		},
		decoded:     make(map[Result]string),
		actionSpace: &fakeSpace{},
		paths:       make(map[string]Path),
	}
}

func (f *fakeComp) GraphicsRequirements() (GraphicsRequirements, error) { return f.req, nil }

func (f *fakeComp) ViewConfigViews(ViewConfigType) ([]ViewConfigView, error) { return f.views, nil }

func (f *fakeComp) CreateSession(GraphicsBinding) (Session, error) { return f.session, nil }

func (f *fakeComp) PollEvent() (Event, bool) {
	if len(f.events) == 0 {
		return nil, false
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, true
}

func (f *fakeComp) DecodeResult(r Result) string { return f.decoded[r] }

func (f *fakeComp) CreateActionSet(name, localized string, priority uint32) (ActionSet, error) {
	f.session.record("CreateActionSet")
	return &fakeActionSet{comp: f}, nil
}

func (f *fakeComp) StringToPath(s string) (Path, error) {
	if p, ok := f.paths[s]; ok {
		return p, nil
	}
	p := Path(len(f.paths) + 1)
	f.paths[s] = p
	return p, nil
}

func (f *fakeComp) SuggestBindings(profile Path, bindings []SuggestedBinding) error {
	f.suggested += len(bindings)
	return nil
}

// fakeSession records the calls made against it in order.
type fakeSession struct {
	calls   []string
	formats []int64
	frame   FrameState
	views   []View
	chains  []*fakeChain
	ended   []FrameEndInfo

	waitFrameErr   error
	locateViewsErr error
}

func (s *fakeSession) record(call string) { s.calls = append(s.calls, call) }

func (s *fakeSession) called(call string) int {
	for i, c := range s.calls {
		if c == call {
			return i
		}
	}
	return -1
}

func (s *fakeSession) Begin(ViewConfigType) error { s.record("Begin"); return nil }
func (s *fakeSession) RequestExit() error         { s.record("RequestExit"); return nil }
func (s *fakeSession) End() error                 { s.record("End"); return nil }
func (s *fakeSession) Close() error               { s.record("Close"); return nil }

func (s *fakeSession) CreateReferenceSpace(ReferenceSpaceCreateInfo) (Space, error) {
	s.record("CreateReferenceSpace")
	return &fakeSpace{}, nil
}

func (s *fakeSession) SwapchainFormats() ([]int64, error) { return s.formats, nil }

func (s *fakeSession) CreateSwapchain(info SwapchainCreateInfo) (Swapchain, error) {
	s.record(fmt.Sprintf("CreateSwapchain(%dx%d, %#x)", info.Width, info.Height, info.Format))
	chain := &fakeChain{images: []uint32{uint32(100 + 10*len(s.chains)), uint32(101 + 10*len(s.chains))}}
	s.chains = append(s.chains, chain)
	return chain, nil
}

func (s *fakeSession) WaitFrame() (FrameState, error) {
	s.record("WaitFrame")
	return s.frame, s.waitFrameErr
}

func (s *fakeSession) BeginFrame() error { s.record("BeginFrame"); return nil }

func (s *fakeSession) LocateViews(space Space, t Time) ([]View, error) {
	s.record("LocateViews")
	if s.locateViewsErr != nil {
		return nil, s.locateViewsErr
	}
	if s.views != nil {
		return s.views, nil
	}
	views := make([]View, len(s.chains))
	for i := range views {
		views[i] = View{Pose: IdentityPose(), Fov: symmetricFov}
	}
	return views, nil
}

func (s *fakeSession) EndFrame(info FrameEndInfo) error {
	s.record("EndFrame")
	s.ended = append(s.ended, info)
	return nil
}

func (s *fakeSession) AttachActionSets(...ActionSet) error { s.record("AttachActionSets"); return nil }
func (s *fakeSession) SyncActions(...ActionSet) error      { s.record("SyncActions"); return nil }

// fakeChain cycles acquire over a two image ring.
type fakeChain struct {
	images []uint32
	next   int

	acquireErr error
	waitErr    error

	acquired  int
	released  int
	destroyed int
}

func (c *fakeChain) Images() ([]uint32, error) { return c.images, nil }

func (c *fakeChain) Acquire() (int, error) {
	if c.acquireErr != nil {
		return 0, c.acquireErr
	}
	idx := c.next
	c.next = (c.next + 1) % len(c.images)
	c.acquired++
	return idx, nil
}

func (c *fakeChain) Wait(Duration) error { return c.waitErr }
func (c *fakeChain) Release() error      { c.released++; return nil }
func (c *fakeChain) Destroy() error      { c.destroyed++; return nil }

type fakeSpace struct {
	loc SpaceLocation
	err error
}

func (s *fakeSpace) Locate(base Space, t Time) (SpaceLocation, error) { return s.loc, s.err }
func (s *fakeSpace) Destroy() error                                   { return nil }

type fakeActionSet struct {
	comp *fakeComp
}

func (s *fakeActionSet) CreatePoseAction(name, localized string) (PoseAction, error) {
	return &fakePoseAction{comp: s.comp}, nil
}

func (s *fakeActionSet) Destroy() error { return nil }

type fakePoseAction struct {
	comp *fakeComp
}

func (a *fakePoseAction) CreateSpace(s Session, subaction Path, pose Posef) (Space, error) {
	return a.comp.actionSpace, nil
}

var symmetricFov = linear.Fov{AngleLeft: -0.8, AngleRight: 0.8, AngleUp: 0.8, AngleDown: -0.8}

// recordPainter records eye paints and can fail selected eyes.
type recordPainter struct {
	before []Time
	eyes   []int
	images []uint32
	after  int
	fail   map[int]error
}

func (p *recordPainter) Before(t Time) { p.before = append(p.before, t) }

func (p *recordPainter) Paint(eye int, view View, cfg ViewConfigView, t Time, image uint32, st *glw.GPUState) error {
	p.eyes = append(p.eyes, eye)
	p.images = append(p.images, image)
	return p.fail[eye]
}

func (p *recordPainter) After() { p.after++ }
