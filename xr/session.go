package xr

import (
	"fmt"
	"time"

	"golang.org/x/exp/slices"
)

// readyPollInterval paces the event poll while waiting for the session
// to reach READY.
const readyPollInterval = 100 * time.Millisecond

// HandInput requests a hand pose tracker, attached before the session
// begins.
func HandInput(s *Stereo) { s.wantHands = true }

/// Stereo owns one two-view session: the session itself, its local
// reference space, and one swapchain with its image list per view.
type Stereo struct {
	// WaitImageTimeout bounds the per-eye swapchain image wait.
	WaitImageTimeout Duration

	// Hands is non-nil when the session was created with HandInput.
	Hands *HandTracker

	comp    Compositor
	session Session
	space   Space
	views   []ViewConfigView
	format  int64
	chains  []Swapchain
	images  [][]uint32
	state   SessionState

	wantHands bool
}

// NewStereo negotiates and begins a stereo session against comp. The
// returned session has its swapchains created and images enumerated and
// is ready for PaintFrame.
func NewStereo(comp Compositor, binding GraphicsBinding, options ...func(*Stereo)) (*Stereo, error) {
	s := &Stereo{WaitImageTimeout: InfiniteDuration, comp: comp}
	for _, opt := range options {
		opt(s)
	}

	req, err := comp.GraphicsRequirements()
	if err != nil {
		return nil, err
	}
	if binding.Version < req.MinVersion {
		return nil, fmt.Errorf("gl version %v below compositor minimum %v", binding.Version, req.MinVersion)
	}

	s.views, err = comp.ViewConfigViews(ViewConfigStereo)
	if err != nil {
		return nil, err
	}
	if len(s.views) != 2 {
		return nil, fmt.Errorf("stereo view configuration reports %d views, want 2", len(s.views))
	}

	s.session, err = comp.CreateSession(binding)
	if err != nil {
		return nil, err
	}

	s.space, err = s.session.CreateReferenceSpace(ReferenceSpaceCreateInfo{
		Type: RefSpaceLocal,
		Pose: IdentityPose(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.waitReady(); err != nil {
		return nil, err
	}

	if err := s.createSwapchains(binding); err != nil {
		return nil, err
	}

	if s.wantHands {
		s.Hands, err = newHandTracker(comp, s.session)
		if err != nil {
			return nil, err
		}
	}

	if err := s.session.Begin(ViewConfigStereo); err != nil {
		return nil, err
	}
	return s, nil
}

// waitReady drains events until the session reaches READY, honoring
// terminal states on the way.
func (s *Stereo) waitReady() error {
	for {
		for ev, ok := s.comp.PollEvent(); ok; ev, ok = s.comp.PollEvent() {
			switch ev := ev.(type) {
			case SessionStateChanged:
				s.state = ev.State
			default:
				logger.Printf("ignoring %T while waiting for READY", ev)
			}
		}
		switch s.state {
		case StateReady:
			return nil
		case StateStopping, StateLossPending, StateExiting:
			return fmt.Errorf("session reached %v before READY", s.state)
		}
		time.Sleep(readyPollInterval)
	}
}

// createSwapchains negotiates the image format from the runtime's
// preference-ordered list and builds one swapchain per view.
func (s *Stereo) createSwapchains(binding GraphicsBinding) error {
	formats, err := s.session.SwapchainFormats()
	if err != nil {
		return err
	}
	allowed := []int64{FormatRGBA8, FormatRGBA8SNorm}
	if binding.Version.Major() >= 3 {
		allowed = append(allowed, FormatSRGB8A8)
	}
	s.format = 0
	for _, f := range formats {
		if slices.Contains(allowed, f) {
			s.format = f
			break
		}
	}
	if s.format == 0 {
		return fmt.Errorf("no usable swapchain format: runtime offers %#x, want one of %#x", formats, allowed)
	}

	for _, v := range s.views {
		chain, err := s.session.CreateSwapchain(SwapchainCreateInfo{
			UsageFlags:  UsageSampled | UsageColorAttachment,
			Format:      s.format,
			SampleCount: 1,
			Width:       v.RecommendedWidth,
			Height:      v.RecommendedHeight,
			FaceCount:   1,
			ArraySize:   1,
			MipCount:    1,
		})
		if err != nil {
			return err
		}
		images, err := chain.Images()
		if err != nil {
			return err
		}
		if len(images) == 0 {
			return fmt.Errorf("swapchain reports no images")
		}
		s.chains = append(s.chains, chain)
		s.images = append(s.images, images)
	}
	return nil
}

// LocateHand reports the tracked hand pose at t, or false when hand
// input is inactive or the pose is not yet valid.
func (s *Stereo) LocateHand(t Time) (Posef, bool) {
	if s.Hands == nil {
		return Posef{}, false
	}
	return s.Hands.Locate(s.session, s.space, t)
}

// Format reports the negotiated swapchain image format.
func (s *Stereo) Format() int64 { return s.format }

// Views reports the per-view recommended extents.
func (s *Stereo) Views() []ViewConfigView { return s.views }

// PollEvents drains the event queue and folds the observed session
// state: PleaseStop once STOPPING, LOSS_PENDING or EXITING was seen,
// else Groovy.
func (s *Stereo) PollEvents() LoopStatus {
	for ev, ok := s.comp.PollEvent(); ok; ev, ok = s.comp.PollEvent() {
		switch ev := ev.(type) {
		case SessionStateChanged:
			s.state = ev.State
		case InstanceLossPending:
			logger.Printf("instance loss pending at %d", ev.LossTime)
			return PleaseStop
		case EventsLost:
			logger.Printf("%d events lost", ev.Count)
		default:
			logger.Printf("ignoring %T", ev)
		}
	}
	switch s.state {
	case StateStopping, StateLossPending, StateExiting:
		return PleaseStop
	}
	return Groovy
}

// RequestExit asks the compositor to wind the session down; the next
// PollEvents calls report PleaseStop once the state transitions.
func (s *Stereo) RequestExit() error { return s.session.RequestExit() }

// Close releases swapchains, spaces and the session. The first failure
// is returned; later ones are logged.
func (s *Stereo) Close() error {
	var first error
	fail := func(err error) {
		if err == nil {
			return
		}
		if first == nil {
			first = err
		} else {
			logger.Printf("close: %v", err)
		}
	}
	for _, chain := range s.chains {
		fail(chain.Destroy())
	}
	s.chains = nil
	if s.Hands != nil {
		fail(s.Hands.Close())
		s.Hands = nil
	}
	if s.space != nil {
		fail(s.space.Destroy())
		s.space = nil
	}
	if s.session != nil {
		fail(s.session.End())
		fail(s.session.Close())
		s.session = nil
	}
	return first
}
