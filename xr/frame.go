package xr

import (
	"errors"
	"fmt"

	"dasa.cc/glxr/glw"
)

// Painter produces frame content. Before runs once per frame ahead of
// any eye, Paint once per eye against an acquired swapchain image, and
// After once after every eye was attempted.
type Painter interface {
	Before(t Time)
	Paint(eye int, view View, cfg ViewConfigView, t Time, image uint32, st *glw.GPUState) error
	After()
}

// PaintFrame runs one frame of the presentation protocol: wait, begin,
// locate both eyes, paint each eye against its acquired swapchain image,
// and compose a projection layer at the predicted display time.
//
// Eye failures are collected rather than aborting the sibling eye. When
// any eye failed, every failure is logged, the first is returned, and
// the frame ends without layers.
func (s *Stereo) PaintFrame(p Painter, st *glw.GPUState) error {
	fs, err := s.session.WaitFrame()
	if err != nil {
		return err
	}
	if err := s.session.BeginFrame(); err != nil {
		return err
	}

	end := FrameEndInfo{DisplayTime: fs.PredictedDisplayTime, BlendMode: BlendOpaque}
	if !fs.ShouldRender {
		return s.session.EndFrame(end)
	}

	p.Before(fs.PredictedDisplayTime)

	views, err := s.session.LocateViews(s.space, fs.PredictedDisplayTime)
	if err != nil {
		return err
	}
	if len(views) != len(s.chains) {
		return fmt.Errorf("located %d views for %d swapchains", len(views), len(s.chains))
	}

	var failed []EyeError
	for eye := range s.chains {
		if err := s.paintEye(p, eye, views[eye], fs.PredictedDisplayTime, st); err != nil {
			failed = append(failed, EyeError{Eye: eye, Err: err})
		}
	}

	p.After()

	if len(failed) > 0 {
		for i := range failed {
			logger.Printf("paint frame: %v", &failed[i])
		}
		if err := s.session.EndFrame(end); err != nil {
			logger.Printf("end frame after eye failure: %v", err)
		}
		return &failed[0]
	}

	layer := CompositionLayerProjection{Space: s.space, Views: make([]ProjectionView, len(views))}
	for eye, v := range views {
		layer.Views[eye] = ProjectionView{
			Pose: v.Pose,
			Fov:  v.Fov,
			SubImage: SwapchainSubImage{
				Swapchain: s.chains[eye],
				Rect: Rect2Di{
					Extent: Extent2Di{
						Width:  s.views[eye].RecommendedWidth,
						Height: s.views[eye].RecommendedHeight,
					},
				},
			},
		}
	}
	end.Layers = []CompositionLayer{layer}
	return s.session.EndFrame(end)
}

// paintEye runs acquire, wait, paint, release for one eye. Release is
// attempted whenever acquire succeeded, even when a later step failed.
func (s *Stereo) paintEye(p Painter, eye int, view View, t Time, st *glw.GPUState) error {
	chain := s.chains[eye]
	idx, err := chain.Acquire()
	if err != nil {
		return err
	}

	if err := chain.Wait(s.WaitImageTimeout); err != nil {
		if rerr := chain.Release(); rerr != nil {
			logger.Printf("eye %d: release after failed wait: %v", eye, rerr)
		}
		var cerr *CallError
		if errors.As(err, &cerr) && cerr.Code == ResultTimeoutExpired {
			return &AcquireTimeoutError{Eye: eye, Timeout: s.WaitImageTimeout}
		}
		return err
	}

	images := s.images[eye]
	if idx < 0 || idx >= len(images) {
		if rerr := chain.Release(); rerr != nil {
			logger.Printf("eye %d: release after bad index: %v", eye, rerr)
		}
		return fmt.Errorf("acquired image index %d of %d", idx, len(images))
	}

	perr := p.Paint(eye, view, s.views[eye], t, images[idx], st)
	if rerr := chain.Release(); rerr != nil {
		if perr == nil {
			return rerr
		}
		logger.Printf("eye %d: release after failed paint: %v", eye, rerr)
	}
	return perr
}
