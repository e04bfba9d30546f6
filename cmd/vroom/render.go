package main

import (
	"time"

	"dasa.cc/glxr/glw"
	"dasa.cc/glxr/linear"
	"dasa.cc/glxr/scene"
	"dasa.cc/glxr/xr"
	"golang.org/x/mobile/gl"
)

// renderer paints the scene into swapchain images: one framebuffer and
// depth texture sized to the recommended eye extent, the acquired color
// image attached per eye.
type renderer struct {
	glctx  gl.Context
	stereo *xr.Stereo
	scn    *scene.Scene

	fb    glw.FrameBuffer
	depth glw.Texture
}

func newRenderer(glctx gl.Context, st *glw.GPUState, stereo *xr.Stereo) (*renderer, error) {
	r := &renderer{glctx: glctx, stereo: stereo, scn: scene.New(glctx)}
	if err := r.scn.Create(st); err != nil {
		return nil, err
	}

	v := stereo.Views()[0]
	r.fb.Create()
	r.depth.Create(glw.FilterNearest)
	bt := st.SetActiveTexture(0, &r.depth)
	err := r.depth.DepthStorage(int(v.RecommendedWidth), int(v.RecommendedHeight))
	bt.Unbind()
	if err != nil {
		r.delete()
		return nil, err
	}
	return r, nil
}

func (r *renderer) Before(t xr.Time) {
	pose, ok := r.stereo.LocateHand(t)
	r.scn.Step(time.Now(), scene.Hand{
		Position:    pose.Position,
		Orientation: pose.Orientation,
		Tracked:     ok,
	})
}

func (r *renderer) Paint(eye int, view xr.View, cfg xr.ViewConfigView, t xr.Time, image uint32, st *glw.GPUState) error {
	color := glw.TextureFrom(image)
	r.fb.Bind()
	r.fb.AttachColor(&color)
	r.fb.AttachDepth(&r.depth)
	r.glctx.Viewport(0, 0, int(cfg.RecommendedWidth), int(cfg.RecommendedHeight))

	pose := linear.TRS(view.Pose.Position, view.Pose.Orientation, linear.Vec3{1, 1, 1})
	return r.scn.PaintEye(st, view.Fov, pose)
}

func (r *renderer) After() { r.fb.Unbind() }

func (r *renderer) delete() {
	r.scn.Delete()
	r.depth.Delete()
	r.fb.Delete()
}
