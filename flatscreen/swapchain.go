package flatscreen

import (
	"dasa.cc/glxr/glw"
	"dasa.cc/glxr/linear"
	"dasa.cc/glxr/shade"
	"dasa.cc/glxr/xr"
	"golang.org/x/image/math/f32"
	"golang.org/x/mobile/gl"
)

const swapchainDepth = 3

// Swapchain is a ring of GL textures. One image may be outstanding
// between Acquire and Release; the last released image is what EndFrame
// composes.
type Swapchain struct {
	comp     *Compositor
	textures []glw.Texture
	next     int
	acquired int
	released int
}

func newSwapchain(c *Compositor, width, height int) (*Swapchain, error) {
	sc := &Swapchain{comp: c, acquired: -1, released: -1}
	for i := 0; i < swapchainDepth; i++ {
		var tex glw.Texture
		tex.Create()
		bt := c.st.SetActiveTexture(0, &tex)
		err := tex.ColorStorage(width, height)
		bt.Unbind()
		if err != nil {
			tex.Delete()
			sc.Destroy()
			return nil, err
		}
		sc.textures = append(sc.textures, tex)
	}
	return sc, nil
}

func (sc *Swapchain) Images() ([]uint32, error) {
	names := make([]uint32, len(sc.textures))
	for i := range sc.textures {
		names[i] = sc.textures[i].Value
	}
	return names, nil
}

func (sc *Swapchain) Acquire() (int, error) {
	if sc.acquired != -1 {
		return 0, xr.Annotate(sc.comp, "acquire swapchain image", resultCallOrderInvalid)
	}
	sc.acquired = sc.next
	sc.next = (sc.next + 1) % len(sc.textures)
	return sc.acquired, nil
}

// Wait succeeds immediately; loopback images are renderable as soon as
// they are acquired.
func (sc *Swapchain) Wait(timeout xr.Duration) error {
	if sc.acquired == -1 {
		return xr.Annotate(sc.comp, "wait swapchain image", resultCallOrderInvalid)
	}
	return nil
}

func (sc *Swapchain) Release() error {
	if sc.acquired == -1 {
		return xr.Annotate(sc.comp, "release swapchain image", resultCallOrderInvalid)
	}
	sc.released = sc.acquired
	sc.acquired = -1
	return nil
}

func (sc *Swapchain) Destroy() error {
	for i := range sc.textures {
		sc.textures[i].Delete()
	}
	sc.textures = nil
	return nil
}

// presented returns the texture most recently released for composition.
func (sc *Swapchain) presented() (*glw.Texture, error) {
	if sc.released == -1 {
		return nil, xr.Annotate(sc.comp, "compose swapchain image", resultCallOrderInvalid)
	}
	return &sc.textures[sc.released], nil
}

var _ xr.Swapchain = (*Swapchain)(nil)

// blitter samples an eye texture across the current viewport. Rendered
// texture rows run bottom up, so the quad is drawn Y flipped.
type blitter struct {
	prg  shade.RawTexture
	rect *glw.VertexElement
}

func (b *blitter) create(st *glw.GPUState) error {
	if err := b.prg.Create(); err != nil {
		return err
	}
	b.prg.Use()
	b.prg.Tex.Set(0)
	b.prg.Matrix.Set(f32.Mat4(linear.Scaling(linear.Vec3{1, -1, 1})))
	var err error
	b.rect, err = shade.UVRect(st, b.prg.Position, b.prg.Texcoord)
	return err
}

func (b *blitter) paint(st *glw.GPUState, tex *glw.Texture) error {
	b.prg.Use()
	bt := st.SetActiveTexture(0, tex)
	defer bt.Unbind()
	return b.rect.Draw(st, gl.TRIANGLE_STRIP)
}
