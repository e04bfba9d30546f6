// Package xr drives a stereo compositor: session setup, swapchain
// negotiation, and the per-frame acquire, paint, release, compose
// protocol. The compositor itself is consumed through interfaces so
// native runtimes, the flatscreen loopback, and test fakes are
// interchangeable.
package xr

import (
	"fmt"
	"log"
	"os"

	"dasa.cc/glxr/linear"
)

var logger = log.New(os.Stderr, "xr: ", 0)

// Time is a compositor timestamp in nanoseconds.
type Time int64

// Duration is a span of compositor time in nanoseconds.
type Duration int64

// InfiniteDuration never times out.
const InfiniteDuration Duration = 0x7fffffffffffffff

// Version packs major.minor.patch the way the compositor reports API
// versions.
type Version uint64

func MakeVersion(major, minor, patch uint32) Version {
	return Version(uint64(major&0xffff)<<48 | uint64(minor&0xffff)<<32 | uint64(patch))
}

func (v Version) Major() uint32 { return uint32(v >> 48 & 0xffff) }
func (v Version) Minor() uint32 { return uint32(v >> 32 & 0xffff) }
func (v Version) Patch() uint32 { return uint32(v & 0xffffffff) }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// Result is a raw compositor call result. Zero and positive values are
// success codes.
type Result int32

func (r Result) Succeeded() bool { return r >= 0 }

// ResultTimeoutExpired is the success code a bounded wait reports when
// the timeout lapses first.
const ResultTimeoutExpired Result = 1

// Path names an interaction profile or input source.
type Path uint64

// Posef is an orientation and position; the identity pose has
// orientation w=1 and position at the origin.
type Posef struct {
	Orientation linear.Quat
	Position    linear.Vec3
}

func IdentityPose() Posef { return Posef{Orientation: linear.QuatIdent()} }

// View is one eye's pose and field of view for a predicted display time.
type View struct {
	Pose Posef
	Fov  linear.Fov
}

type Extent2Di struct {
	Width, Height int32
}

type Offset2Di struct {
	X, Y int32
}

type Rect2Di struct {
	Offset Offset2Di
	Extent Extent2Di
}

// ViewConfigView is the compositor's recommended render extent for one
// view.
type ViewConfigView struct {
	RecommendedWidth   int32
	RecommendedHeight  int32
	RecommendedSamples int32
}

type ViewConfigType int32

const (
	ViewConfigMono   ViewConfigType = 1
	ViewConfigStereo ViewConfigType = 2
)

type ReferenceSpaceType int32

const (
	RefSpaceView  ReferenceSpaceType = 1
	RefSpaceLocal ReferenceSpaceType = 2
	RefSpaceStage ReferenceSpaceType = 3
)

type ReferenceSpaceCreateInfo struct {
	Type ReferenceSpaceType
	Pose Posef
}

type SwapchainUsageFlags uint64

const (
	UsageColorAttachment SwapchainUsageFlags = 0x1
	UsageSampled         SwapchainUsageFlags = 0x20
)

// SwapchainCreateInfo mirrors the compositor's swapchain description.
type SwapchainCreateInfo struct {
	UsageFlags  SwapchainUsageFlags
	Format      int64
	SampleCount int32
	Width       int32
	Height      int32
	FaceCount   int32
	ArraySize   int32
	MipCount    int32
}

// GL internal formats eligible for swapchain negotiation.
const (
	FormatRGBA8      int64 = 0x8058
	FormatRGBA8SNorm int64 = 0x8F97
	FormatSRGB8A8    int64 = 0x8C43
)

type SessionState int32

const (
	StateUnknown SessionState = iota
	StateIdle
	StateReady
	StateSynchronized
	StateVisible
	StateFocused
	StateStopping
	StateLossPending
	StateExiting
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateReady:
		return "READY"
	case StateSynchronized:
		return "SYNCHRONIZED"
	case StateVisible:
		return "VISIBLE"
	case StateFocused:
		return "FOCUSED"
	case StateStopping:
		return "STOPPING"
	case StateLossPending:
		return "LOSS_PENDING"
	case StateExiting:
		return "EXITING"
	}
	return fmt.Sprintf("UNKNOWN(%d)", int32(s))
}

// Event is a drained compositor event; see SessionStateChanged,
// InstanceLossPending and EventsLost.
type Event interface{}

type SessionStateChanged struct {
	State SessionState
	Time  Time
}

type InstanceLossPending struct {
	LossTime Time
}

type EventsLost struct {
	Count int
}

// FrameState is the compositor's answer to WaitFrame.
type FrameState struct {
	PredictedDisplayTime   Time
	PredictedDisplayPeriod Duration
	ShouldRender           bool
}

type EnvironmentBlendMode int32

const (
	BlendOpaque     EnvironmentBlendMode = 1
	BlendAdditive   EnvironmentBlendMode = 2
	BlendAlphaBlend EnvironmentBlendMode = 3
)

// CompositionLayer is a layer submittable through EndFrame.
type CompositionLayer interface {
	compositionLayer()
}

// CompositionLayerProjection presents one sub-image per eye.
type CompositionLayerProjection struct {
	Space Space
	Views []ProjectionView
}

func (CompositionLayerProjection) compositionLayer() {}

type ProjectionView struct {
	Pose     Posef
	Fov      linear.Fov
	SubImage SwapchainSubImage
}

type SwapchainSubImage struct {
	Swapchain  Swapchain
	Rect       Rect2Di
	ArrayIndex int32
}

type FrameEndInfo struct {
	DisplayTime Time
	BlendMode   EnvironmentBlendMode
	Layers      []CompositionLayer
}

// GraphicsRequirements reports the API versions the compositor accepts.
type GraphicsRequirements struct {
	MinVersion Version
	MaxVersion Version
}

// GraphicsBinding hands the compositor the native GL context along with
// the version that context reports.
type GraphicsBinding struct {
	Display uintptr
	Context uintptr
	Version Version
}

type LocationFlags uint64

const (
	LocationOrientationValid   LocationFlags = 0x1
	LocationPositionValid      LocationFlags = 0x2
	LocationOrientationTracked LocationFlags = 0x4
	LocationPositionTracked    LocationFlags = 0x8
)

type SpaceLocation struct {
	Flags LocationFlags
	Pose  Posef
}

// Compositor is the runtime-level surface: capability queries, session
// creation, event and input plumbing.
type Compositor interface {
	GraphicsRequirements() (GraphicsRequirements, error)
	ViewConfigViews(ViewConfigType) ([]ViewConfigView, error)
	CreateSession(GraphicsBinding) (Session, error)
	PollEvent() (Event, bool)

	// DecodeResult reports a human readable name for a result code, or
	// "" when the code is unknown to the runtime.
	DecodeResult(Result) string

	CreateActionSet(name, localized string, priority uint32) (ActionSet, error)
	StringToPath(string) (Path, error)
	SuggestBindings(profile Path, bindings []SuggestedBinding) error
}

// Session is one running presentation session.
type Session interface {
	Begin(ViewConfigType) error
	RequestExit() error
	End() error
	Close() error

	CreateReferenceSpace(ReferenceSpaceCreateInfo) (Space, error)
	SwapchainFormats() ([]int64, error)
	CreateSwapchain(SwapchainCreateInfo) (Swapchain, error)

	WaitFrame() (FrameState, error)
	BeginFrame() error
	LocateViews(Space, Time) ([]View, error)
	EndFrame(FrameEndInfo) error

	AttachActionSets(...ActionSet) error
	SyncActions(...ActionSet) error
}

// Swapchain is one eye's ring of color target images.
type Swapchain interface {
	// Images reports the GL texture names backing the ring.
	Images() ([]uint32, error)
	Acquire() (int, error)
	Wait(Duration) error
	Release() error
	Destroy() error
}

type Space interface {
	Locate(base Space, t Time) (SpaceLocation, error)
	Destroy() error
}

type ActionSet interface {
	CreatePoseAction(name, localized string) (PoseAction, error)
	Destroy() error
}

type PoseAction interface {
	CreateSpace(s Session, subaction Path, pose Posef) (Space, error)
}

type SuggestedBinding struct {
	Action  PoseAction
	Binding Path
}

// LoopStatus is the folded result of draining the event queue.
type LoopStatus int

const (
	Groovy LoopStatus = iota
	PleaseStop
)
