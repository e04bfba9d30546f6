package xr

// Interaction profiles the hand pose action suggests bindings for.
const (
	profileSimpleController = "/interaction_profiles/khr/simple_controller"
	profileTouchController  = "/interaction_profiles/oculus/touch_controller"
	gripPosePath            = "/user/hand/right/input/grip/pose"
)

// HandTracker exposes one grip pose through an action set attached to
// the session before it begins.
type HandTracker struct {
	set    ActionSet
	action PoseAction
	space  Space
}

func newHandTracker(comp Compositor, session Session) (*HandTracker, error) {
	set, err := comp.CreateActionSet("glxr", "GLXR", 0)
	if err != nil {
		return nil, err
	}
	action, err := set.CreatePoseAction("hand_pose", "Hand Pose")
	if err != nil {
		return nil, err
	}

	grip, err := comp.StringToPath(gripPosePath)
	if err != nil {
		return nil, err
	}
	for _, profile := range []string{profileSimpleController, profileTouchController} {
		p, err := comp.StringToPath(profile)
		if err != nil {
			return nil, err
		}
		if err := comp.SuggestBindings(p, []SuggestedBinding{{Action: action, Binding: grip}}); err != nil {
			return nil, err
		}
	}

	space, err := action.CreateSpace(session, 0, IdentityPose())
	if err != nil {
		return nil, err
	}
	if err := session.AttachActionSets(set); err != nil {
		return nil, err
	}
	return &HandTracker{set: set, action: action, space: space}, nil
}

// Locate syncs the action set and reports the grip pose at t. The
// second result is false until the pose carries valid position and
// orientation.
func (h *HandTracker) Locate(session Session, base Space, t Time) (Posef, bool) {
	if err := session.SyncActions(h.set); err != nil {
		logger.Printf("sync actions: %v", err)
		return Posef{}, false
	}
	loc, err := h.space.Locate(base, t)
	if err != nil {
		logger.Printf("locate hand: %v", err)
		return Posef{}, false
	}
	const want = LocationPositionValid | LocationOrientationValid
	if loc.Flags&want != want {
		return Posef{}, false
	}
	return loc.Pose, true
}

func (h *HandTracker) Close() error {
	var first error
	if h.space != nil {
		first = h.space.Destroy()
		h.space = nil
	}
	if h.set != nil {
		if err := h.set.Destroy(); err != nil && first == nil {
			first = err
		}
		h.set = nil
	}
	return first
}
