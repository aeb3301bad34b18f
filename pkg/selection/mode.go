package selection

import (
	"time"

	"github.com/joemooney/jmt/pkg/geometry"
)

// Mode is the current edit-mode of a diagram, as enumerated in §4.5.
type Mode int

const (
	Arrow Mode = iota
	Lasso
	SelectRect
	Connect
	EnterConnect // transitional: Add-Initial/Add-Final auto-transitions here
	Resize
	Move
	MoveRegionSeparator

	AddState
	AddInitial
	AddFinal
	AddChoice
	AddJunction
	AddFork
	AddJoin

	// Auxiliary diagram-type adds (sequence, use-case, activity).
	AddLifeline
	AddActor
	AddUseCase
	AddSystemBoundary
	AddAction
	AddSwimlane
	AddObjectNode
	AddCombinedFragment
)

// IsAdd reports whether m is one of the Add* placement modes.
func (m Mode) IsAdd() bool {
	return m >= AddState
}

// String names the mode for logging and debug rendering.
func (m Mode) String() string {
	switch m {
	case Arrow:
		return "Arrow"
	case Lasso:
		return "Lasso"
	case SelectRect:
		return "SelectRect"
	case Connect:
		return "Connect"
	case EnterConnect:
		return "EnterConnect"
	case Resize:
		return "Resize"
	case Move:
		return "Move"
	case MoveRegionSeparator:
		return "MoveRegionSeparator"
	case AddState:
		return "AddState"
	case AddInitial:
		return "AddInitial"
	case AddFinal:
		return "AddFinal"
	case AddChoice:
		return "AddChoice"
	case AddJunction:
		return "AddJunction"
	case AddFork:
		return "AddFork"
	case AddJoin:
		return "AddJoin"
	case AddLifeline:
		return "AddLifeline"
	case AddActor:
		return "AddActor"
	case AddUseCase:
		return "AddUseCase"
	case AddSystemBoundary:
		return "AddSystemBoundary"
	case AddAction:
		return "AddAction"
	case AddSwimlane:
		return "AddSwimlane"
	case AddObjectNode:
		return "AddObjectNode"
	case AddCombinedFragment:
		return "AddCombinedFragment"
	default:
		return "Unknown"
	}
}

// Register tracks the current mode and any pending connection source,
// and implements the mode-transition rules of §4.5 that are purely about
// mode (not about the entity model).
type Register struct {
	mode          Mode
	pendingSource bool

	hasLastClick   bool
	lastClickAt    time.Time
	lastClickPoint geometry.Point
}

// NewRegister returns a Register in the initial Arrow mode.
func NewRegister() *Register {
	return &Register{mode: Arrow}
}

// Mode returns the current mode.
func (r *Register) Mode() Mode {
	return r.mode
}

// Set switches directly to m, as a toolbar click would.
func (r *Register) Set(m Mode) {
	r.mode = m
	r.pendingSource = false
	r.hasLastClick = false
}

// RightClick transitions to Arrow from any Add* or Connect mode and
// clears any pending connection source. It is a no-op in other modes.
func (r *Register) RightClick() {
	if r.mode.IsAdd() || r.mode == Connect || r.mode == EnterConnect {
		r.mode = Arrow
		r.pendingSource = false
		r.hasLastClick = false
	}
}

// Escape transitions to Arrow from any mode.
func (r *Register) Escape() {
	r.mode = Arrow
	r.pendingSource = false
	r.hasLastClick = false
}

// EnterConnectFromAdd transitions from adding an Initial/Final pseudostate
// into EnterConnect, per §4.5 ("Adding an Initial or Final auto-transitions
// to EnterConnect").
func (r *Register) EnterConnectFromAdd() {
	r.mode = EnterConnect
}

// BeginConnectSource records that a connection source has been picked
// while in Connect/EnterConnect mode.
func (r *Register) BeginConnectSource() {
	r.pendingSource = true
}

// HasPendingSource reports whether a connection source is awaiting its
// target.
func (r *Register) HasPendingSource() bool {
	return r.pendingSource
}

// CompleteConnection clears the pending source and returns to Arrow. Used
// when EnterConnect (the Initial/Final one-shot transition) completes its
// single connection.
func (r *Register) CompleteConnection() {
	r.pendingSource = false
	r.mode = Arrow
	r.hasLastClick = false
}

// ClearPendingSource clears the pending connection source without
// changing mode, so a plain Connect-mode tool stays active for chaining
// further connections from a new source.
func (r *Register) ClearPendingSource() {
	r.pendingSource = false
}

// NoteAddClick records a click made while in an Add* mode and reports
// whether it is the second click of a double-click: within maxInterval of
// the previous click and within maxDist of its point. The core owns this
// detection (§4.5) because the toolkit's native click signal fires both
// single- and double-click events on the second click, leaving no way for
// a caller to suppress the spurious placement on its own.
//
// A detected double-click consumes the pending state and switches mode to
// Arrow; callers must not place a second element when this returns true.
func (r *Register) NoteAddClick(p geometry.Point, now time.Time, maxInterval time.Duration, maxDist float64) bool {
	if r.hasLastClick && now.Sub(r.lastClickAt) <= maxInterval && p.DistanceTo(r.lastClickPoint) <= maxDist {
		r.hasLastClick = false
		r.mode = Arrow
		return true
	}
	r.hasLastClick = true
	r.lastClickAt = now
	r.lastClickPoint = p
	return false
}
