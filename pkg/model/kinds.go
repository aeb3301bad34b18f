package model

// DiagramKind enumerates the supported diagram families.
type DiagramKind int

const (
	StateMachine DiagramKind = iota
	Sequence
	UseCase
	Activity
)

func (k DiagramKind) String() string {
	switch k {
	case StateMachine:
		return "state-machine"
	case Sequence:
		return "sequence"
	case UseCase:
		return "use-case"
	case Activity:
		return "activity"
	default:
		return "unknown"
	}
}

// ElementKind tags every addressable element for the uniform façade
// dispatch described in the package doc comment.
type ElementKind int

const (
	KindState ElementKind = iota
	KindRegion
	KindPseudoState
	KindConnection
	KindLifeline
	KindActor
	KindUseCase
	KindSystemBoundary
	KindAction
	KindSwimlane
	KindObjectNode
	KindCombinedFragment
	KindUseCaseRelationship
	KindMessage
	KindControlFlow
)

func (k ElementKind) String() string {
	switch k {
	case KindState:
		return "State"
	case KindRegion:
		return "Region"
	case KindPseudoState:
		return "PseudoState"
	case KindConnection:
		return "Connection"
	case KindLifeline:
		return "Lifeline"
	case KindActor:
		return "Actor"
	case KindUseCase:
		return "UseCase"
	case KindSystemBoundary:
		return "SystemBoundary"
	case KindAction:
		return "Action"
	case KindSwimlane:
		return "Swimlane"
	case KindObjectNode:
		return "ObjectNode"
	case KindCombinedFragment:
		return "CombinedFragment"
	case KindUseCaseRelationship:
		return "UseCaseRelationship"
	case KindMessage:
		return "Message"
	case KindControlFlow:
		return "ControlFlow"
	default:
		return "Unknown"
	}
}

// IsAuxNode reports whether k is a rectangle-bearing auxiliary kind that
// participates in selection/drag but not in containment.
func (k ElementKind) IsAuxNode() bool {
	switch k {
	case KindLifeline, KindActor, KindUseCase, KindSystemBoundary,
		KindAction, KindSwimlane, KindObjectNode, KindCombinedFragment:
		return true
	default:
		return false
	}
}

// IsAuxEdge reports whether k is an endpoint-pair auxiliary kind.
func (k ElementKind) IsAuxEdge() bool {
	switch k {
	case KindUseCaseRelationship, KindMessage, KindControlFlow:
		return true
	default:
		return false
	}
}

// PseudoKind enumerates the PseudoState variants.
type PseudoKind int

const (
	Initial PseudoKind = iota
	Final
	Choice
	Junction
	Fork
	Join
)

func (k PseudoKind) String() string {
	switch k {
	case Initial:
		return "Initial"
	case Final:
		return "Final"
	case Choice:
		return "Choice"
	case Junction:
		return "Junction"
	case Fork:
		return "Fork"
	case Join:
		return "Join"
	default:
		return "Unknown"
	}
}

// Orientation is the axis along which a Region tiles its parent state's
// interior.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Side identifies one of a rectangle's four sides, used for connection
// routing (§4.4) and corner-free hit areas.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Top:
		return "Top"
	case Bottom:
		return "Bottom"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Opposite returns the side facing s.
func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	default:
		return s
	}
}

// IsHorizontal reports whether the side's axis of offset is horizontal
// (true for Top/Bottom, whose slots move along X).
func (s Side) IsHorizontal() bool {
	return s == Top || s == Bottom
}
