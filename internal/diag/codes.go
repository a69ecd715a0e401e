package diag

import (
	"fmt"
)

// Code is a compact, stable identifier for a diagnostic class.
type Code uint16

const (
	UnknownCode Code = 0

	// Type solving (3000 block).
	SemInfo                  Code = 3000
	SemUnboundVariable       Code = 3001
	SemTypeMismatch          Code = 3002
	SemUnknownFunction       Code = 3003
	SemArityMismatch         Code = 3004
	SemCyclicTypeConstraint  Code = 3005
	SemAssociatedTypeUnbound Code = 3006

	// Lifetimes (3100 block).
	SemUnregisteredLifetime Code = 3100
	SemCyclicLifetime       Code = 3101
	SemAmbiguousElision     Code = 3102

	// Engine limits (3900 block).
	SemIterationLimit Code = 3900
)

func (c Code) String() string {
	switch c {
	case SemInfo:
		return "SEM3000"
	case SemUnboundVariable:
		return "SEM3001"
	case SemTypeMismatch:
		return "SEM3002"
	case SemUnknownFunction:
		return "SEM3003"
	case SemArityMismatch:
		return "SEM3004"
	case SemCyclicTypeConstraint:
		return "SEM3005"
	case SemAssociatedTypeUnbound:
		return "SEM3006"
	case SemUnregisteredLifetime:
		return "SEM3100"
	case SemCyclicLifetime:
		return "SEM3101"
	case SemAmbiguousElision:
		return "SEM3102"
	case SemIterationLimit:
		return "SEM3900"
	case UnknownCode:
		return "SEM0000"
	default:
		return fmt.Sprintf("SEM%04d", uint16(c))
	}
}
