// Package identity implements the Identity Key Schedule (component C5)
// and the User handle that owns derived secrets in Secure Buffers
// (component C2), per spec.md sections 3 and 4.5.
package identity

// Slot names a logical credential slot on a User. A User owns at most
// one Buffer per slot; a missing slot means an absent credential.
type Slot int

const (
	SlotMK Slot = iota
	SlotILK
	SlotIUK
	SlotPIUK0
	SlotPIUK1
	SlotPIUK2
	SlotPIUK3
	SlotLocal
	SlotRescueCode
	SlotPassword
)

// Len returns the expected byte length of a fully materialized buffer
// for this slot. RescueCode is fixed at 24 ASCII digits. Password
// (caller-supplied, up to 512 bytes) and Local have no fixed length
// and return 0, meaning "caller decides".
func (s Slot) Len() int {
	switch s {
	case SlotRescueCode:
		return 24
	case SlotPassword, SlotLocal:
		return 0
	default:
		return 32
	}
}

func (s Slot) String() string {
	switch s {
	case SlotMK:
		return "MK"
	case SlotILK:
		return "ILK"
	case SlotIUK:
		return "IUK"
	case SlotPIUK0:
		return "PIUK0"
	case SlotPIUK1:
		return "PIUK1"
	case SlotPIUK2:
		return "PIUK2"
	case SlotPIUK3:
		return "PIUK3"
	case SlotLocal:
		return "LOCAL"
	case SlotRescueCode:
		return "RESCUE_CODE"
	case SlotPassword:
		return "PASSWORD"
	default:
		return "UNKNOWN"
	}
}

// piukRing is the fixed rekey order: current IUK demotes to PIUK0,
// PIUK0->PIUK1, PIUK1->PIUK2, PIUK2->PIUK3, PIUK3 discarded.
var piukRing = [4]Slot{SlotPIUK0, SlotPIUK1, SlotPIUK2, SlotPIUK3}
