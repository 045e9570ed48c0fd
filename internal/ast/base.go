package ast

// Base is the radix a numeric literal was written in.
type Base uint8

const (
	BaseDecimal Base = iota
	BaseHex
	BaseOctal
	BaseBinary
)

// Radix returns the numeric base.
func (b Base) Radix() int {
	switch b {
	case BaseHex:
		return 16
	case BaseOctal:
		return 8
	case BaseBinary:
		return 2
	default:
		return 10
	}
}

// Prefix returns the literal prefix for the base, "" for decimal.
func (b Base) Prefix() string {
	switch b {
	case BaseHex:
		return "0x"
	case BaseOctal:
		return "0o"
	case BaseBinary:
		return "0b"
	default:
		return ""
	}
}

func (b Base) String() string {
	switch b {
	case BaseHex:
		return "hexadecimal"
	case BaseOctal:
		return "octal"
	case BaseBinary:
		return "binary"
	default:
		return "decimal"
	}
}
