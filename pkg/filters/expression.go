package filters

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidExpression = errors.New("invalid filter expression")

// Op is one parsed filter function of an effect expression.
type Op struct {
	Name  string
	Value float64
	Unit  string
}

// String renders the op back into CSS.
func (o Op) String() string {
	return o.Name + "(" + FmtNum(o.Value) + o.Unit + ")"
}

// Amount normalises the argument: percentages become factors, angles become
// degrees and lengths stay in pixels.
func (o Op) Amount() float64 {
	switch o.Unit {
	case "%":
		return o.Value / 100
	case "rad":
		return o.Value * 180 / math.Pi
	case "grad":
		return o.Value * 0.9
	case "turn":
		return o.Value * 360
	default:
		return o.Value
	}
}

type argKind int

const (
	kindFactor argKind = iota // number or percentage, non-negative
	kindAngle                 // hue-rotate
	kindLength                // blur
)

var opKinds = map[string]argKind{
	"brightness": kindFactor,
	"contrast":   kindFactor,
	"saturate":   kindFactor,
	"grayscale":  kindFactor,
	"sepia":      kindFactor,
	"invert":     kindFactor,
	"opacity":    kindFactor,
	"hue-rotate": kindAngle,
	"blur":       kindLength,
}

var (
	funcRe = regexp.MustCompile(`^([a-zA-Z-]+)\(([^()]*)\)`)
	argRe  = regexp.MustCompile(`^([+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?)([a-zA-Z%]*)$`)
)

// ParseExpression parses a CSS filter value list. "none" and the empty string
// yield no ops. Anything a browser would reject as a filter value is
// reported as ErrInvalidExpression.
func ParseExpression(expr string) ([]Op, error) {
	rest := strings.TrimSpace(expr)
	if rest == "" || strings.EqualFold(rest, NoneExpression) {
		return nil, nil
	}

	var ops []Op
	for rest != "" {
		m := funcRe.FindStringSubmatch(rest)
		if m == nil {
			return nil, fmt.Errorf("%w: unexpected %q", ErrInvalidExpression, rest)
		}
		o, err := parseOp(strings.ToLower(m[1]), strings.TrimSpace(m[2]))
		if err != nil {
			return nil, err
		}
		ops = append(ops, o)
		rest = strings.TrimLeft(rest[len(m[0]):], " \t\r\n")
	}
	return ops, nil
}

// ValidExpression reports whether expr parses.
func ValidExpression(expr string) bool {
	_, err := ParseExpression(expr)
	return err == nil
}

func parseOp(name, arg string) (Op, error) {
	kind, ok := opKinds[name]
	if !ok {
		return Op{}, fmt.Errorf("%w: unknown function %q", ErrInvalidExpression, name)
	}

	// An empty argument takes the function's initial value.
	if arg == "" {
		switch kind {
		case kindAngle:
			return Op{Name: name, Value: 0, Unit: "deg"}, nil
		case kindLength:
			return Op{Name: name, Value: 0, Unit: "px"}, nil
		default:
			return Op{Name: name, Value: 1}, nil
		}
	}

	m := argRe.FindStringSubmatch(arg)
	if m == nil {
		return Op{}, fmt.Errorf("%w: %s(%s)", ErrInvalidExpression, name, arg)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Op{}, fmt.Errorf("%w: %s(%s): %v", ErrInvalidExpression, name, arg, err)
	}
	unit := strings.ToLower(m[2])

	switch kind {
	case kindFactor:
		if unit != "" && unit != "%" {
			return Op{}, fmt.Errorf("%w: %s does not take %q", ErrInvalidExpression, name, unit)
		}
		if v < 0 {
			return Op{}, fmt.Errorf("%w: %s must not be negative", ErrInvalidExpression, name)
		}
	case kindAngle:
		switch unit {
		case "deg", "rad", "grad", "turn":
		case "":
			if v != 0 {
				return Op{}, fmt.Errorf("%w: %s needs an angle unit", ErrInvalidExpression, name)
			}
			unit = "deg"
		default:
			return Op{}, fmt.Errorf("%w: %s does not take %q", ErrInvalidExpression, name, unit)
		}
	case kindLength:
		switch unit {
		case "px":
		case "":
			if v != 0 {
				return Op{}, fmt.Errorf("%w: %s needs a length unit", ErrInvalidExpression, name)
			}
			unit = "px"
		default:
			return Op{}, fmt.Errorf("%w: %s does not take %q", ErrInvalidExpression, name, unit)
		}
		if v < 0 {
			return Op{}, fmt.Errorf("%w: %s must not be negative", ErrInvalidExpression, name)
		}
	}
	return Op{Name: name, Value: v, Unit: unit}, nil
}
