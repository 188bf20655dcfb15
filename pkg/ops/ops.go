// Package ops runs named Vector3 operations from text, one step at a time.
//
// A step is an operation name followed by its arguments, separated by
// whitespace. Vector arguments use the "x,y,z" literal form:
//
//	add 1,0,0
//	clampLength 0 5
//	lerpVectors 0,0,0 10,10,10 0.25
package ops

import (
	"sort"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/oxygene76/vector3/pkg/vector"
)

const Codespace = "ops"

var (
	ErrUnknownOp = errorsmod.Register(Codespace, 2, "unknown operation")
	ErrBadArgs   = errorsmod.Register(Codespace, 3, "invalid operation arguments")
	ErrEmptyStep = errorsmod.Register(Codespace, 4, "empty step")
)

type kind int

const (
	vec kind = iota
	num
)

func (k kind) String() string {
	if k == vec {
		return "vector"
	}
	return "scalar"
}

type arg struct {
	v *vector.Vector3
	s float64
}

type operation struct {
	params []kind
	apply  func(v *vector.Vector3, a []arg)
}

var operations = map[string]operation{
	"set": {[]kind{vec}, func(v *vector.Vector3, a []arg) { v.Copy(a[0].v) }},

	"add":             {[]kind{vec}, func(v *vector.Vector3, a []arg) { v.Add(a[0].v) }},
	"addScalar":       {[]kind{num}, func(v *vector.Vector3, a []arg) { v.AddScalar(a[0].s) }},
	"addVectors":      {[]kind{vec, vec}, func(v *vector.Vector3, a []arg) { v.AddVectors(a[0].v, a[1].v) }},
	"addScaledVector": {[]kind{vec, num}, func(v *vector.Vector3, a []arg) { v.AddScaledVector(a[0].v, a[1].s) }},
	"sub":             {[]kind{vec}, func(v *vector.Vector3, a []arg) { v.Sub(a[0].v) }},
	"subScalar":       {[]kind{num}, func(v *vector.Vector3, a []arg) { v.SubScalar(a[0].s) }},
	"subVectors":      {[]kind{vec, vec}, func(v *vector.Vector3, a []arg) { v.SubVectors(a[0].v, a[1].v) }},
	"multiply":        {[]kind{vec}, func(v *vector.Vector3, a []arg) { v.Multiply(a[0].v) }},
	"multiplyScalar":  {[]kind{num}, func(v *vector.Vector3, a []arg) { v.MultiplyScalar(a[0].s) }},
	"multiplyVectors": {[]kind{vec, vec}, func(v *vector.Vector3, a []arg) { v.MultiplyVectors(a[0].v, a[1].v) }},
	"divideScalar":    {[]kind{num}, func(v *vector.Vector3, a []arg) { v.DivideScalar(a[0].s) }},

	"min":         {[]kind{vec}, func(v *vector.Vector3, a []arg) { v.Min(a[0].v) }},
	"max":         {[]kind{vec}, func(v *vector.Vector3, a []arg) { v.Max(a[0].v) }},
	"clamp":       {[]kind{vec, vec}, func(v *vector.Vector3, a []arg) { v.Clamp(a[0].v, a[1].v) }},
	"clampScalar": {[]kind{num, num}, func(v *vector.Vector3, a []arg) { v.ClampScalar(a[0].s, a[1].s) }},
	"clampLength": {[]kind{num, num}, func(v *vector.Vector3, a []arg) { v.ClampLength(a[0].s, a[1].s) }},
	"floor":       {nil, func(v *vector.Vector3, _ []arg) { v.Floor() }},
	"ceil":        {nil, func(v *vector.Vector3, _ []arg) { v.Ceil() }},
	"round":       {nil, func(v *vector.Vector3, _ []arg) { v.Round() }},
	"roundToZero": {nil, func(v *vector.Vector3, _ []arg) { v.RoundToZero() }},
	"negate":      {nil, func(v *vector.Vector3, _ []arg) { v.Negate() }},

	"normalize":    {nil, func(v *vector.Vector3, _ []arg) { v.Normalize() }},
	"setLength":    {[]kind{num}, func(v *vector.Vector3, a []arg) { v.SetLength(a[0].s) }},
	"lerp":         {[]kind{vec, num}, func(v *vector.Vector3, a []arg) { v.Lerp(a[0].v, a[1].s) }},
	"lerpVectors":  {[]kind{vec, vec, num}, func(v *vector.Vector3, a []arg) { v.LerpVectors(a[0].v, a[1].v, a[2].s) }},
	"cross":        {[]kind{vec}, func(v *vector.Vector3, a []arg) { v.Cross(a[0].v) }},
	"crossVectors": {[]kind{vec, vec}, func(v *vector.Vector3, a []arg) { v.CrossVectors(a[0].v, a[1].v) }},
}

// Names returns the supported operation names in sorted order
func Names() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Step is a single parsed operation
type Step struct {
	Name string
	Args []string
}

func (s Step) String() string {
	return strings.Join(append([]string{s.Name}, s.Args...), " ")
}

// ParseStep splits a step into its name and arguments. The name must be
// known; arguments are checked when the step runs.
func ParseStep(s string) (Step, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Step{}, ErrEmptyStep
	}
	if _, ok := operations[fields[0]]; !ok {
		return Step{}, errorsmod.Wrapf(ErrUnknownOp, "%q", fields[0])
	}
	return Step{Name: fields[0], Args: fields[1:]}, nil
}

// ParseSteps parses every element of lines with ParseStep
func ParseSteps(lines []string) ([]Step, error) {
	steps := make([]Step, 0, len(lines))
	for i, line := range lines {
		step, err := ParseStep(line)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "step %d", i)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Interpreter applies steps to a vector
type Interpreter struct {
	logger log.Logger
}

func NewInterpreter(logger log.Logger) *Interpreter {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Interpreter{logger: logger.With("module", "ops")}
}

// Run applies steps to v in order. On error v holds the result of the steps
// before the failing one.
func (in *Interpreter) Run(v *vector.Vector3, steps []Step) error {
	for i, step := range steps {
		op, ok := operations[step.Name]
		if !ok {
			return errorsmod.Wrapf(ErrUnknownOp, "step %d: %q", i, step.Name)
		}
		args, err := parseArgs(op.params, step.Args)
		if err != nil {
			return errorsmod.Wrapf(err, "step %d (%s)", i, step)
		}
		op.apply(v, args)
		in.logger.Debug("applied step", "index", i, "op", step.Name, "result", v.String())
	}
	return nil
}

func parseArgs(params []kind, raw []string) ([]arg, error) {
	if len(raw) != len(params) {
		return nil, errorsmod.Wrapf(ErrBadArgs, "want %d arguments, got %d", len(params), len(raw))
	}
	args := make([]arg, len(params))
	for i, p := range params {
		switch p {
		case vec:
			v, err := vector.Parse(raw[i])
			if err != nil {
				return nil, errorsmod.Wrapf(ErrBadArgs, "argument %d: %v", i, err)
			}
			args[i].v = v
		case num:
			s, err := strconv.ParseFloat(raw[i], 64)
			if err != nil {
				return nil, errorsmod.Wrapf(ErrBadArgs, "argument %d is not a %s: %q", i, p, raw[i])
			}
			args[i].s = s
		}
	}
	return args, nil
}
