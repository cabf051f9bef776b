package ir

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error.
type ValidationError struct {
	Message string
	// Optional context
	Uniform string
	Member  string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Uniform != "" {
		if e.Member != "" {
			return fmt.Sprintf("uniform %s, member %s: %s", e.Uniform, e.Member, e.Message)
		}
		return fmt.Sprintf("uniform %s: %s", e.Uniform, e.Message)
	}
	return e.Message
}

// Validator validates merged top-level declarations.
type Validator struct {
	decls   []Declaration
	errors  []ValidationError
	uniform string
}

// Validate checks declarations for correctness.
// Returns validation errors if any, or nil if every declaration is valid.
func Validate(decls []Declaration) []ValidationError {
	v := &Validator{
		decls:  decls,
		errors: make([]ValidationError, 0),
	}

	v.ValidateDeclarations()

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

// ValidateDeclarations validates every declaration. Names are already
// unique once DeclarationRegistry has merged the stages.
func (v *Validator) ValidateDeclarations() {
	for _, d := range v.decls {
		v.uniform = d.Name
		v.validateName("", d.Name)
		if d.Location != nil && *d.Location < 0 {
			v.addError("", fmt.Sprintf("explicit location %d is negative", *d.Location))
		}
		v.validateType("", d.Type, 0)
	}
}

// validateName checks identifier syntax. Names starting with "gl_" are
// reserved for built-ins.
func (v *Validator) validateName(member, name string) {
	if name == "" {
		v.addError(member, "empty name")
		return
	}
	if strings.HasPrefix(name, "gl_") {
		v.addError(member, fmt.Sprintf("name %q uses the reserved gl_ prefix", name))
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			v.addError(member, fmt.Sprintf("name %q is not an identifier", name))
			return
		}
	}
}

// validateType validates a single type.
//
//nolint:gocognit,gocyclo,cyclop // Type validation requires checking every variant
func (v *Validator) validateType(member string, t Type, depth int) {
	if t == nil {
		v.addError(member, "nil type")
		return
	}

	switch inner := t.(type) {
	case ScalarType:
		if inner.Kind > ScalarBool {
			v.addError(member, fmt.Sprintf("unknown scalar kind %d", inner.Kind))
		}

	case VectorType:
		// Vector size must be 2, 3, or 4
		if inner.Size != Vec2 && inner.Size != Vec3 && inner.Size != Vec4 {
			v.addError(member, fmt.Sprintf("vector size must be 2, 3, or 4, got %d", inner.Size))
		}
		if inner.Scalar.Kind > ScalarBool {
			v.addError(member, fmt.Sprintf("unknown scalar kind %d", inner.Scalar.Kind))
		}

	case MatrixType:
		// Matrix dimensions must be 2, 3, or 4
		if inner.Columns != Vec2 && inner.Columns != Vec3 && inner.Columns != Vec4 {
			v.addError(member, fmt.Sprintf("matrix columns must be 2, 3, or 4, got %d", inner.Columns))
		}
		if inner.Rows != Vec2 && inner.Rows != Vec3 && inner.Rows != Vec4 {
			v.addError(member, fmt.Sprintf("matrix rows must be 2, 3, or 4, got %d", inner.Rows))
		}
		// Matrix scalar must be float
		if inner.Scalar.Kind != ScalarFloat {
			v.addError(member, fmt.Sprintf("matrix scalar must be float, got %v", inner.Scalar.Kind))
		}

	case SamplerType:
		if inner.Sampled == ScalarBool || inner.Sampled > ScalarBool {
			v.addError(member, fmt.Sprintf("sampler cannot return %v", inner.Sampled))
		}
		if inner.Shadow && inner.Sampled != ScalarFloat {
			v.addError(member, "shadow samplers must be float samplers")
		}

	case StructType:
		if depth > maxStructDepth {
			v.addError(member, "structure nesting too deep")
			return
		}
		if len(inner.Members) == 0 {
			v.addError(member, fmt.Sprintf("struct %s has no members", inner.Name))
		}
		memberNames := make(map[string]bool)
		for _, m := range inner.Members {
			path := m.Name
			if member != "" {
				path = member + "." + m.Name
			}
			v.validateName(path, m.Name)
			if memberNames[m.Name] {
				v.addError(path, "duplicate struct member name")
			}
			memberNames[m.Name] = true
			v.validateType(path, m.Type, depth+1)
		}

	default:
		v.addError(member, fmt.Sprintf("unsupported type %T", t))
	}
}

// maxStructDepth bounds structure nesting.
const maxStructDepth = 16

func (v *Validator) addError(member, msg string) {
	v.errors = append(v.errors, ValidationError{
		Message: msg,
		Uniform: v.uniform,
		Member:  member,
	})
}
