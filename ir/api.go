package ir

import "strconv"

// API is the complete, resolved input of a generation run: every type
// under generation with its methods, plus generated counterparts that are
// defined elsewhere but may be referenced.
type API struct {
	// Types are the original types to generate wrappers for.
	Types []*TypeDecl

	// External lists original/generated pairs that belong to other runs.
	// They take part in registry lookups but produce no output.
	External []RegistryEntry

	// Warnings contains non-fatal issues found while building the API.
	Warnings []Warning
}

// TypeDecl is an original type under generation.
type TypeDecl struct {
	Name QualifiedName

	// Generated is the qualified name of the wrapper type.
	Generated QualifiedName

	TypeParams []string
	Doc        Documentation
	Methods    []*MethodDecl
	Source     Source
}

// MethodDecl is an original method as resolved upstream.
type MethodDecl struct {
	Name       string
	Params     []ParamDecl
	Returns    *TypeRef
	Static     bool
	Fluent     bool
	TypeParams []string
	Doc        Documentation
}

// ParamDecl is an original parameter. Surface optionally overrides the
// generated-surface type; when nil it is derived from Type.
type ParamDecl struct {
	Name    string
	Type    *TypeRef
	Surface *TypeRef
}

// RegistryEntry pairs an original type with its generated counterpart.
type RegistryEntry struct {
	Original  QualifiedName `json:"original"`
	Generated QualifiedName `json:"generated"`
}

// AddType adds a type declaration to the API.
func (a *API) AddType(t *TypeDecl) {
	a.Types = append(a.Types, t)
}

// AddWarning adds a warning to the API.
func (a *API) AddWarning(w Warning) {
	a.Warnings = append(a.Warnings, w)
}

// FindType looks up a type by its original name. Returns nil if not found.
func (a *API) FindType(name QualifiedName) *TypeDecl {
	for _, t := range a.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// RegistryEntries returns the pairs for every type under generation
// followed by the external pairs.
func (a *API) RegistryEntries() []RegistryEntry {
	entries := make([]RegistryEntry, 0, len(a.Types)+len(a.External))
	for _, t := range a.Types {
		entries = append(entries, RegistryEntry{Original: t.Name, Generated: t.Generated})
	}
	return append(entries, a.External...)
}

// MethodCount returns the number of methods across all types.
func (a *API) MethodCount() int {
	n := 0
	for _, t := range a.Types {
		n += len(t.Methods)
	}
	return n
}

// Validate checks the API for structural issues.
// Returns all validation errors found (not just the first).
func (a *API) Validate() []error {
	var errs []error
	add := func(code, msg string) {
		errs = append(errs, &ValidationError{Code: code, Message: msg})
	}

	originals := make(map[QualifiedName]bool)
	generated := make(map[QualifiedName]QualifiedName)
	checkPair := func(orig, gen QualifiedName) {
		if orig == "" {
			add("missing_name", "type without a name")
			return
		}
		if gen == "" {
			add("missing_generated_name", "type "+string(orig)+" has no generated name")
			return
		}
		if originals[orig] {
			add("duplicate_type", "duplicate type: "+string(orig))
		}
		originals[orig] = true
		if prev, ok := generated[gen]; ok && prev != orig {
			add("duplicate_generated_name", "types "+string(prev)+" and "+string(orig)+" both generate "+string(gen))
		}
		generated[gen] = orig
	}

	for _, t := range a.Types {
		checkPair(t.Name, t.Generated)
		for _, m := range t.Methods {
			where := string(t.Name) + "." + m.Name
			if m.Name == "" {
				add("missing_method_name", "type "+string(t.Name)+" declares a method without a name")
			}
			if m.Returns == nil {
				add("missing_return", "method "+where+" has no return type")
			}
			names := make(map[string]bool)
			for i, p := range m.Params {
				if p.Name == "" {
					add("missing_param_name", "method "+where+" has an unnamed parameter at position "+strconv.Itoa(i))
				}
				if names[p.Name] {
					add("duplicate_param", "method "+where+" declares parameter "+p.Name+" twice")
				}
				names[p.Name] = true
				if p.Type == nil {
					add("missing_param_type", "parameter "+where+"("+p.Name+") has no type")
				} else if p.Type.IsVoid() {
					add("void_param", "parameter "+where+"("+p.Name+") is void")
				}
			}
		}
	}
	for _, e := range a.External {
		checkPair(e.Original, e.Generated)
	}
	return errs
}

// ValidationError represents an API validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// GeneratedType is the transformed form of one TypeDecl.
type GeneratedType struct {
	Decl  *TypeDecl
	Calls []*Call
}

// Program is the output of the core: every generated type with its
// assembled calls, ready for emission.
type Program struct {
	Types    []*GeneratedType
	Warnings []Warning
}
