package domain

import (
	"strings"
	"unicode"
)

// DependencySuffix is appended to the build variable of an output category to name its dependency files.
const DependencySuffix = "_DEPS"

// CategoryKind enumerates the well known file categories.
type CategoryKind uint8

const (
	// KindCustom is a category identified only by its string id.
	KindCustom CategoryKind = iota
	// KindCSource is a C translation unit.
	KindCSource
	// KindCppSource is a C++ translation unit.
	KindCppSource
	// KindAssemblySource is an assembler source file.
	KindAssemblySource
	// KindHeader is a header file.
	KindHeader
	// KindObject is a compiled object file.
	KindObject
	// KindArchive is a static library.
	KindArchive
	// KindExecutable is a linked executable.
	KindExecutable
	// KindImage is a flashable image derived from an executable.
	KindImage
)

type kindInfo struct {
	name     string
	variable string
}

var kinds = map[CategoryKind]kindInfo{
	KindCSource:        {name: "c-source", variable: "C_SRCS"},
	KindCppSource:      {name: "cpp-source", variable: "CPP_SRCS"},
	KindAssemblySource: {name: "asm-source", variable: "S_SRCS"},
	KindHeader:         {name: "header", variable: "H_SRCS"},
	KindObject:         {name: "object", variable: "OBJS"},
	KindArchive:        {name: "archive", variable: "AR"},
	KindExecutable:     {name: "executable", variable: "ELF"},
	KindImage:          {name: "image", variable: "HEX"},
}

// Category identifies the type of a file flowing between tools.
// It is a comparable value and safe to use as a map key.
type Category struct {
	kind CategoryKind
	id   string
}

// Well known categories.
var (
	CSource        = Category{kind: KindCSource}
	CppSource      = Category{kind: KindCppSource}
	AssemblySource = Category{kind: KindAssemblySource}
	Header         = Category{kind: KindHeader}
	Object         = Category{kind: KindObject}
	Archive        = Category{kind: KindArchive}
	Executable     = Category{kind: KindExecutable}
	Image          = Category{kind: KindImage}
)

// CustomCategory returns a category identified by id.
func CustomCategory(id string) Category {
	return Category{kind: KindCustom, id: strings.ToLower(strings.TrimSpace(id))}
}

// ParseCategory maps a name to a well known category, falling back to a custom one.
func ParseCategory(name string) Category {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for kind, info := range kinds {
		if info.name == normalized {
			return Category{kind: kind}
		}
	}
	return CustomCategory(normalized)
}

// Kind returns the category kind.
func (c Category) Kind() CategoryKind {
	return c.kind
}

// IsZero reports whether c is the zero category.
func (c Category) IsZero() bool {
	return c.kind == KindCustom && c.id == ""
}

// Name returns the canonical name of the category.
func (c Category) Name() string {
	if info, ok := kinds[c.kind]; ok {
		return info.name
	}
	return c.id
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return c.Name()
}

// BuildVariable returns the build variable the files of this category are collected in.
// Custom categories derive it from their id: "linker-script" becomes "LINKER_SCRIPT".
func (c Category) BuildVariable() string {
	if info, ok := kinds[c.kind]; ok {
		return info.variable
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, c.id)
}

// DependencyKey returns the key dependency files derived from targets of this category are stored under.
func (c Category) DependencyKey() string {
	return c.BuildVariable() + DependencySuffix
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}

// DefaultExtensions maps file extensions to the category a source file of that extension belongs to.
func DefaultExtensions() map[string]Category {
	return map[string]Category{
		".c":   CSource,
		".cpp": CppSource,
		".cc":  CppSource,
		".cxx": CppSource,
		".ino": CppSource,
		".s":   AssemblySource,
		".S":   AssemblySource,
		".h":   Header,
		".hpp": Header,
		".hh":  Header,
	}
}
