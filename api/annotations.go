package api

import (
	"slices"

	"github.com/dhamidi/jvmapi/classfile"
)

// Annotations names, by binary name, the annotations that mark a
// declaration deprecated, incubating or nullable. Empty lists fall back to
// DefaultAnnotations.
type Annotations struct {
	Deprecated []string `toml:"deprecated"`
	Incubating []string `toml:"incubating"`
	Nullable   []string `toml:"nullable"`
}

func DefaultAnnotations() Annotations {
	return Annotations{
		Deprecated: []string{"java.lang.Deprecated"},
		Incubating: []string{"org.gradle.api.Incubating"},
		Nullable: []string{
			"javax.annotation.Nullable",
			"org.jetbrains.annotations.Nullable",
		},
	}
}

// WithDefaults fills every empty list from DefaultAnnotations.
func (a Annotations) WithDefaults() Annotations {
	defaults := DefaultAnnotations()
	if len(a.Deprecated) == 0 {
		a.Deprecated = defaults.Deprecated
	}
	if len(a.Incubating) == 0 {
		a.Incubating = defaults.Incubating
	}
	if len(a.Nullable) == 0 {
		a.Nullable = defaults.Nullable
	}
	return a
}

func (a Annotations) descriptors() annotationSet {
	return annotationSet{
		deprecated: toDescriptors(a.Deprecated),
		incubating: toDescriptors(a.Incubating),
		nullable:   toDescriptors(a.Nullable),
	}
}

// annotationSet holds the same names as field descriptors
// ("Ljava/lang/Deprecated;"), the form class files record.
type annotationSet struct {
	deprecated []string
	incubating []string
	nullable   []string
}

func toDescriptors(names []string) []string {
	descs := make([]string, len(names))
	for i, name := range names {
		descs[i] = "L" + classfile.SourceToInternalName(name) + ";"
	}
	return descs
}

// isDeprecated and its siblings take the lookup of the annotated element,
// such as ClassNode.HasAnnotation, and report whether it carries any listed
// name.
func (s annotationSet) isDeprecated(has func(descriptor string) bool) bool {
	return slices.ContainsFunc(s.deprecated, has)
}

func (s annotationSet) isIncubating(has func(descriptor string) bool) bool {
	return slices.ContainsFunc(s.incubating, has)
}

func (s annotationSet) isNullable(has func(descriptor string) bool) bool {
	return slices.ContainsFunc(s.nullable, has)
}
