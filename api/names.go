package api

import "strings"

const (
	unitName  = "kotlin.Unit"
	starName  = "*"
	arrayName = "kotlin.Array"
)

// remappedTypes maps well-known JVM types to the types Kotlin exposes them
// as.
var remappedTypes = map[string]string{
	"java.lang.Cloneable":             "kotlin.Cloneable",
	"java.lang.Comparable":            "kotlin.Comparable",
	"java.lang.Enum":                  "kotlin.Enum",
	"java.lang.annotation.Annotation": "kotlin.Annotation",
	"java.lang.Deprecated":            "kotlin.Deprecated",
	"java.lang.CharSequence":          "kotlin.CharSequence",
	"java.lang.Number":                "kotlin.Number",
	"java.lang.Throwable":             "kotlin.Throwable",

	"java.lang.Iterable":      "kotlin.collections.Iterable",
	"java.util.Iterator":      "kotlin.collections.Iterator",
	"java.util.ListIterator":  "kotlin.collections.ListIterator",
	"java.util.Collection":    "kotlin.collections.Collection",
	"java.util.List":          "kotlin.collections.List",
	"java.util.ArrayList":     "kotlin.collections.ArrayList",
	"java.util.Set":           "kotlin.collections.Set",
	"java.util.HashSet":       "kotlin.collections.HashSet",
	"java.util.LinkedHashSet": "kotlin.collections.LinkedHashSet",
	"java.util.Map":           "kotlin.collections.Map",
	"java.util.Map$Entry":     "kotlin.collections.Map.Entry",
	"java.util.HashMap":       "kotlin.collections.HashMap",
	"java.util.LinkedHashMap": "kotlin.collections.LinkedHashMap",
}

var primitiveTypes = map[string]string{
	"java.lang.Object": "kotlin.Any",
	"java.lang.String": "kotlin.String",

	"java.lang.Character": "kotlin.Char",
	"char":                "kotlin.Char",
	"java.lang.Boolean":   "kotlin.Boolean",
	"boolean":             "kotlin.Boolean",
	"java.lang.Byte":      "kotlin.Byte",
	"byte":                "kotlin.Byte",
	"java.lang.Short":     "kotlin.Short",
	"short":               "kotlin.Short",
	"java.lang.Integer":   "kotlin.Int",
	"int":                 "kotlin.Int",
	"java.lang.Long":      "kotlin.Long",
	"long":                "kotlin.Long",
	"java.lang.Float":     "kotlin.Float",
	"float":               "kotlin.Float",
	"java.lang.Double":    "kotlin.Double",
	"double":              "kotlin.Double",
}

// SourceNameOfBinaryName maps a binary name such as "java.util.Map$Entry"
// or "int" to the name Kotlin source uses for it.
func SourceNameOfBinaryName(binaryName string) string {
	switch binaryName {
	case "void":
		return unitName
	case "?":
		return starName
	}
	if name, ok := remappedTypes[binaryName]; ok {
		return name
	}
	if name, ok := primitiveTypes[binaryName]; ok {
		return name
	}
	return strings.ReplaceAll(binaryName, "$", ".")
}
