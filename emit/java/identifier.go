package java

// Java keywords and literals that cannot be used as identifiers.
var reservedWords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "continue": true, "default": true,
	"do": true, "double": true, "else": true, "enum": true,
	"extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true,
	"long": true, "native": true, "new": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "try": true, "void": true,
	"volatile": true, "while": true, "true": true, "false": true,
	"null": true, "_": true,
}

// isReservedWord reports whether name is a Java keyword or literal.
func isReservedWord(name string) bool {
	return reservedWords[name]
}

// escapeIdentifier appends an underscore to reserved words.
func escapeIdentifier(name string) string {
	if isReservedWord(name) {
		return name + "_"
	}
	return name
}
