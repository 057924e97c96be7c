package pdf

import "strings"

// fillPlaceholders substitutes {{name}} markers in a document template.
// Unknown markers are left in place so a typo in a template is visible in
// the output rather than silently blanked.
func fillPlaceholders(template []byte, values map[string]string) []byte {
	out := string(template)
	for name, value := range values {
		out = strings.ReplaceAll(out, "{{"+name+"}}", jsonEscape(value))
	}
	return []byte(out)
}

// jsonEscape keeps substituted values from breaking the surrounding JSON
// string literal.
func jsonEscape(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return replacer.Replace(s)
}
