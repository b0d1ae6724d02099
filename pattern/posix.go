package pattern

// posixClasses maps POSIX class names to regexp character-class bodies.
// Expansions are the canonical ASCII ranges; they are spliced into the
// surrounding class without introducing nested brackets.
var posixClasses = map[string]string{
	"alnum":  "a-zA-Z0-9",
	"alpha":  "a-zA-Z",
	"ascii":  `\x00-\x7f`,
	"blank":  ` \t`,
	"cntrl":  `\x00-\x1f\x7f`,
	"digit":  "0-9",
	"graph":  `\x21-\x7e`,
	"lower":  "a-z",
	"print":  `\x20-\x7e`,
	"punct":  `\x21-\x2f\x3a-\x40\x5b-\x60\x7b-\x7e`,
	"space":  ` \t\r\n\v\f`,
	"upper":  "A-Z",
	"word":   "a-zA-Z0-9_",
	"xdigit": "0-9A-Fa-f",
}
