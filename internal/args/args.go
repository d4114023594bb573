// Package args pulls typed arguments off the command lines of the scene and
// query formats.
package args

import (
	"strconv"
	"strings"

	"github.com/osuushi/visibility/internal/geom"
	"github.com/pkg/errors"
)

// Reader reads the arguments of one command line in order. The first failure
// sticks: every later read returns a zero value, and Err reports it.
type Reader struct {
	command string
	line    string
	fields  []string
	pos     int
	err     error
}

// Split a line into its command and a Reader over the arguments. Blank lines
// have an empty command.
func Split(line string) (string, *Reader) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", &Reader{line: line}
	}
	return fields[0], &Reader{command: fields[0], line: line, fields: fields[1:]}
}

func (a *Reader) Err() error {
	return a.err
}

// Remaining is the number of arguments not read yet.
func (a *Reader) Remaining() int {
	return len(a.fields) - a.pos
}

func (a *Reader) next() (string, bool) {
	if a.err != nil {
		return "", false
	}
	if a.pos >= len(a.fields) {
		a.err = errors.Errorf("%s: missing argument %d", a.command, a.pos+1)
		return "", false
	}
	field := a.fields[a.pos]
	a.pos++
	return field, true
}

func (a *Reader) Word() string {
	field, _ := a.next()
	return field
}

// Optional word, or fallback if the line has no arguments left.
func (a *Reader) WordOr(fallback string) string {
	if a.err == nil && a.Remaining() == 0 {
		return fallback
	}
	return a.Word()
}

func (a *Reader) Int() int {
	field, ok := a.next()
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(field)
	if err != nil {
		a.err = errors.Errorf("%s: argument %d: %q is not an integer", a.command, a.pos, field)
	}
	return v
}

func (a *Reader) Float() float64 {
	field, ok := a.next()
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		a.err = errors.Errorf("%s: argument %d: %q is not a number", a.command, a.pos, field)
	}
	return v
}

func (a *Reader) Point() geom.Point {
	x := a.Float()
	y := a.Float()
	return geom.Point{X: x, Y: y}
}

// A single character argument.
func (a *Reader) Char(what string) byte {
	field, ok := a.next()
	if !ok {
		return 0
	}
	if len(field) != 1 {
		a.err = errors.Errorf("%s: argument %d: %s %q is not a single character", a.command, a.pos, what, field)
		return 0
	}
	return field[0]
}

// Rest is the raw text after the arguments read so far, with inner spacing
// intact. It must not be empty.
func (a *Reader) Rest() string {
	if a.err != nil {
		return ""
	}
	remainder := a.line
	// The command itself, then every argument read
	for i := 0; i <= a.pos; i++ {
		remainder = strings.TrimLeft(remainder, " \t")
		end := strings.IndexAny(remainder, " \t")
		if end < 0 {
			remainder = ""
			break
		}
		remainder = remainder[end:]
	}
	remainder = strings.TrimSpace(remainder)
	if remainder == "" {
		a.err = errors.Errorf("%s: missing text", a.command)
	}
	a.pos = len(a.fields)
	return remainder
}

// Fail records err unless an earlier read already failed.
func (a *Reader) Fail(format string, args ...interface{}) {
	if a.err == nil {
		a.err = errors.Errorf("%s: "+format, append([]interface{}{a.command}, args...)...)
	}
}
