package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/kr/pretty"
	"github.com/logrusorgru/aurora"
)

// This converts pointers into random readable names. It leaks memory but
// generates the names lazily, so it's not a problem unless you're actually
// tracing. It's far easier to follow "SwiftOtter" through a sweep log than
// 0xc000123450.

var (
	mu   sync.Mutex
	memo = make(map[interface{}]string)
)

func init() {
	// Since the names are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Ptr && v.IsNil() {
		return "Ø"
	}

	mu.Lock()
	defer mu.Unlock()
	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", title(petname.Adjective()), title(petname.Name()))
	memo[obj] = r
	return r
}

// ColorName is Name, colored green when ok is true and red otherwise.
func ColorName(obj interface{}, ok bool) string {
	if ok {
		return aurora.Green(Name(obj)).String()
	}
	return aurora.Red(Name(obj)).String()
}

// Dump pretty prints a value, prefixed with its readable name.
func Dump(obj interface{}) string {
	return fmt.Sprintf("%s %s", Name(obj), pretty.Sprint(obj))
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
