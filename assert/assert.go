// This file is part of a8ext.
//
// a8ext is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// a8ext is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with a8ext.  If not, see <https://www.gnu.org/licenses/>.

package assert

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

// ErrViolation is matched by every Violation with errors.Is().
var ErrViolation = errors.New("contract violation")

// Violation is the value given to panic() when a contract is broken.
type Violation struct {
	// what went wrong
	Detail string

	// file and line of the caller that raised the violation
	File string
	Line int

	// optional underlying cause
	Err error
}

func (v Violation) Error() string {
	s := fmt.Sprintf("%v: %s", ErrViolation, v.Detail)
	if v.File != "" {
		s = fmt.Sprintf("%s (%s:%d)", s, v.File, v.Line)
	}
	return s
}

// Is implements the errors.Is() interface.
func (v Violation) Is(target error) bool {
	return target == ErrViolation
}

// Unwrap implements the errors.Unwrap() interface.
func (v Violation) Unwrap() error {
	return v.Err
}

func raise(skip int, err error, format string, args ...interface{}) {
	v := Violation{
		Detail: fmt.Sprintf(format, args...),
		Err:    err,
	}
	_, v.File, v.Line, _ = runtime.Caller(skip + 1)
	panic(v)
}

// Fail raises a contract violation unconditionally.
func Fail(format string, args ...interface{}) {
	raise(1, nil, format, args...)
}

// Wrap raises a contract violation with an underlying cause. The cause can be
// tested for with errors.Is() once the violation has been recovered.
func Wrap(err error, format string, args ...interface{}) {
	raise(1, err, format, args...)
}

// That raises a contract violation if cond is false.
func That(cond bool, format string, args ...interface{}) {
	if !cond {
		raise(1, nil, format, args...)
	}
}

// Between raises a contract violation if val is outside of the inclusive
// range lo to hi.
func Between(name string, val, lo, hi int) {
	if val < lo || val > hi {
		raise(1, nil, "value of %s=%d not between %d and %d", name, val, lo, hi)
	}
}

// NotNil raises a contract violation if val is nil. A nil pointer, map,
// slice, channel or function stored in an interface counts as nil.
func NotNil(name string, val interface{}) {
	if val == nil {
		raise(1, nil, "value of %s is nil", name)
		return
	}
	switch v := reflect.ValueOf(val); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		if v.IsNil() {
			raise(1, nil, "value of %s is nil", name)
		}
	}
}

// Recover calls f and returns any Violation raised during the call as an
// error. Panics of other kinds are passed on unchanged.
func Recover(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if v, ok := r.(Violation); ok {
				err = v
				return
			}
			panic(r)
		}
	}()
	f()
	return nil
}
