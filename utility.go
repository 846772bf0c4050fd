package flog

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"unicode"
)

// callerInfo resolves the file, line and short function name of the frame
// skip levels above its caller
func callerInfo(skip int) (file string, line int, function string) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???", 0, "???"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return file, line, "???"
	}
	return file, line, shortFuncName(fn.Name())
}

// shortFuncName trims the package path from a runtime function name.
// Closures are reported as "outer.funcN".
func shortFuncName(name string) string {
	name = filepath.Base(name)
	parts := strings.Split(name, ".")
	if len(parts) == 1 {
		return name
	}
	last := parts[len(parts)-1]
	if isAnonymous(last) && len(parts) > 2 {
		return parts[len(parts)-2] + "." + last
	}
	return last
}

func isAnonymous(part string) bool {
	if !strings.HasPrefix(part, "func") || len(part) == 4 {
		return false
	}
	for _, r := range part[4:] {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "flog: ") {
		format = "flog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// Level converts a level name or number to its numeric constant
func Level(levelStr string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(levelStr))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < LevelTrace || n > LevelFatal {
			return 0, fmtErrorf("level out of range: %d (use %d-%d)", n, LevelTrace, LevelFatal)
		}
		return n, nil
	}
	switch s {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use trace, debug, info, warn, error, fatal)", levelStr)
	}
}

// LevelName returns the upper-case name written into records
func LevelName(level int64) string {
	if level >= 0 && level < int64(len(levelNames)) && levelNames[level] != "" {
		return levelNames[level]
	}
	return "LEVEL(" + strconv.FormatInt(level, 10) + ")"
}
