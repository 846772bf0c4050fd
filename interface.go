package flog

// Module is a named handle on a Logger. The name fills the module field of
// every record logged through it.
type Module struct {
	logger *Logger
	name   string
}

// Module returns a handle that logs under name
func (l *Logger) Module(name string) *Module {
	return &Module{logger: l, name: name}
}

// Name returns the module name
func (m *Module) Name() string {
	return m.name
}

// Logger returns the underlying logger
func (m *Module) Logger() *Logger {
	return m.logger
}

// Output logs a record whose call site is calldepth frames above Output.
// calldepth 1 reports the direct caller of Output.
func (m *Module) Output(calldepth int, level int64, format string, args ...any) {
	m.logger.log(calldepth+1, level, m.name, format, args)
}

// Tracef logs a formatted message at trace level under the module name
func (m *Module) Tracef(format string, args ...any) {
	m.logger.log(2, LevelTrace, m.name, format, args)
}

// Debugf logs a formatted message at debug level under the module name
func (m *Module) Debugf(format string, args ...any) {
	m.logger.log(2, LevelDebug, m.name, format, args)
}

// Infof logs a formatted message at info level under the module name
func (m *Module) Infof(format string, args ...any) {
	m.logger.log(2, LevelInfo, m.name, format, args)
}

// Warnf logs a formatted message at warning level under the module name
func (m *Module) Warnf(format string, args ...any) {
	m.logger.log(2, LevelWarn, m.name, format, args)
}

// Errorf logs at error level. In async mode the record is written
// synchronously before Errorf returns.
func (m *Module) Errorf(format string, args ...any) {
	m.logger.log(2, LevelError, m.name, format, args)
}

// Fatalf logs at fatal level, synchronously. It does not exit the process.
func (m *Module) Fatalf(format string, args ...any) {
	m.logger.log(2, LevelFatal, m.name, format, args)
}

// Tracef logs a formatted message at trace level
func (l *Logger) Tracef(format string, args ...any) {
	l.log(2, LevelTrace, defaultModule, format, args)
}

// Debugf logs a formatted message at debug level
func (l *Logger) Debugf(format string, args ...any) {
	l.log(2, LevelDebug, defaultModule, format, args)
}

// Infof logs a formatted message at info level
func (l *Logger) Infof(format string, args ...any) {
	l.log(2, LevelInfo, defaultModule, format, args)
}

// Warnf logs a formatted message at warning level
func (l *Logger) Warnf(format string, args ...any) {
	l.log(2, LevelWarn, defaultModule, format, args)
}

// Errorf logs a formatted message at error level. In async mode the record
// is written synchronously before Errorf returns.
func (l *Logger) Errorf(format string, args ...any) {
	l.log(2, LevelError, defaultModule, format, args)
}

// Fatalf logs a formatted message at fatal level. It does not exit the process.
func (l *Logger) Fatalf(format string, args ...any) {
	l.log(2, LevelFatal, defaultModule, format, args)
}

// Logf logs at an explicit level and module
func (l *Logger) Logf(level int64, module, format string, args ...any) {
	l.log(2, level, module, format, args)
}
