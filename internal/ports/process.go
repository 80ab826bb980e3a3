package ports

// ProcessController controls the external WebDriver process by name, so
// the session manager never touches the process table directly and can be
// tested against a fake.
type ProcessController interface {
	// FindRunning reports whether at least one process with the given
	// name is currently running.
	FindRunning(name string) (bool, error)

	// Launch starts the named executable as a detached child process.
	// The child must survive independently of the caller.
	Launch(name string, args ...string) error

	// TerminateAll terminates every running process matching name, not
	// just ones launched by this application.
	TerminateAll(name string) error
}
