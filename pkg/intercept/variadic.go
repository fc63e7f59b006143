// SPDX-License-Identifier: MPL-2.0

package intercept

// Execl replaces the current process image with the program at path, passing
// arg0 followed by args as the argument vector. The environment is the
// rewritten ambient environment, as with Execv.
func (ic *Interceptor) Execl(path, arg0 string, args ...string) error {
	return ic.Execv(path, argvOf(arg0, args))
}

// Execlp is Execl with executable search, as with Execvp.
func (ic *Interceptor) Execlp(file, arg0 string, args ...string) error {
	return ic.Execvp(file, argvOf(arg0, args))
}

// Execle is Execl with an explicit child environment, passed through to the
// rewrite as with Execve. envv precedes the argument list because variadic
// parameters must come last in Go.
func (ic *Interceptor) Execle(path string, envv []string, arg0 string, args ...string) error {
	return ic.Execve(path, argvOf(arg0, args), envv)
}

// argvOf materializes the owned argument vector for the variadic forms.
// The result never aliases args.
func argvOf(arg0 string, args []string) []string {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, arg0)
	return append(argv, args...)
}
