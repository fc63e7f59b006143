// SPDX-License-Identifier: MPL-2.0

package intercept

// defaultInterceptor backs the package-level entry points. Its bound
// delegates are process-lifetime state, one binding per symbol.
var defaultInterceptor Interceptor

// Execve calls Interceptor.Execve on the package-level Interceptor.
func Execve(path string, argv, envv []string) error {
	return defaultInterceptor.Execve(path, argv, envv)
}

// Execvpe calls Interceptor.Execvpe on the package-level Interceptor.
func Execvpe(file string, argv, envv []string) error {
	return defaultInterceptor.Execvpe(file, argv, envv)
}

// Execv calls Interceptor.Execv on the package-level Interceptor.
func Execv(path string, argv []string) error {
	return defaultInterceptor.Execv(path, argv)
}

// Execvp calls Interceptor.Execvp on the package-level Interceptor.
func Execvp(file string, argv []string) error {
	return defaultInterceptor.Execvp(file, argv)
}

// Execl calls Interceptor.Execl on the package-level Interceptor.
func Execl(path, arg0 string, args ...string) error {
	return defaultInterceptor.Execl(path, arg0, args...)
}

// Execlp calls Interceptor.Execlp on the package-level Interceptor.
func Execlp(file, arg0 string, args ...string) error {
	return defaultInterceptor.Execlp(file, arg0, args...)
}

// Execle calls Interceptor.Execle on the package-level Interceptor.
func Execle(path string, envv []string, arg0 string, args ...string) error {
	return defaultInterceptor.Execle(path, envv, arg0, args...)
}
