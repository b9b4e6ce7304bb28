//go:build !unix

package sysinfo

// uname has no portable source here; callers fall back to runtime values.
func uname() (release, machine string) {
	return "", ""
}
