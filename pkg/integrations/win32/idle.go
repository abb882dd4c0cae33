// Package win32 reads the foreground process, input idle time and output peak
// level through the Windows user32, kernel32 and Core Audio APIs.
package win32

// idleSeconds converts GetTickCount and LASTINPUTINFO.dwTime, both
// milliseconds since boot truncated to 32 bits, into whole idle seconds.
// The unsigned subtraction stays correct across one counter wrap.
func idleSeconds(now, lastInput uint32) int64 {
	return int64((now - lastInput) / 1000)
}
